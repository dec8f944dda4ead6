package event

import "log/slog"

type phase int

const (
	phaseBefore phase = iota
	phaseOn
	phaseChain
)

type validatorEntry struct {
	id uint64
	fn Validator
}

type observerEntry struct {
	id uint64
	fn Observer
}

// Hub dispatches events for one entity. Dispatch is synchronous. Handler
// lists are copied before iteration, so a handler that registers or cancels
// handlers only affects later dispatches.
type Hub struct {
	before map[Type][]validatorEntry
	on     map[Type][]observerEntry
	parent *Hub
	linkID uint64
	nextID uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		before: make(map[Type][]validatorEntry),
		on:     make(map[Type][]observerEntry),
	}
}

// Subscription identifies a registered handler or chain link.
type Subscription struct {
	hub   *Hub
	id    uint64
	typ   Type
	phase phase
}

// Cancel unregisters the handler. Cancelling twice is a no-op.
func (s Subscription) Cancel() {
	h := s.hub
	if h == nil {
		return
	}
	switch s.phase {
	case phaseBefore:
		h.before[s.typ] = removeValidator(h.before[s.typ], s.id)
	case phaseOn:
		h.on[s.typ] = removeObserver(h.on[s.typ], s.id)
	case phaseChain:
		if h.linkID == s.id {
			h.parent = nil
			h.linkID = 0
		}
	}
}

// Before registers a validator for t.
func (h *Hub) Before(t Type, fn Validator) Subscription {
	h.nextID++
	h.before[t] = append(h.before[t], validatorEntry{id: h.nextID, fn: fn})
	return Subscription{hub: h, id: h.nextID, typ: t, phase: phaseBefore}
}

// On registers an observer for t.
func (h *Hub) On(t Type, fn Observer) Subscription {
	h.nextID++
	h.on[t] = append(h.on[t], observerEntry{id: h.nextID, fn: fn})
	return Subscription{hub: h, id: h.nextID, typ: t, phase: phaseOn}
}

// Chain forwards every event dispatched on h to parent after h's own
// handlers have run. A hub has at most one parent; chaining again replaces
// the previous link. Cancel the returned subscription to unlink.
func (h *Hub) Chain(parent *Hub) Subscription {
	h.nextID++
	h.parent = parent
	h.linkID = h.nextID
	return Subscription{hub: h, id: h.nextID, phase: phaseChain}
}

// Parent returns the chained hub, if any.
func (h *Hub) Parent() *Hub { return h.parent }

// ValidateBefore runs the validators for t in registration order and then
// those of the chained parents. It stops and returns false at the first veto.
func (h *Hub) ValidateBefore(t Type, e *Event) bool {
	if e.Type == "" {
		e.Type = t
	}
	for hub := h; hub != nil; hub = hub.parent {
		handlers := append([]validatorEntry(nil), hub.before[t]...)
		for _, v := range handlers {
			if !v.fn(e) {
				slog.Debug("mutation vetoed", "type", string(t), "property", e.Name)
				return false
			}
		}
	}
	return true
}

// TriggerOn notifies the observers for t, then those of the chained parents.
// It must only be called after the mutation has been applied.
func (h *Hub) TriggerOn(t Type, e *Event) {
	if e.Type == "" {
		e.Type = t
	}
	for hub := h; hub != nil; hub = hub.parent {
		handlers := append([]observerEntry(nil), hub.on[t]...)
		for _, o := range handlers {
			o.fn(e)
		}
	}
}

// HasHandlers reports whether any handler for t is registered on h itself.
func (h *Hub) HasHandlers(t Type) bool {
	return len(h.before[t]) > 0 || len(h.on[t]) > 0
}

func removeValidator(s []validatorEntry, id uint64) []validatorEntry {
	for i := range s {
		if s[i].id == id {
			out := make([]validatorEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func removeObserver(s []observerEntry, id uint64) []observerEntry {
	for i := range s {
		if s[i].id == id {
			out := make([]observerEntry, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}
