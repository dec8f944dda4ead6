package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBeforeOrderAndVeto(t *testing.T) {
	h := NewHub()
	var calls []string
	h.Before(BoundsChanged, func(e *Event) bool { calls = append(calls, "a"); return true })
	h.Before(BoundsChanged, func(e *Event) bool { calls = append(calls, "b"); return false })
	h.Before(BoundsChanged, func(e *Event) bool { calls = append(calls, "c"); return true })

	ok := h.ValidateBefore(BoundsChanged, &Event{})
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestValidateBeforeOtherTypesIgnored(t *testing.T) {
	h := NewHub()
	h.Before(StyleChanged, func(e *Event) bool { return false })
	assert.True(t, h.ValidateBefore(BoundsChanged, &Event{}))
}

func TestTriggerOnSetsType(t *testing.T) {
	h := NewHub()
	var got *Event
	h.On(PropertyChanged, func(e *Event) { got = e })
	h.TriggerOn(PropertyChanged, &Event{Name: "pane", Old: "a", New: "b"})
	if assert.NotNil(t, got) {
		assert.Equal(t, PropertyChanged, got.Type)
		assert.Equal(t, "b", got.New)
	}
}

func TestCancel(t *testing.T) {
	h := NewHub()
	n := 0
	sub := h.On(BoundsChanged, func(e *Event) { n++ })
	h.TriggerOn(BoundsChanged, &Event{})
	sub.Cancel()
	sub.Cancel()
	h.TriggerOn(BoundsChanged, &Event{})
	assert.Equal(t, 1, n)
	assert.False(t, h.HasHandlers(BoundsChanged))
}

func TestChainPropagates(t *testing.T) {
	child, parent := NewHub(), NewHub()
	var order []string
	child.On(BoundsChanged, func(e *Event) { order = append(order, "child") })
	parent.On(BoundsChanged, func(e *Event) { order = append(order, "parent") })
	link := child.Chain(parent)

	child.TriggerOn(BoundsChanged, &Event{})
	assert.Equal(t, []string{"child", "parent"}, order)

	parent.Before(BoundsChanged, func(e *Event) bool { return false })
	assert.False(t, child.ValidateBefore(BoundsChanged, &Event{}))

	link.Cancel()
	assert.Nil(t, child.Parent())
	assert.True(t, child.ValidateBefore(BoundsChanged, &Event{}))
}

func TestStaleChainCancelKeepsNewLink(t *testing.T) {
	child, a, b := NewHub(), NewHub(), NewHub()
	first := child.Chain(a)
	child.Chain(b)
	first.Cancel()
	assert.Same(t, b, child.Parent())
}

func TestRegistrationDuringDispatch(t *testing.T) {
	h := NewHub()
	late := 0
	h.On(BoundsChanged, func(e *Event) {
		h.On(BoundsChanged, func(e *Event) { late++ })
	})
	h.TriggerOn(BoundsChanged, &Event{})
	assert.Equal(t, 0, late)
	h.TriggerOn(BoundsChanged, &Event{})
	assert.Equal(t, 1, late)
}
