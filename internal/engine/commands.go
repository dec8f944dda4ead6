package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inamate/vecdraw/internal/geom"
	"github.com/inamate/vecdraw/internal/path"
	"github.com/inamate/vecdraw/internal/scene"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrShapeNotFound  = errors.New("shape not found")
	ErrNotAGroup      = errors.New("shape is not a group")
	ErrInvalidPathOp  = errors.New("invalid path operation")
	ErrMissingField   = errors.New("missing field")
)

// Command is an edit sent by the frontend. Which fields are read depends
// on Type.
type Command struct {
	Type     string   `json:"type"`
	ObjectID string   `json:"objectId,omitempty"`
	ParentID string   `json:"parentId,omitempty"`
	IDs      []string `json:"ids,omitempty"`

	// For shape.rect and shape.bounds
	Bounds *geom.Bounds `json:"bounds,omitempty"`

	// For shape.circle
	Center *geom.Point `json:"center,omitempty"`
	Radius float64     `json:"radius,omitempty"`

	// For shape.path
	Path []PathOp `json:"path,omitempty"`

	// For shape.style
	Style *scene.Style `json:"style,omitempty"`

	// For shape.angle (radians), shape.pane and shape.visible
	Angle   *float64 `json:"angle,omitempty"`
	Pane    string   `json:"pane,omitempty"`
	Visible *bool    `json:"visible,omitempty"`
}

// Result reports what a command produced.
type Result struct {
	IDs []string `json:"ids,omitempty"`
}

// PathOp is one SVG-style path command. Lowercase commands are relative.
// Args follow SVG order; for "A" they are rx, ry, rotation, large-arc,
// sweep, x, y with the flags as 0 or 1.
type PathOp struct {
	Cmd  string    `json:"cmd"`
	Args []float64 `json:"args,omitempty"`
}

// Command types
const (
	CmdAddRect        = "shape.rect"
	CmdAddCircle      = "shape.circle"
	CmdAddPath        = "shape.path"
	CmdDelete         = "shape.delete"
	CmdSetBounds      = "shape.bounds"
	CmdSetStyle       = "shape.style"
	CmdSetAngle       = "shape.angle"
	CmdSetPane        = "shape.pane"
	CmdSetVisible     = "shape.visible"
	CmdSelect         = "selection.set"
	CmdClear          = "selection.clear"
	CmdGroup          = "selection.group"
	CmdUngroup        = "selection.ungroup"
	CmdBringForward   = "selection.bringForward"
	CmdSendBackward   = "selection.sendBackward"
	CmdBringToFront   = "selection.bringToFront"
	CmdSendToBack     = "selection.sendToBack"
	CmdDeleteSelected = "selection.delete"
	CmdReset          = "scene.reset"
	CmdLoadSample     = "scene.sample"
)

// Execute applies one command.
func (e *Engine) Execute(cmd Command) (Result, error) {
	e.CancelGesture()

	switch cmd.Type {
	case CmdAddRect:
		return e.addRect(cmd)
	case CmdAddCircle:
		return e.addCircle(cmd)
	case CmdAddPath:
		return e.addPath(cmd)
	case CmdDelete:
		return Result{}, e.Delete(cmd.ObjectID)
	case CmdSetBounds, CmdSetStyle, CmdSetAngle, CmdSetPane, CmdSetVisible:
		return Result{}, e.setProperty(cmd)
	case CmdSelect:
		return Result{}, e.Select(cmd.IDs...)
	case CmdClear:
		e.sel.Clear()
		return Result{}, nil
	case CmdGroup:
		ids, err := e.Group()
		return Result{IDs: ids}, err
	case CmdUngroup:
		ids, err := e.Ungroup()
		return Result{IDs: ids}, err
	case CmdBringForward:
		e.BringForward()
	case CmdSendBackward:
		e.SendBackward()
	case CmdBringToFront:
		e.BringToFront()
	case CmdSendToBack:
		e.SendToBack()
	case CmdDeleteSelected:
		for _, s := range e.sel.Shapes() {
			if scene.FindByID(e.scene, s.ID()) == nil {
				continue
			}
			if err := e.Delete(s.ID()); err != nil {
				return Result{}, err
			}
		}
	case CmdReset:
		e.Reset()
	case CmdLoadSample:
		return Result{}, e.LoadSample()
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Type)
	}
	return Result{}, nil
}

// parent resolves the container a new shape goes into; the scene by
// default.
func (e *Engine) parent(id string) (*scene.Group, error) {
	if id == "" {
		return e.scene.AsGroup(), nil
	}
	s, err := e.shapeByID(id)
	if err != nil {
		return nil, err
	}
	c, ok := s.(scene.Container)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAGroup, id)
	}
	return c.AsGroup(), nil
}

func (e *Engine) insert(cmd Command, s scene.Shape) (Result, error) {
	if cmd.Style != nil {
		s.SetStyle(*cmd.Style)
	}
	if cmd.Pane != "" {
		s.Base().SetPane(cmd.Pane)
	}
	p, err := e.parent(cmd.ParentID)
	if err != nil {
		return Result{}, err
	}
	if err := p.Add(s); err != nil {
		return Result{}, fmt.Errorf("add %s: %w", s.ID(), err)
	}
	return Result{IDs: []string{s.ID()}}, nil
}

func (e *Engine) addRect(cmd Command) (Result, error) {
	if cmd.Bounds == nil {
		return Result{}, fmt.Errorf("%s: %w: bounds", cmd.Type, ErrMissingField)
	}
	b := cmd.Bounds
	r, err := scene.NewRectangle(b.X, b.Y, b.Width, b.Height)
	if err != nil {
		return Result{}, err
	}
	return e.insert(cmd, r)
}

func (e *Engine) addCircle(cmd Command) (Result, error) {
	if cmd.Center == nil {
		return Result{}, fmt.Errorf("%s: %w: center", cmd.Type, ErrMissingField)
	}
	c, err := scene.NewCircle(cmd.Center.X, cmd.Center.Y, cmd.Radius)
	if err != nil {
		return Result{}, err
	}
	return e.insert(cmd, c)
}

func (e *Engine) addPath(cmd Command) (Result, error) {
	p := path.New()
	if err := BuildPath(p, cmd.Path); err != nil {
		return Result{}, err
	}
	return e.insert(cmd, p)
}

// BuildPath appends SVG-style ops to p.
func BuildPath(p *path.Path, ops []PathOp) error {
	for i, op := range ops {
		if err := applyPathOp(p, op); err != nil {
			return fmt.Errorf("path op %d (%s): %w", i, op.Cmd, err)
		}
	}
	return nil
}

var pathArity = map[string]int{
	"M": 2, "L": 2, "H": 1, "V": 1, "Q": 4, "T": 2, "C": 6, "S": 4, "A": 7, "Z": 0,
}

func applyPathOp(p *path.Path, op PathOp) error {
	name := strings.ToUpper(op.Cmd)
	n, ok := pathArity[name]
	if !ok || len(op.Args) != n {
		return ErrInvalidPathOp
	}
	mode := path.Abs
	if op.Cmd != name {
		mode = path.Rel
	}
	a := op.Args

	switch name {
	case "M":
		return p.MoveTo(mode, a[0], a[1])
	case "L":
		return p.LineTo(mode, a[0], a[1])
	case "H":
		return p.HLineTo(mode, a[0])
	case "V":
		return p.VLineTo(mode, a[0])
	case "Q":
		return p.QuadCurveTo(mode, a[0], a[1], a[2], a[3])
	case "T":
		return p.SmoothQuadCurveTo(mode, a[0], a[1])
	case "C":
		return p.BezierCurveTo(mode, a[0], a[1], a[2], a[3], a[4], a[5])
	case "S":
		return p.SmoothBezierCurveTo(mode, a[0], a[1], a[2], a[3])
	case "A":
		return p.SVGArcTo(mode, a[0], a[1], a[2], a[3] != 0, a[4] != 0, a[5], a[6])
	default:
		return p.ClosePath()
	}
}

// Delete removes a shape from its parent and the selection.
func (e *Engine) Delete(id string) error {
	s, err := e.shapeByID(id)
	if err != nil {
		return err
	}
	p := s.Parent()
	if p == nil {
		return fmt.Errorf("delete %s: %w", id, scene.ErrNotChild)
	}
	if err := p.Remove(s); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	scene.Walk(s, func(sh scene.Shape) bool {
		if e.sel.Contains(sh) {
			e.sel.Remove(sh)
		}
		e.ctrl.Forget(sh.ID())
		return true
	})
	return nil
}

// Select replaces the selection with the shapes named by ids.
func (e *Engine) Select(ids ...string) error {
	shapes := make([]scene.Shape, 0, len(ids))
	for _, id := range ids {
		s, err := e.shapeByID(id)
		if err != nil {
			return fmt.Errorf("select %s: %w", id, err)
		}
		shapes = append(shapes, s)
	}
	if !e.sel.Set(shapes...) {
		return scene.ErrVetoed
	}
	return nil
}

func (e *Engine) setProperty(cmd Command) error {
	s, err := e.shapeByID(cmd.ObjectID)
	if err != nil {
		return err
	}

	var ok bool
	switch cmd.Type {
	case CmdSetBounds:
		if cmd.Bounds == nil {
			return fmt.Errorf("%s: %w: bounds", cmd.Type, ErrMissingField)
		}
		if cmd.Bounds.Width < 0 || cmd.Bounds.Height < 0 {
			return scene.ErrNegativeSize
		}
		ok = s.SetBounds(*cmd.Bounds)
	case CmdSetStyle:
		if cmd.Style == nil {
			return fmt.Errorf("%s: %w: style", cmd.Type, ErrMissingField)
		}
		ok = s.SetStyle(*cmd.Style)
	case CmdSetAngle:
		if cmd.Angle == nil {
			return fmt.Errorf("%s: %w: angle", cmd.Type, ErrMissingField)
		}
		ok = s.SetAngle(*cmd.Angle)
	case CmdSetPane:
		ok = s.Base().SetPane(cmd.Pane)
	case CmdSetVisible:
		if cmd.Visible == nil {
			return fmt.Errorf("%s: %w: visible", cmd.Type, ErrMissingField)
		}
		ok = s.Base().SetVisible(*cmd.Visible)
	}
	if !ok {
		return scene.ErrVetoed
	}
	return nil
}

// Group wraps the selected shapes of each parent in a new group and returns
// the group ids.
func (e *Engine) Group() ([]string, error) {
	groups, err := e.sel.Group()
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID())
	}
	return ids, err
}

// Ungroup dissolves every selected group and returns the ids of the
// released children.
func (e *Engine) Ungroup() ([]string, error) {
	children, err := e.sel.Ungroup()
	ids := make([]string, 0, len(children))
	for _, c := range children {
		ids = append(ids, c.ID())
	}
	return ids, err
}

func (e *Engine) BringForward() { e.sel.BringForward() }
func (e *Engine) SendBackward() { e.sel.SendBackward() }
func (e *Engine) BringToFront() { e.sel.BringToFront() }
func (e *Engine) SendToBack()   { e.sel.SendToBack() }
