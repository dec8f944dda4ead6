package render

import (
	"encoding/json"

	"github.com/inamate/vecdraw/internal/geom"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and replays them on a Canvas2D context.
type DrawCommand struct {
	Op       string    `json:"op"`                 // Context method name, e.g. "moveTo", "fill"
	ObjectID string    `json:"objectId,omitempty"` // For hit correlation
	Args     []float64 `json:"args,omitempty"`     // Numeric arguments in call order
	Style    string    `json:"style,omitempty"`    // Color, cap, join or image source
	Flag     bool      `json:"flag,omitempty"`     // counterclockwise for arc/ellipse
}

// Recorder is a Context that records every call as a DrawCommand.
type Recorder struct {
	commands []DrawCommand
	objectID string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Tag marks subsequent commands with objectID. An empty id clears the tag.
func (r *Recorder) Tag(objectID string) { r.objectID = objectID }

// Commands returns the recorded commands in painter's order.
func (r *Recorder) Commands() []DrawCommand { return r.commands }

// Reset drops all recorded commands.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.objectID = ""
}

// JSON serializes the recorded commands.
func (r *Recorder) JSON() (string, error) {
	return DrawCommandsToJSON(r.commands)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if len(commands) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

func (r *Recorder) emit(op string, args ...float64) {
	r.commands = append(r.commands, DrawCommand{Op: op, ObjectID: r.objectID, Args: args})
}

func (r *Recorder) emitStyle(op, style string) {
	r.commands = append(r.commands, DrawCommand{Op: op, ObjectID: r.objectID, Style: style})
}

func (r *Recorder) Save()    { r.emit("save") }
func (r *Recorder) Restore() { r.emit("restore") }

func (r *Recorder) Transform(m geom.Matrix2D) { r.emit("transform", m.ToSlice()...) }

func (r *Recorder) BeginPath()          { r.emit("beginPath") }
func (r *Recorder) ClosePath()          { r.emit("closePath") }
func (r *Recorder) MoveTo(x, y float64) { r.emit("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.emit("lineTo", x, y) }

func (r *Recorder) QuadraticCurveTo(cpx, cpy, x, y float64) {
	r.emit("quadraticCurveTo", cpx, cpy, x, y)
}

func (r *Recorder) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	r.emit("bezierCurveTo", cp1x, cp1y, cp2x, cp2y, x, y)
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64, counterclockwise bool) {
	r.commands = append(r.commands, DrawCommand{
		Op:       "arc",
		ObjectID: r.objectID,
		Args:     []float64{x, y, radius, startAngle, endAngle},
		Flag:     counterclockwise,
	})
}

func (r *Recorder) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64, counterclockwise bool) {
	r.commands = append(r.commands, DrawCommand{
		Op:       "ellipse",
		ObjectID: r.objectID,
		Args:     []float64{x, y, radiusX, radiusY, rotation, startAngle, endAngle},
		Flag:     counterclockwise,
	})
}

func (r *Recorder) Fill()   { r.emit("fill") }
func (r *Recorder) Stroke() { r.emit("stroke") }

func (r *Recorder) FillRect(x, y, w, h float64)   { r.emit("fillRect", x, y, w, h) }
func (r *Recorder) StrokeRect(x, y, w, h float64) { r.emit("strokeRect", x, y, w, h) }

func (r *Recorder) DrawImage(src string, x, y, w, h float64) {
	r.commands = append(r.commands, DrawCommand{
		Op:       "drawImage",
		ObjectID: r.objectID,
		Args:     []float64{x, y, w, h},
		Style:    src,
	})
}

func (r *Recorder) SetFillStyle(style string)   { r.emitStyle("fillStyle", style) }
func (r *Recorder) SetStrokeStyle(style string) { r.emitStyle("strokeStyle", style) }
func (r *Recorder) SetLineWidth(w float64)      { r.emit("lineWidth", w) }
func (r *Recorder) SetLineCap(lineCap string)   { r.emitStyle("lineCap", lineCap) }
func (r *Recorder) SetLineJoin(join string)     { r.emitStyle("lineJoin", join) }

func (r *Recorder) SetLineDash(segments []float64) {
	r.emit("lineDash", append([]float64(nil), segments...)...)
}

var _ Context = (*Recorder)(nil)
