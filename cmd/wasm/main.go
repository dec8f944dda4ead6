//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/inamate/vecdraw/internal/control"
	"github.com/inamate/vecdraw/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(control.DefaultConfig())

	// Create the engine API object
	api := js.Global().Get("Object").New()

	// --- Input (frontend → backend) ---
	api.Set("pointerDown", js.FuncOf(pointerDown))
	api.Set("pointerMove", js.FuncOf(pointerMove))
	api.Set("pointerUp", js.FuncOf(pointerUp))
	api.Set("cancelGesture", js.FuncOf(cancelGesture))
	api.Set("execute", js.FuncOf(execute))
	api.Set("loadSample", js.FuncOf(loadSample))
	api.Set("setSelection", js.FuncOf(setSelection))

	// --- Queries (frontend ← backend) ---
	api.Set("render", js.FuncOf(render))
	api.Set("renderPane", js.FuncOf(renderPane))
	api.Set("dirtyPanes", js.FuncOf(dirtyPanes))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("hover", js.FuncOf(hover))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getScene", js.FuncOf(getScene))

	// Register on global scope
	js.Global().Set("vecdrawEngine", api)

	// Signal that WASM is ready
	js.Global().Set("vecdrawWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func errorResult(err error) interface{} {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

func point(args []js.Value) (x, y float64, ok bool) {
	if len(args) < 2 {
		return 0, 0, false
	}
	return args[0].Float(), args[1].Float(), true
}

// --- Input Handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf(map[string]interface{}{"error": "missing x, y"})
	}
	additive := len(args) > 2 && args[2].Truthy()
	return js.ValueOf(eng.PointerDown(x, y, additive))
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf(map[string]interface{}{"error": "missing x, y"})
	}
	return js.ValueOf(eng.PointerMove(x, y))
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf(map[string]interface{}{"error": "missing x, y"})
	}
	return js.ValueOf(eng.PointerUp(x, y))
}

func cancelGesture(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.CancelGesture())
}

// execute takes a JSON-encoded engine.Command.
func execute(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing command JSON"})
	}

	var cmd engine.Command
	if err := json.Unmarshal([]byte(args[0].String()), &cmd); err != nil {
		return errorResult(err)
	}
	res, err := eng.Execute(cmd)
	if err != nil {
		return errorResult(err)
	}

	ids := make([]interface{}, len(res.IDs))
	for i, id := range res.IDs {
		ids[i] = id
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "ids": ids})
}

func loadSample(this js.Value, args []js.Value) interface{} {
	if err := eng.LoadSample(); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].IsNull() || args[0].IsUndefined() {
		eng.Selection().Clear()
		return js.ValueOf(map[string]interface{}{"ok": true})
	}

	arr := args[0]
	ids := make([]string, arr.Length())
	for i := range ids {
		ids[i] = arr.Index(i).String()
	}
	if err := eng.Select(ids...); err != nil {
		return errorResult(err)
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func renderPane(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(eng.Render())
	}
	return js.ValueOf(eng.RenderPane(args[0].String()))
}

func dirtyPanes(this js.Value, args []js.Value) interface{} {
	panes := eng.DirtyPanes()
	out := make([]interface{}, len(panes))
	for i, p := range panes {
		out[i] = p
	}
	return js.ValueOf(out)
}

func hitTest(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf("")
	}
	return js.ValueOf(eng.HitTest(x, y))
}

func hover(this js.Value, args []js.Value) interface{} {
	x, y, ok := point(args)
	if !ok {
		return js.ValueOf("default")
	}
	return js.ValueOf(eng.Hover(x, y))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelectionBounds())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetSelection())
}

func getScene(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetScene())
}
