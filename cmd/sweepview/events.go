package main

import (
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/sweep/internal/app"
	"github.com/irfansharif/sweep/internal/log"
)

const (
	panRepeat = 125 * time.Millisecond // between pans while a pan key is held
	panStep   = 100.0                  // pixels per pan
)

// panKeys maps H/J/K/L to the direction the scene moves.
var panKeys = map[glfw.Key][2]float64{
	glfw.KeyH: {1, 0},
	glfw.KeyJ: {0, -1},
	glfw.KeyK: {0, 1},
	glfw.KeyL: {-1, 0},
}

// Input turns window events into app updates.
type Input struct {
	window *glfw.Window
	app    *app.App
	log    *log.Logger

	// Held pan key; Tick repeats it, key repeat events are ignored.
	held    bool
	heldDir [2]float64
	lastPan time.Time

	// Drag origin, in framebuffer pixels, and the pan at the time.
	dragging           bool
	dragX, dragY       float64
	dragPanX, dragPanY float64
}

// NewInput installs the window callbacks.
func NewInput(window *glfw.Window, a *app.App, logger *log.Logger) *Input {
	in := &Input{
		window:  window,
		app:     a,
		log:     logger.Named("input"),
		lastPan: time.Now(),
	}
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		in.key(key, action, mods)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		in.button(button, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.drag(x, y)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, ticks float64) {
		in.zoom(ticks)
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		in.app.View.SetViewport(w, h)
		in.refreshView()
	})
	return in
}

// check logs a failed update; the window keeps the last good frame.
func (in *Input) check(err error) {
	if err != nil {
		in.log.Error("update failed", log.Error(err))
	}
}

func (in *Input) refreshView()  { in.check(in.app.UpdateView()) }
func (in *Input) refreshTitle() { in.window.SetTitle(in.app.Title()) }

func (in *Input) key(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) {
	if dir, ok := panKeys[key]; ok {
		switch action {
		case glfw.Press:
			in.held, in.heldDir = true, dir
			in.pan(dir)
		case glfw.Release:
			in.held = false
		}
		return
	}
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape, glfw.KeyQ:
		in.window.SetShouldClose(true)
	case glfw.KeyR:
		in.app.View.Reset()
		in.refreshView()
	case glfw.KeyF:
		in.check(in.app.ToggleEngine())
		in.refreshTitle()
	case glfw.KeyTab:
		in.check(in.app.Step(mods&glfw.ModShift == 0))
		in.refreshTitle()
	case glfw.KeyEqual:
		in.zoom(1)
	case glfw.KeyMinus:
		in.zoom(-1)
	}
}

func (in *Input) pan(dir [2]float64) {
	v := in.app.View
	v.SetPan(v.PanX+dir[0]*panStep, v.PanY+dir[1]*panStep)
	in.lastPan = time.Now()
	in.refreshView()
}

// Tick repeats the held pan, if any. Called once per frame.
func (in *Input) Tick(now time.Time) {
	if in.held && now.Sub(in.lastPan) >= panRepeat {
		in.pan(in.heldDir)
	}
}

// framebufferCursor returns the cursor position in framebuffer pixels.
func (in *Input) framebufferCursor() (x, y float64) {
	x, y = in.window.GetCursorPos()
	sx, sy := in.window.GetContentScale()
	return x * float64(sx), y * float64(sy)
}

func (in *Input) button(button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		in.dragging = true
		in.dragX, in.dragY = in.framebufferCursor()
		in.dragPanX, in.dragPanY = in.app.View.PanX, in.app.View.PanY
	case glfw.Release:
		in.dragging = false
	}
}

func (in *Input) drag(_, _ float64) {
	if !in.dragging {
		return
	}
	x, y := in.framebufferCursor()
	in.app.View.SetPan(in.dragPanX+x-in.dragX, in.dragPanY+y-in.dragY)
	in.refreshView()
}

// zoom zooms by ticks about the cursor.
func (in *Input) zoom(ticks float64) {
	x, y := in.framebufferCursor()
	in.app.View.ZoomAt(ticks, x, y)
	in.refreshView()
}
