package app

import (
	"github.com/irfansharif/sweep/internal/geom"
)

const (
	minZoom = 0.1
	maxZoom = 40.0

	// viewportScaleFactor is the share of the viewport a scene fills at zoom 1.
	viewportScaleFactor = 0.7
	// zoomStep is the zoom change per scroll tick.
	zoomStep = 0.15
)

// View manages the current view state including zoom, pan, and viewport. Pan
// is in framebuffer pixels; zoom is about the viewport center.
type View struct {
	Zoom          float64
	PanX, PanY    float64
	Width, Height int
}

// NewView creates a new view state with default values.
func NewView(width, height int) *View {
	return &View{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// SetZoom sets the zoom level, clamping to valid range.
func (vs *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		vs.Zoom = minZoom
	} else if zoom > maxZoom {
		vs.Zoom = maxZoom
	} else {
		vs.Zoom = zoom
	}
}

// SetPan sets the pan position to the given coordinates.
func (vs *View) SetPan(x, y float64) {
	vs.PanX = x
	vs.PanY = y
}

// SetViewport updates the viewport dimensions.
func (vs *View) SetViewport(width, height int) {
	vs.Width = width
	vs.Height = height
}

// Reset returns to zoom 1 with the scene centered.
func (vs *View) Reset() {
	vs.Zoom = 1.0
	vs.PanX, vs.PanY = 0, 0
}

func (vs *View) center() (float64, float64) {
	return float64(vs.Width) / 2.0, float64(vs.Height) / 2.0
}

// ZoomAt zooms by scroll ticks, keeping the point under the cursor (in
// framebuffer pixels) in place.
func (vs *View) ZoomAt(ticks, cursorX, cursorY float64) {
	centerX, centerY := vs.center()
	oldZoom := vs.Zoom

	// Cursor position relative to viewport center.
	cursorOffsetX, cursorOffsetY := cursorX-centerX, cursorY-centerY

	// What point (relative to center, at zoom 1) is under the cursor right now?
	offsetX, offsetY := (cursorOffsetX-vs.PanX)/oldZoom, (cursorOffsetY-vs.PanY)/oldZoom

	vs.SetZoom(oldZoom * (1.0 + ticks*zoomStep))

	// Calculate new pan to keep that point at the cursor.
	vs.SetPan(cursorOffsetX-offsetX*vs.Zoom, cursorOffsetY-offsetY*vs.Zoom)
}

// WorldToScreen maps world space onto framebuffer pixels: bounds is fitted
// into the middle of the viewport with Y pointing up, then zoomed about the
// viewport center and panned.
func (vs *View) WorldToScreen(bounds geom.Rect) (geom.Affine, error) {
	centerX, centerY := vs.center()
	dst := geom.MakeRect(
		geom.MakePoint(centerX, centerY),
		geom.MakePoint(float64(vs.Width)*viewportScaleFactor, float64(vs.Height)*viewportScaleFactor),
	)
	fit, err := geom.FitRect(bounds, dst, true /* flipY */)
	if err != nil {
		return geom.Affine{}, err
	}

	translateToOrigin := geom.MakeAffine(1, 0, -centerX, 0, 1, -centerY)
	uniformScale := geom.MakeAffine(vs.Zoom, 0, 0, 0, vs.Zoom, 0)
	translateBack := geom.MakeAffine(1, 0, centerX+vs.PanX, 0, 1, centerY+vs.PanY)
	return translateBack.Mul(uniformScale.Mul(translateToOrigin.Mul(fit))), nil
}
