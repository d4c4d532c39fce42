// Package render draws world-space meshes with OpenGL.
//
// Layers are uploaded once through a memory.Controller and drawn with a
// world to NDC matrix, so panning and zooming only change a uniform.
package render

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/sweep/internal/geom"
	"github.com/irfansharif/sweep/internal/memory"
)

type Renderer struct {
	w, h          int
	worldToScreen geom.Affine

	mem     *memory.Controller
	program *Program
	// layers keeps each layer's vertices for re-upload after the buffer
	// grows.
	layers map[memory.LayerID][]float32
	stats  Stats
}

// Stats tracks rendering performance metrics.
type Stats struct {
	LastUploadTimeMs float64 // time spent in last Upload() call in milliseconds
	LastDrawTimeUs   float64 // time spent in last Draw() call in microseconds
}

// NewRenderer compiles the shaders. It needs a current GL context.
func NewRenderer(mem *memory.Controller) (*Renderer, error) {
	program, err := NewProgram()
	if err != nil {
		return nil, err
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return &Renderer{
		worldToScreen: geom.MakeAffine(1, 0, 0, 0, 1, 0),
		mem:           mem,
		program:       program,
		layers:        make(map[memory.LayerID][]float32),
	}, nil
}

// SetView sets the framebuffer size and the transform from world space to
// framebuffer pixels.
func (r *Renderer) SetView(w, h int, worldToScreen geom.Affine) {
	r.w, r.h = w, h
	r.worldToScreen = worldToScreen
}

// Upload replaces a layer's vertices. Empty vertices remove the layer.
func (r *Renderer) Upload(id memory.LayerID, vertices []float32) error {
	startTime := time.Now()
	if len(vertices) == 0 {
		return r.Remove(id)
	}

	r.layers[id] = append(r.layers[id][:0], vertices...)
	if err := r.mem.EnsureSlot(id, vertices); err != nil {
		return fmt.Errorf("uploading layer %d: %w", id, err)
	}

	// Layers that lived in the buffer before it grew need their data back.
	for _, lost := range r.mem.TakeReuploads() {
		if v, ok := r.layers[lost]; ok {
			if err := r.mem.EnsureSlot(lost, v); err != nil {
				return fmt.Errorf("re-uploading layer %d: %w", lost, err)
			}
		}
	}

	r.stats.LastUploadTimeMs = float64(time.Since(startTime).Microseconds()) / 1000.0
	return nil
}

// Remove drops a layer; removing an unknown layer is a no-op.
func (r *Renderer) Remove(id memory.LayerID) error {
	delete(r.layers, id)
	if !r.mem.HasLayer(id) {
		return nil
	}
	return r.mem.RemoveLayer(id)
}

// Draw renders the given layers in order, or all of them.
func (r *Renderer) Draw(ids ...memory.LayerID) {
	startTime := time.Now()
	r.program.SetTransform(r.computeTransformMatrix())
	r.mem.Draw(ids...)
	r.stats.LastDrawTimeUs = float64(time.Since(startTime).Microseconds())
}

// Stats returns the current performance statistics
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Release frees the shader program and the memory controller's buffer.
func (r *Renderer) Release() {
	r.program.Delete()
	r.mem.Release()
}

// computeTransformMatrix computes the complete transformation matrix from world
// coordinates to OpenGL NDC.
func (r *Renderer) computeTransformMatrix() [16]float32 {
	if r.w <= 0 || r.h <= 0 {
		return affineToMatrix4(geom.MakeAffine(1, 0, 0, 0, 1, 0))
	}
	screenToNDC := geom.MakeAffine(
		2.0/float64(r.w), 0, -1,
		0, -2.0/float64(r.h), 1,
	)
	return affineToMatrix4(screenToNDC.Mul(r.worldToScreen))
}

// affineToMatrix4 converts an affine transform to OpenGL 4x4 matrix format.
func affineToMatrix4(transform geom.Affine) [16]float32 {
	return [16]float32{
		float32(transform.A), float32(transform.D), 0, 0,
		float32(transform.B), float32(transform.E), 0, 0,
		0, 0, 1, 0,
		float32(transform.C), float32(transform.F), 0, 1,
	}
}
