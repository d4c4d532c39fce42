package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/sweep/internal/memory"
)

const stride = memory.FloatsPerVertex * 4 // bytes per vertex

// GLBuffer is a VAO+VBO pair holding vertices as (x, y, r, g, b, a).
type GLBuffer struct {
	vao, vbo uint32
}

var _ memory.Buffer = (*GLBuffer)(nil)

// NewGLBuffer creates the vertex array and buffer objects. It needs a current
// GL context.
func NewGLBuffer() *GLBuffer {
	b := &GLBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	// - Attribute 0: position (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	// - Attribute 1: color (vec4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(8))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

func (b *GLBuffer) Resize(capacity int) error {
	if b.vbo == 0 {
		return fmt.Errorf("buffer released")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*stride, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("allocating %d bytes: GL error 0x%x", capacity*stride, e)
	}
	return nil
}

func (b *GLBuffer) Upload(offset int, vertices []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, offset*stride, len(vertices)*4, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *GLBuffer) Draw(firsts, counts []int32) {
	gl.BindVertexArray(b.vao)
	gl.MultiDrawArrays(gl.TRIANGLES, &firsts[0], &counts[0], int32(len(firsts)))
	gl.BindVertexArray(0)
}

func (b *GLBuffer) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
}
