// Package memory manages the vertex storage the viewer draws from.
//
// Every drawable layer (a scenario's shapes, an engine's trace) owns one slot
// in a single shared vertex buffer, so a frame is one multi-draw call and a
// layer can be replaced without touching the others. Slot sizes are rounded up
// to powers of two so a layer that changes a little is updated in place.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/irfansharif/sweep/internal/log"
)

const (
	// FloatsPerVertex is the vertex layout: x, y, r, g, b, a.
	FloatsPerVertex = 6
	bytesPerVertex  = FloatsPerVertex * 4

	minSlotVertices = 1024
	initialCapacity = 16 * minSlotVertices

	// Growth doubles the buffer until the layout fits, up to this size.
	maxBufferBytes = 256 * 1024 * 1024 // 256 MiB
)

// LayerID identifies a drawable layer.
type LayerID int

// Buffer is the vertex storage behind a Controller.
type Buffer interface {
	// Resize reallocates storage for capacity vertices, discarding the
	// contents.
	Resize(capacity int) error
	// Upload writes vertices starting at the given vertex offset.
	Upload(offset int, vertices []float32)
	// Draw issues one draw of the given vertex ranges.
	Draw(firsts, counts []int32)
	Release()
}

// Stats tracks performance metrics for the controller.
type Stats struct {
	Layers           int
	Vertices         int64
	CapacityVertices int
	GPUBytes         int64
	Slots            int
	FreeSlots        int
	DrawCalls        int
	GrowthEvents     int
	LastGrowthTimeUs float64
}

// slot is a fixed-capacity range of the buffer.
type slot struct {
	offset   int
	capacity int
	count    int
	layer    LayerID
	active   bool
}

// Controller assigns layers to slots of a Buffer.
type Controller struct {
	buf      Buffer
	capacity int     // vertices
	end      int     // first vertex past the last slot
	slots    []*slot // sorted by offset
	layers   map[LayerID]*slot
	reupload map[LayerID]bool
	stats    Stats
	log      *log.Logger
}

// NewController allocates the initial buffer.
func NewController(buf Buffer, logger *log.Logger) (*Controller, error) {
	if err := buf.Resize(initialCapacity); err != nil {
		return nil, fmt.Errorf("allocating %d vertices: %w", initialCapacity, err)
	}
	return &Controller{
		buf:      buf,
		capacity: initialCapacity,
		layers:   make(map[LayerID]*slot),
		reupload: make(map[LayerID]bool),
		log:      logger.Named("memory"),
	}, nil
}

// slotCapacity is the smallest power of two slot size that fits n vertices.
func slotCapacity(n int) int {
	c := minSlotVertices
	for c < n {
		c *= 2
	}
	return c
}

// EnsureSlot stores the layer's vertices, reusing its slot when they fit.
func (c *Controller) EnsureSlot(id LayerID, vertices []float32) error {
	if len(vertices) == 0 {
		return fmt.Errorf("cannot allocate empty vertex data for layer %d", id)
	}
	if len(vertices)%FloatsPerVertex != 0 {
		return fmt.Errorf("vertex data must be multiple of %d floats (x,y,r,g,b,a), got %d", FloatsPerVertex, len(vertices))
	}
	n := len(vertices) / FloatsPerVertex

	if s, ok := c.layers[id]; ok {
		if n <= s.capacity {
			s.count = n
			c.buf.Upload(s.offset, vertices)
			delete(c.reupload, id)
			return nil
		}
		c.release(s)
	}

	s, err := c.allocate(n)
	if err != nil {
		return fmt.Errorf("layer %d: %w", id, err)
	}
	s.active, s.layer, s.count = true, id, n
	c.layers[id] = s
	c.buf.Upload(s.offset, vertices)
	delete(c.reupload, id)
	return nil
}

// allocate returns the lowest free slot that fits n vertices, appending a new
// one (growing the buffer if needed) when none does.
func (c *Controller) allocate(n int) (*slot, error) {
	want := slotCapacity(n)
	for _, s := range c.slots {
		if !s.active && s.capacity >= want {
			return s, nil
		}
	}
	if c.end+want > c.capacity {
		if err := c.grow(c.end + want); err != nil {
			return nil, err
		}
	}
	s := &slot{offset: c.end, capacity: want}
	c.end += want
	c.slots = append(c.slots, s)
	return s, nil
}

// grow doubles the buffer until it holds need vertices. The resize discards
// the buffer's contents, so every active layer is marked for re-upload.
func (c *Controller) grow(need int) error {
	start := time.Now()
	capacity := c.capacity
	for capacity < need {
		capacity *= 2
	}
	if capacity*bytesPerVertex > maxBufferBytes {
		return fmt.Errorf("buffer cannot grow to %s vertices (limit %s bytes)", formatNumber(int64(capacity)), formatNumber(maxBufferBytes))
	}
	if err := c.buf.Resize(capacity); err != nil {
		return fmt.Errorf("growing buffer to %d vertices: %w", capacity, err)
	}
	c.log.Debug("grew vertex buffer", log.Int("from", c.capacity), log.Int("to", capacity))
	c.capacity = capacity
	for id := range c.layers {
		c.reupload[id] = true
	}
	c.stats.GrowthEvents++
	c.stats.LastGrowthTimeUs = float64(time.Since(start).Microseconds())
	return nil
}

// release frees the slot and drops trailing free slots from the layout.
func (c *Controller) release(s *slot) {
	delete(c.layers, s.layer)
	delete(c.reupload, s.layer)
	s.active, s.count, s.layer = false, 0, 0
	for len(c.slots) > 0 && !c.slots[len(c.slots)-1].active {
		last := c.slots[len(c.slots)-1]
		c.end = last.offset
		c.slots = c.slots[:len(c.slots)-1]
	}
}

// RemoveLayer frees the layer's slot.
func (c *Controller) RemoveLayer(id LayerID) error {
	s, ok := c.layers[id]
	if !ok {
		return fmt.Errorf("layer %d not found", id)
	}
	c.release(s)
	return nil
}

// HasLayer reports whether the layer has a slot.
func (c *Controller) HasLayer(id LayerID) bool {
	_, ok := c.layers[id]
	return ok
}

// TakeReuploads returns the layers whose data was lost to a buffer resize, in
// ascending order, and clears the list.
func (c *Controller) TakeReuploads() []LayerID {
	if len(c.reupload) == 0 {
		return nil
	}
	ids := make([]LayerID, 0, len(c.reupload))
	for id := range c.reupload {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	c.reupload = make(map[LayerID]bool)
	return ids
}

// Draw renders the given layers, or every layer when none are named, with a
// single draw call. Layers without a slot are skipped.
func (c *Controller) Draw(ids ...LayerID) {
	var firsts, counts []int32
	add := func(s *slot) {
		if s.active && s.count > 0 {
			firsts = append(firsts, int32(s.offset))
			counts = append(counts, int32(s.count))
		}
	}
	if len(ids) == 0 {
		for _, s := range c.slots {
			add(s)
		}
	} else {
		for _, id := range ids {
			if s, ok := c.layers[id]; ok {
				add(s)
			}
		}
	}
	c.stats.DrawCalls = 0
	if len(firsts) == 0 {
		return
	}
	c.buf.Draw(firsts, counts)
	c.stats.DrawCalls = 1
}

// Validate checks that slots are ordered, disjoint, inside the buffer, and
// agree with the layer index.
func (c *Controller) Validate() error {
	var errs []string
	prevEnd := 0
	active := 0
	for i, s := range c.slots {
		if s.offset < prevEnd {
			errs = append(errs, fmt.Sprintf("slot %d at %d overlaps previous slot ending at %d", i, s.offset, prevEnd))
		}
		prevEnd = s.offset + s.capacity
		if s.count > s.capacity {
			errs = append(errs, fmt.Sprintf("slot %d holds %d vertices, capacity %d", i, s.count, s.capacity))
		}
		if !s.active {
			continue
		}
		active++
		if c.layers[s.layer] != s {
			errs = append(errs, fmt.Sprintf("slot %d claims layer %d, which points elsewhere", i, s.layer))
		}
	}
	if prevEnd != c.end {
		errs = append(errs, fmt.Sprintf("layout ends at %d, recorded end %d", prevEnd, c.end))
	}
	if c.end > c.capacity {
		errs = append(errs, fmt.Sprintf("layout end %d exceeds capacity %d", c.end, c.capacity))
	}
	if active != len(c.layers) {
		errs = append(errs, fmt.Sprintf("%d active slots for %d layers", active, len(c.layers)))
	}
	if len(errs) > 0 {
		return fmt.Errorf("layer integrity check failed with %d errors: %s", len(errs), strings.Join(errs, "; "))
	}
	return nil
}

// Release frees the buffer.
func (c *Controller) Release() { c.buf.Release() }

// Stats returns current memory statistics.
func (c *Controller) Stats() Stats {
	c.stats.Layers = len(c.layers)
	c.stats.CapacityVertices = c.capacity
	c.stats.GPUBytes = int64(c.capacity) * bytesPerVertex
	c.stats.Slots = len(c.slots)
	c.stats.Vertices = 0
	c.stats.FreeSlots = 0
	for _, s := range c.slots {
		if s.active {
			c.stats.Vertices += int64(s.count)
		} else {
			c.stats.FreeSlots++
		}
	}
	return c.stats
}

// LogStats writes the slot layout at debug level.
func (c *Controller) LogStats() {
	if !c.log.Enabled(log.LevelDebug) {
		return
	}
	stats := c.Stats()
	util := float64(c.end) / float64(c.capacity)
	c.log.Debug("vertex buffer",
		log.String("used", makeUtilizationBar(util, 12)),
		log.Int("layers", stats.Layers),
		log.String("vertices", formatNumber(stats.Vertices)),
		log.String("gpu", formatNumber(stats.GPUBytes)),
		log.Int("free_slots", stats.FreeSlots),
		log.Int("growth_events", stats.GrowthEvents),
	)
	for _, s := range c.slots {
		if !s.active {
			continue
		}
		c.log.Debug("slot",
			log.Int("layer", int(s.layer)),
			log.String("fill", makeUtilizationBar(float64(s.count)/float64(s.capacity), 8)),
			log.Int("offset", s.offset),
			log.Int("vertices", s.count),
			log.Int("capacity", s.capacity),
		)
	}
}

// makeUtilizationBar creates a visual bar for utilization percentage.
func makeUtilizationBar(utilization float64, width int) string {
	if utilization < 0 {
		utilization = 0
	}
	if utilization > 1 {
		utilization = 1
	}
	filled := int(utilization * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// formatNumber formats large numbers with K/M suffixes for readability.
func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000.0)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000.0)
}
