package scenario

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/irfansharif/sweep/internal/fixgeom"
)

// Digest hashes the fixed engine's raw outcomes. Identical inputs must give
// identical digests on every platform.
func Digest(results []Result) uint64 {
	d := xxhash.New()
	var buf [8]byte
	putPoint := func(p fixgeom.Point) {
		binary.LittleEndian.PutUint32(buf[:4], uint32(p.X))
		binary.LittleEndian.PutUint32(buf[4:], uint32(p.Y))
		_, _ = d.Write(buf[:])
	}
	putUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	for _, r := range results {
		_, _ = d.WriteString(r.Scenario.Name)
		var flags uint64
		if r.Fixed.Hit {
			flags |= 1
		}
		if r.Fixed.Unsupported {
			flags |= 2
		}
		putUint(flags)
		h := r.FixedCast
		putUint(math.Float64bits(h.T))
		putPoint(h.Travel)
		putPoint(h.PointOnShape)
		putPoint(h.PointOnTarget)
		putUint(uint64(len(r.FixedPoints)))
		for _, p := range r.FixedPoints {
			putPoint(p)
		}
	}
	return d.Sum64()
}

// CheckDeterminism evaluates the table runs times concurrently and returns
// the common digest, or an error naming the first run that disagrees.
func CheckDeterminism(ctx context.Context, t *Table, runs int) (uint64, error) {
	if runs < 1 {
		return 0, fmt.Errorf("runs = %d, want at least 1", runs)
	}
	digests := make([]uint64, runs)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < runs; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			digests[i] = Digest(Run(t))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	for i, d := range digests[1:] {
		if d != digests[0] {
			return 0, fmt.Errorf("run %d digest %016x differs from run 0 digest %016x", i+1, d, digests[0])
		}
	}
	return digests[0], nil
}
