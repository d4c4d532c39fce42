package scenario

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/sweep/internal/geom"
	"github.com/irfansharif/sweep/internal/trace"
)

func TestDefaultTablePasses(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, table.Scenarios)

	results := Run(table)
	require.Len(t, results, len(table.Scenarios))
	for _, r := range results {
		assert.True(t, r.Pass(), "%s: %v", r.Scenario.Name, r.Problems)
	}
	assert.Empty(t, Failures(results))
}

func TestEvaluateBothEngines(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	sc := &table.Scenarios[0]
	require.Equal(t, Cast, sc.Kind)

	ft, xt := trace.New(), trace.New()
	r := Evaluate(sc, ft, xt)
	require.True(t, r.Pass(), "%v", r.Problems)
	assert.InDelta(t, 2, r.Float.Distance, Tolerance)
	assert.InDelta(t, 2, r.Fixed.Distance, FixedTolerance)
	require.Len(t, r.Fixed.Points, 1)
	assert.Equal(t, geom.Point{X: 3, Y: 0}, r.Fixed.Points[0])
	assert.Positive(t, ft.Len())
	assert.Positive(t, xt.Len())
}

func TestExpectationMismatchIsReported(t *testing.T) {
	dist := 2.5
	sc := &Scenario{
		Name:        "wrong distance",
		Kind:        Cast,
		Shape:       ShapeDef{Circle: &CircleDef{Radius: 1}},
		Target:      ShapeDef{Rect: &RectDef{Center: &Vec{4, 0}, Size: &Vec{2, 2}}},
		Dir:         Vec{1, 0},
		MaxDistance: 10,
		Expect:      Expect{Hit: true, Distance: &dist},
	}
	r := Evaluate(sc, nil, nil)
	require.False(t, r.Pass())
	require.Len(t, r.Problems, 2)
	assert.Contains(t, r.Problems[0], "float: distance")
	assert.Contains(t, r.Problems[1], "fixed: distance")

	sc.Expect = Expect{Hit: false}
	r = Evaluate(sc, nil, nil)
	assert.Len(t, r.Problems, 2)
}

func TestDigest(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	d := Digest(Run(table))
	assert.Equal(t, d, Digest(Run(table)))

	// Changing any scenario changes the digest.
	table.Scenarios[0].MaxDistance = 2.5
	assert.NotEqual(t, d, Digest(Run(table)))
}

func TestCheckDeterminism(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	d, err := CheckDeterminism(context.Background(), table, 8)
	require.NoError(t, err)
	assert.Equal(t, Digest(Run(table)), d)

	_, err = CheckDeterminism(context.Background(), table, 0)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = CheckDeterminism(ctx, table, 4)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{
			name: "unknown kind",
			yaml: `
scenarios:
  - name: x
    kind: bounce
    shape: {circle: {center: [0, 0], radius: 1}}
    target: {circle: {center: [0, 0], radius: 1}}
`,
			want: `unknown kind "bounce"`,
		},
		{
			name: "two shapes",
			yaml: `
scenarios:
  - name: x
    kind: overlap
    shape: {circle: {center: [0, 0], radius: 1}, line: {p1: [0, 0], p2: [1, 1]}}
    target: {circle: {center: [0, 0], radius: 1}}
`,
			want: "want exactly one shape, got 2",
		},
		{
			name: "incomplete rect",
			yaml: `
scenarios:
  - name: x
    kind: overlap
    shape: {rect: {center: [0, 0]}}
    target: {circle: {center: [0, 0], radius: 1}}
`,
			want: "rect needs center and size",
		},
		{
			name: "zero dir",
			yaml: `
scenarios:
  - name: x
    kind: cast
    shape: {circle: {center: [0, 0], radius: 1}}
    target: {circle: {center: [5, 0], radius: 1}}
    max_distance: 1
`,
			want: "non-zero dir",
		},
		{
			name: "duplicate name",
			yaml: `
scenarios:
  - name: x
    kind: overlap
    shape: {circle: {center: [0, 0], radius: 1}}
    target: {circle: {center: [0, 0], radius: 1}}
  - name: x
    kind: overlap
    shape: {circle: {center: [0, 0], radius: 1}}
    target: {circle: {center: [0, 0], radius: 1}}
`,
			want: "duplicate name",
		},
		{
			name: "unknown field",
			yaml: `
scenarios:
  - name: x
    kind: overlap
    colour: red
`,
			want: "colour",
		},
		{
			name: "short point",
			yaml: `
scenarios:
  - name: x
    kind: overlap
    shape: {circle: {center: [0], radius: 1}}
    target: {circle: {center: [0, 0], radius: 1}}
`,
			want: "invalid array",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scenarios:
  - name: touching circles
    kind: overlap
    shape: {circle: {center: [0, 0], radius: 1}}
    target: {circle: {center: [2, 0], radius: 1}}
    expect: {hit: true}
`), 0o644))

	t.Setenv(TableEnv, path)
	table, err := Resolve("")
	require.NoError(t, err)
	require.Len(t, table.Scenarios, 1)
	assert.Empty(t, Failures(Run(table)))

	t.Setenv(TableEnv, "")
	table, err = Resolve("")
	require.NoError(t, err)
	assert.Greater(t, len(table.Scenarios), 1)

	_, err = Resolve(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
