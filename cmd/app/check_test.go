package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0FACED/go-fortune-parallel/pkg/voronoi"
)

func TestDiffPairs(t *testing.T) {
	t.Parallel()

	want := [][2]int{{0, 1}, {0, 2}, {1, 3}}
	got := [][2]int{{0, 1}, {1, 2}, {1, 3}, {4, 5}}

	missing, extra := diffPairs(want, got)
	assert.Equal(t, [][2]int{{0, 2}}, missing)
	assert.Equal(t, [][2]int{{1, 2}, {4, 5}}, extra)

	missing, extra = diffPairs(want, want)
	assert.Empty(t, missing)
	assert.Empty(t, extra)
}

func TestCheckRun(t *testing.T) {
	t.Parallel()

	points := []voronoi.Vertex{{X: 1, Y: 2}, {X: 3, Y: 8}, {X: 8, Y: 1}, {X: 7, Y: 7}}
	bbox := voronoi.NewBoundingBox(0, 10, 0, 10)

	var out bytes.Buffer
	require.NoError(t, checkRun(&out, points, bbox, 2, nil))
	assert.Contains(t, out.String(), "chunks=2")
}
