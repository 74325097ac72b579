package main

import (
	"bufio"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/0x0FACED/go-fortune-parallel/pkg/voronoi"
)

// Генерируем случайные точки для станций. Одинаковый seed даёт одинаковый набор.
func generateRandStations(n int, bbox voronoi.BoundingBox, seed int64) []voronoi.Vertex {
	rnd := rand.New(rand.NewSource(seed))
	stations := make([]voronoi.Vertex, n)
	for i := range stations {
		stations[i] = voronoi.Vertex{
			X: bbox.Xl + rnd.Float64()*bbox.Width(),
			Y: bbox.Yt + rnd.Float64()*bbox.Height(),
		}
	}
	return stations
}

// Станции по сетке. Каждую чуть сдвигаем, иначе у сетки четыре сайта на одной
// окружности и вершины вырождаются на границах чанков.
func generateFixStations(n int, bbox voronoi.BoundingBox) []voronoi.Vertex {
	stations := make([]voronoi.Vertex, 0, n)

	rows := int(math.Sqrt(float64(n)))
	if rows == 0 {
		return stations
	}
	cols := (n + rows - 1) / rows

	xStep := bbox.Width() / float64(cols)
	yStep := bbox.Height() / float64(rows)
	rnd := rand.New(rand.NewSource(int64(n)))

	for i := 0; i < rows && len(stations) < n; i++ {
		for j := 0; j < cols && len(stations) < n; j++ {
			x := bbox.Xl + xStep/2 + float64(j)*xStep + (rnd.Float64()-0.5)*xStep*0.02
			y := bbox.Yt + yStep/2 + float64(i)*yStep + (rnd.Float64()-0.5)*yStep*0.02
			stations = append(stations, voronoi.Vertex{X: x, Y: y})
		}
	}

	return stations
}

// readPoints разбирает строки "x y" (или "x,y"). Пустые строки и # пропускаются.
func readPoints(r io.Reader) ([]voronoi.Vertex, error) {
	var points []voronoi.Vertex

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) != 2 {
			return nil, errors.Errorf("line %d: want \"x y\", got %q", line, text)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		points = append(points, voronoi.Vertex{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read points")
	}
	return points, nil
}
