package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidBoundingBox = errors.New("invalid bounding box")

// BoundingBox is a geographic rectangle in decimal degrees,
// fields ordered the way the CLI takes them: N,E,S,W.
// It is a plain value; construct and pass by copy.
type BoundingBox struct {
	North float64
	East  float64
	South float64
	West  float64
}

// ParseBoundingBox parses a "N,E,S,W" string into a BoundingBox.
// Exactly four comma-separated fields are required; whitespace around
// each field is tolerated. Every field must parse as a finite number.
// No range validation happens here: an inverted box (west > east,
// north < south) is legal and selects nothing downstream.
func ParseBoundingBox(s string) (BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("%w: want 4 values N,E,S,W, got %d: %q",
			ErrInvalidBoundingBox, len(parts), s)
	}
	names := [4]string{"north", "east", "south", "west"}
	values := [4]float64{}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("%w: bad %s value %q",
				ErrInvalidBoundingBox, names[i], part)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return BoundingBox{}, fmt.Errorf("%w: %s value %q is not finite",
				ErrInvalidBoundingBox, names[i], part)
		}
		values[i] = v
	}
	return BoundingBox{
		North: values[0],
		East:  values[1],
		South: values[2],
		West:  values[3],
	}, nil
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("%v,%v,%v,%v", b.North, b.East, b.South, b.West)
}

// TileBounds maps the box onto the tile grid at zoom, returning the
// inclusive column range [xMin, xMax] and row range [yMin, yMax].
// Columns come straight from the slippy-map formula; rows are computed
// slippy (row 0 north) and then flipped to the TMS convention
// (row 0 south) that MBTiles stores. Since the flip reverses order,
// the minimum TMS row derives from the southern edge and the maximum
// from the northern. Each of the four results is clamped independently
// to [0, 2^zoom-1].
//
// Boxes crossing the antimeridian, or inverted boxes, yield
// xMin > xMax or yMin > yMax and are not corrected; a BETWEEN query
// over such a range matches nothing.
func (b BoundingBox) TileBounds(zoom int) (xMin, xMax, yMin, yMax int) {
	n := math.Exp2(float64(zoom))

	xMin = clampTile(math.Floor((b.West+180)/360*n), n)
	xMax = clampTile(math.Floor((b.East+180)/360*n), n)

	ySlipNorth := math.Floor((1 - math.Asinh(math.Tan(b.North*math.Pi/180))/math.Pi) / 2 * n)
	ySlipSouth := math.Floor((1 - math.Asinh(math.Tan(b.South*math.Pi/180))/math.Pi) / 2 * n)
	yMin = clampTile(n-1-ySlipSouth, n)
	yMax = clampTile(n-1-ySlipNorth, n)
	return
}

// clampTile clamps in the float domain before converting, so that the
// projections of extreme coordinates saturate instead of overflowing
// the int conversion.
func clampTile(f, n float64) int {
	if f < 0 {
		return 0
	}
	if f > n-1 {
		return int(n) - 1
	}
	return int(f)
}
