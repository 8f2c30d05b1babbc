package geo

import (
	"errors"
	"testing"
)

func TestParseBoundingBox(t *testing.T) {
	b, err := ParseBoundingBox("85.0511, 180, -85.0511, -180")
	if err != nil {
		t.Fatal(err)
	}
	if b.North != 85.0511 || b.East != 180 || b.South != -85.0511 || b.West != -180 {
		t.Errorf("parsed wrong: %+v", b)
	}
}

func TestParseBoundingBoxRejects(t *testing.T) {
	for _, s := range []string{
		"1,2,3",
		"1,2,3,4,5",
		"",
		"a,b,c,d",
		"1,2,3,x",
		"NaN,2,3,4",
		"1,+Inf,3,4",
	} {
		if _, err := ParseBoundingBox(s); !errors.Is(err, ErrInvalidBoundingBox) {
			t.Errorf("ParseBoundingBox(%q) err = %v, want ErrInvalidBoundingBox", s, err)
		}
	}
}

func TestTileBoundsWholeWorld(t *testing.T) {
	// The Mercator-valid extent covers the full grid at every zoom.
	world := BoundingBox{North: 85.0511, East: 180, South: -85.0511, West: -180}
	for zoom := 0; zoom <= 8; zoom++ {
		n := 1 << uint(zoom)
		xMin, xMax, yMin, yMax := world.TileBounds(zoom)
		if xMin != 0 || xMax != n-1 || yMin != 0 || yMax != n-1 {
			t.Errorf("zoom %d: got (%d,%d,%d,%d), want (0,%d,0,%d)",
				zoom, xMin, xMax, yMin, yMax, n-1, n-1)
		}
	}
}

func TestTileBoundsClamped(t *testing.T) {
	// However absurd the box, every index stays on the grid.
	boxes := []BoundingBox{
		{North: 90, East: 500, South: -90, West: -500},
		{North: 9999, East: 1e300, South: -9999, West: -1e300},
		{North: -90, East: -180.0001, South: 90, West: 180.0001},
	}
	for _, b := range boxes {
		for zoom := 0; zoom <= 12; zoom++ {
			n := 1 << uint(zoom)
			xMin, xMax, yMin, yMax := b.TileBounds(zoom)
			for _, v := range []int{xMin, xMax, yMin, yMax} {
				if v < 0 || v > n-1 {
					t.Errorf("box %v zoom %d: index %d out of [0,%d]", b, zoom, v, n-1)
				}
			}
		}
	}
}

func TestTileBoundsPoint(t *testing.T) {
	// A degenerate point box selects exactly one tile at every zoom.
	points := []BoundingBox{
		{North: 46.9293, East: -114.0877, South: 46.9293, West: -114.0877},
		{North: 0, East: 0, South: 0, West: 0},
		{North: -33.8688, East: 151.2093, South: -33.8688, West: 151.2093},
	}
	for _, b := range points {
		for zoom := 0; zoom <= 16; zoom++ {
			xMin, xMax, yMin, yMax := b.TileBounds(zoom)
			if xMin != xMax || yMin != yMax {
				t.Errorf("point %v zoom %d: got range (%d,%d,%d,%d), want single tile",
					b, zoom, xMin, xMax, yMin, yMax)
			}
		}
	}
}

func TestTileBoundsNortheastQuadrant(t *testing.T) {
	b := BoundingBox{North: 85, East: 180, South: 0.1, West: 0.1}
	xMin, xMax, yMin, yMax := b.TileBounds(1)
	// Slippy (1,0) is the NE quadrant; TMS flips it to row 1.
	if xMin != 1 || xMax != 1 || yMin != 1 || yMax != 1 {
		t.Errorf("got (%d,%d,%d,%d), want (1,1,1,1)", xMin, xMax, yMin, yMax)
	}
}

func TestTileBoundsInvertedUncorrected(t *testing.T) {
	// An antimeridian-crossing box keeps its inverted column range;
	// downstream range queries select nothing. Not corrected here.
	b := BoundingBox{North: 10, East: -170, South: -10, West: 170}
	xMin, xMax, _, _ := b.TileBounds(4)
	if xMin <= xMax {
		t.Errorf("got xMin=%d <= xMax=%d, want inverted range preserved", xMin, xMax)
	}
}

func TestTileBoundsTMSFlip(t *testing.T) {
	// Northern hemisphere boxes land in the upper half of the TMS
	// row range (larger row numbers), southern in the lower.
	north := BoundingBox{North: 60, East: 10, South: 50, West: 0}
	south := BoundingBox{North: -50, East: 10, South: -60, West: 0}
	for zoom := 2; zoom <= 10; zoom++ {
		half := (1 << uint(zoom)) / 2
		_, _, nMin, _ := north.TileBounds(zoom)
		_, _, _, sMax := south.TileBounds(zoom)
		if nMin < half {
			t.Errorf("zoom %d: northern box yMin=%d below midline %d", zoom, nMin, half)
		}
		if sMax >= half {
			t.Errorf("zoom %d: southern box yMax=%d above midline %d", zoom, sMax, half)
		}
	}
}
