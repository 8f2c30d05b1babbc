package api

import (
	"log/slog"
	"math"
	"testing"

	"github.com/rotblauer/tilecut/common"
)

func TestInfo(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn)()

	source := writeSourceArchive(t, fiveTiles)
	info, err := Info(source)
	if err != nil {
		t.Fatal(err)
	}

	if info.Size == 0 {
		t.Error("size = 0")
	}
	if len(info.Metadata) != len(testMetadata) {
		t.Errorf("metadata entries = %d, want %d", len(info.Metadata), len(testMetadata))
	}
	if len(info.Zooms) != 2 {
		t.Fatalf("zoom levels = %d, want 2", len(info.Zooms))
	}

	z0, z1 := info.Zooms[0], info.Zooms[1]
	if z0.Zoom != 0 || z0.Tiles != 1 {
		t.Errorf("zoom 0: %+v", z0)
	}
	if z1.Zoom != 1 || z1.Tiles != 4 {
		t.Errorf("zoom 1: %+v", z1)
	}
	if z1.XMin != 0 || z1.XMax != 1 || z1.YMin != 0 || z1.YMax != 1 {
		t.Errorf("zoom 1 range: %+v", z1)
	}

	// Full zoom-1 occupancy covers the whole Mercator world.
	b := info.Coverage
	if math.Abs(b.Min[0]+180) > 1e-6 || math.Abs(b.Max[0]-180) > 1e-6 {
		t.Errorf("coverage longitude = [%v, %v], want [-180, 180]", b.Min[0], b.Max[0])
	}
	if math.Abs(b.Min[1]+85.05112878) > 1e-4 || math.Abs(b.Max[1]-85.05112878) > 1e-4 {
		t.Errorf("coverage latitude = [%v, %v], want [-85.0511, 85.0511]", b.Min[1], b.Max[1])
	}
}

func TestInfoEmptyArchive(t *testing.T) {
	defer common.SlogResetLevel(slog.LevelWarn)()

	source := writeSourceArchive(t, nil)
	info, err := Info(source)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Zooms) != 0 {
		t.Errorf("zoom levels = %d, want 0", len(info.Zooms))
	}
}
