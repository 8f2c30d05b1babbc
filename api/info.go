package api

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/rotblauer/tilecut/mbtiles"
)

type ZoomLevelInfo struct {
	Zoom  int
	Tiles int64

	// Occupied extents, rows TMS as stored.
	XMin, XMax int
	YMin, YMax int
}

type ArchiveInfo struct {
	Path     string
	Size     int64
	Metadata []mbtiles.MetadataEntry
	Zooms    []ZoomLevelInfo

	// Coverage is the geographic bound of the occupied tile range
	// at the deepest zoom level. Zero for an empty archive.
	Coverage orb.Bound
}

// Info summarizes an archive: its metadata, per-zoom tile counts and
// extents, and the geographic coverage of the deepest zoom level.
func Info(source string) (*ArchiveInfo, error) {
	reader, err := mbtiles.OpenReader(source)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	info := &ArchiveInfo{Path: source}
	if fi, err := os.Stat(source); err == nil {
		info.Size = fi.Size()
	}

	info.Metadata, err = reader.Metadata()
	if err != nil {
		return nil, err
	}

	zooms, err := reader.ZoomLevels()
	if err != nil {
		return nil, err
	}
	for _, zoom := range zooms {
		count, err := reader.CountTiles(zoom)
		if err != nil {
			return nil, err
		}
		xMin, xMax, yMin, yMax, ok, err := reader.TileRange(zoom)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		info.Zooms = append(info.Zooms, ZoomLevelInfo{
			Zoom: zoom, Tiles: count,
			XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax,
		})
	}
	if len(info.Zooms) > 0 {
		info.Coverage = coverage(info.Zooms[len(info.Zooms)-1])
	}
	return info, nil
}

// coverage projects one zoom level's occupied tile range back to
// degrees. MBTiles rows are TMS and maptile wants slippy, so rows
// flip before the corner tiles are bounded.
func coverage(z ZoomLevelInfo) orb.Bound {
	n := 1 << uint(z.Zoom)
	zoom := maptile.Zoom(z.Zoom)
	nw := maptile.Tile{X: uint32(z.XMin), Y: uint32(n - 1 - z.YMax), Z: zoom}
	se := maptile.Tile{X: uint32(z.XMax), Y: uint32(n - 1 - z.YMin), Z: zoom}
	return nw.Bound().Union(se.Bound())
}
