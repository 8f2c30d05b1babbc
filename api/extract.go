package api

import (
	"log/slog"

	"github.com/rotblauer/tilecut/geo"
	"github.com/rotblauer/tilecut/mbtiles"
)

// Extract copies every tile of the source archive that falls inside
// bbox into a newly created archive at dest, along with a verbatim
// copy of the source metadata, and returns the number of tiles copied.
//
// The tile rectangle is computed per zoom level for each zoom present
// in the source. All tile inserts share one transaction: on any row
// failure the destination ends up with zero tiles. Metadata is written
// before and outside that transaction, so a failed tile copy can leave
// metadata behind in the (disposable) destination file.
func Extract(source, dest string, bbox geo.BoundingBox) (int, error) {
	logger := slog.With("op", "extract", "source", source, "dest", dest)

	reader, err := mbtiles.OpenReader(source)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	writer, err := mbtiles.CreateWriter(dest)
	if err != nil {
		return 0, err
	}
	defer writer.Close()

	meta, err := reader.Metadata()
	if err != nil {
		return 0, err
	}
	if err := writer.PutMetadata(meta); err != nil {
		return 0, err
	}
	logger.Debug("Copied metadata", "entries", len(meta))

	zooms, err := reader.ZoomLevels()
	if err != nil {
		return 0, err
	}

	tx, err := writer.BeginTiles()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	copied := 0
	for _, zoom := range zooms {
		xMin, xMax, yMin, yMax := bbox.TileBounds(zoom)
		logger.Debug("Tile bounds",
			"zoom", zoom, "xMin", xMin, "xMax", xMax, "yMin", yMin, "yMax", yMax)

		err := reader.EachTileInRange(zoom, xMin, xMax, yMin, yMax, func(t mbtiles.Tile) error {
			if err := tx.Put(t); err != nil {
				return err
			}
			copied++
			return nil
		})
		if err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	logger.Info("Extraction complete", "tiles", copied)
	return copied, nil
}
