package params

// MBTiles schema DDL.
// https://github.com/mapbox/mbtiles-spec
// The table and index shapes are load-bearing for compatibility;
// existing consumers expect exactly these names and columns.
const (
	CreateMetadataTableSQL = `CREATE TABLE metadata (name TEXT, value TEXT)`

	CreateTilesTableSQL = `CREATE TABLE tiles (zoom_level INTEGER, tile_column INTEGER, tile_row INTEGER, tile_data BLOB)`

	CreateTileIndexSQL = `CREATE UNIQUE INDEX tile_index ON tiles (zoom_level, tile_column, tile_row)`
)
