// Package mbtiles reads and writes MBTiles archives, the SQLite
// container with a metadata table and a tiles table keyed on
// (zoom_level, tile_column, tile_row). Rows use the TMS convention,
// row 0 southernmost.
package mbtiles

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotblauer/tilecut/params"
)

var (
	ErrSourceArchive = errors.New("unreadable source archive")
	ErrDestArchive   = errors.New("unwritable destination archive")
	ErrCopy          = errors.New("row copy failed")
)

// MetadataEntry is one metadata row. Names are not unique;
// the table carries no constraints at all.
type MetadataEntry struct {
	Name  string
	Value string
}

// Tile is one tiles-table row. Row is TMS.
type Tile struct {
	Zoom   int
	Column int
	Row    int
	Data   []byte
}

// A Reader is a read-only handle on an existing archive.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens the archive at path read-only.
// Missing files and files without the MBTiles tables fail here,
// not at the first query.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceArchive, path, err)
	}
	r := &Reader{db: db, path: path}
	if err := r.probe(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// probe forces the lazy sql.Open to actually touch the file and
// checks both MBTiles tables exist.
func (r *Reader) probe() error {
	for _, table := range []string{"metadata", "tiles"} {
		var name string
		err := r.db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`,
			table).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s: no %s table", ErrSourceArchive, r.path, table)
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSourceArchive, r.path, err)
		}
	}
	return nil
}

func (r *Reader) Path() string {
	return r.path
}

func (r *Reader) Close() error {
	return r.db.Close()
}

// Metadata returns all metadata rows in table order,
// duplicates and all.
func (r *Reader) Metadata() ([]MetadataEntry, error) {
	rows, err := r.db.Query(`SELECT name, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: metadata: %v", ErrCopy, r.path, err)
	}
	defer rows.Close()
	var entries []MetadataEntry
	for rows.Next() {
		var e MetadataEntry
		if err := rows.Scan(&e.Name, &e.Value); err != nil {
			return nil, fmt.Errorf("%w: %s: metadata: %v", ErrCopy, r.path, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: metadata: %v", ErrCopy, r.path, err)
	}
	return entries, nil
}

// ZoomLevels returns the distinct zoom levels present, ascending.
func (r *Reader) ZoomLevels() ([]int, error) {
	rows, err := r.db.Query(`SELECT DISTINCT zoom_level FROM tiles ORDER BY zoom_level`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: zoom levels: %v", ErrCopy, r.path, err)
	}
	defer rows.Close()
	var zooms []int
	for rows.Next() {
		var z int
		if err := rows.Scan(&z); err != nil {
			return nil, fmt.Errorf("%w: %s: zoom levels: %v", ErrCopy, r.path, err)
		}
		zooms = append(zooms, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: zoom levels: %v", ErrCopy, r.path, err)
	}
	return zooms, nil
}

// EachTileInRange calls fn for every tile at zoom with column in
// [xMin, xMax] and row in [yMin, yMax], both inclusive. An inverted
// range matches nothing. Iteration stops at the first fn error.
func (r *Reader) EachTileInRange(zoom, xMin, xMax, yMin, yMax int, fn func(Tile) error) error {
	rows, err := r.db.Query(
		`SELECT tile_column, tile_row, tile_data FROM tiles
		 WHERE zoom_level = ? AND tile_column BETWEEN ? AND ? AND tile_row BETWEEN ? AND ?`,
		zoom, xMin, xMax, yMin, yMax)
	if err != nil {
		return fmt.Errorf("%w: %s: tiles z=%d: %v", ErrCopy, r.path, zoom, err)
	}
	defer rows.Close()
	for rows.Next() {
		t := Tile{Zoom: zoom}
		if err := rows.Scan(&t.Column, &t.Row, &t.Data); err != nil {
			return fmt.Errorf("%w: %s: tiles z=%d: %v", ErrCopy, r.path, zoom, err)
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s: tiles z=%d: %v", ErrCopy, r.path, zoom, err)
	}
	return nil
}

// CountTiles returns the number of tiles stored at zoom.
func (r *Reader) CountTiles(zoom int) (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM tiles WHERE zoom_level = ?`, zoom).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: count z=%d: %v", ErrCopy, r.path, zoom, err)
	}
	return n, nil
}

// TileRange returns the occupied column and row extents at zoom.
// ok is false when the zoom level holds no tiles.
func (r *Reader) TileRange(zoom int) (xMin, xMax, yMin, yMax int, ok bool, err error) {
	var cMin, cMax, rMin, rMax sql.NullInt64
	err = r.db.QueryRow(
		`SELECT MIN(tile_column), MAX(tile_column), MIN(tile_row), MAX(tile_row)
		 FROM tiles WHERE zoom_level = ?`, zoom).Scan(&cMin, &cMax, &rMin, &rMax)
	if err != nil {
		return 0, 0, 0, 0, false, fmt.Errorf("%w: %s: range z=%d: %v", ErrCopy, r.path, zoom, err)
	}
	if !cMin.Valid {
		return 0, 0, 0, 0, false, nil
	}
	return int(cMin.Int64), int(cMax.Int64), int(rMin.Int64), int(rMax.Int64), true, nil
}

// A Writer is a handle on a freshly created archive.
type Writer struct {
	db   *sql.DB
	path string
}

// CreateWriter creates the archive at path and writes the MBTiles
// schema as its first act. A pre-existing file already holding the
// schema fails here; the destination is always built from scratch.
func CreateWriter(path string) (*Writer, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDestArchive, path, err)
	}
	w := &Writer{db: db, path: path}
	if err := w.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) createSchema() error {
	for _, stmt := range []string{
		params.CreateMetadataTableSQL,
		params.CreateTilesTableSQL,
		params.CreateTileIndexSQL,
	} {
		if _, err := w.db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDestArchive, w.path, err)
		}
	}
	return nil
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Close() error {
	return w.db.Close()
}

// PutMetadata appends entries verbatim, preserving order.
// Deliberately outside any tile transaction; metadata and tiles are
// separate durability units.
func (w *Writer) PutMetadata(entries []MetadataEntry) error {
	stmt, err := w.db.Prepare(`INSERT INTO metadata (name, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: %s: metadata: %v", ErrCopy, w.path, err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.Exec(e.Name, e.Value); err != nil {
			return fmt.Errorf("%w: %s: metadata %q: %v", ErrCopy, w.path, e.Name, err)
		}
	}
	return nil
}

// A TileTx batches tile inserts in one transaction.
type TileTx struct {
	tx     *sql.Tx
	insert *sql.Stmt
	path   string
}

// BeginTiles opens the tile-copy transaction. All Put calls across
// all zoom levels ride on it; nothing is visible until Commit.
func (w *Writer) BeginTiles() (*TileTx, error) {
	tx, err := w.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: begin: %v", ErrCopy, w.path, err)
	}
	insert, err := tx.Prepare(
		`INSERT INTO tiles (zoom_level, tile_column, tile_row, tile_data) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %s: prepare: %v", ErrCopy, w.path, err)
	}
	return &TileTx{tx: tx, insert: insert, path: w.path}, nil
}

func (t *TileTx) Put(tile Tile) error {
	if _, err := t.insert.Exec(tile.Zoom, tile.Column, tile.Row, tile.Data); err != nil {
		return fmt.Errorf("%w: %s: tile z=%d x=%d y=%d: %v",
			ErrCopy, t.path, tile.Zoom, tile.Column, tile.Row, err)
	}
	return nil
}

func (t *TileTx) Commit() error {
	t.insert.Close()
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s: commit: %v", ErrCopy, t.path, err)
	}
	return nil
}

// Rollback abandons the transaction. Safe to defer after Commit.
func (t *TileTx) Rollback() error {
	return t.tx.Rollback()
}
