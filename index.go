package texturepacker

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bodgit/texturepacker/grid"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pkg/errors"
)

// Index is a sqlite database recording where each image was placed on the
// most recently packed sheet.
type Index struct {
	db *sql.DB
}

// Cell is a single placed image as recorded in an Index.
type Cell struct {
	Index  int
	Name   string
	X, Y   int
	Width  int
	Height int
}

// OpenIndex opens, creating if necessary, the index database at file.
func OpenIndex(file string) (*Index, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sheet (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, side INTEGER NOT NULL, cell_width INTEGER NOT NULL, cell_height INTEGER NOT NULL, count INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS cell (sheet_id INTEGER NOT NULL, idx INTEGER NOT NULL, name TEXT NOT NULL, x INTEGER NOT NULL, y INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, PRIMARY KEY (sheet_id, idx), FOREIGN KEY(sheet_id) REFERENCES sheet(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &Index{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func cellName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// Record replaces the contents of the index with the layout of the sheet
// written to path.
func (ix *Index) Record(path string, spec grid.Spec, rasters []Raster) (err error) {
	tx, err := ix.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM cell"); err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM sheet"); err != nil {
		return err
	}

	result, err := tx.Exec("INSERT INTO sheet (path, width, height, side, cell_width, cell_height, count) VALUES (?, ?, ?, ?, ?, ?, ?)", path, spec.Width(), spec.Height(), spec.Side, spec.CellWidth, spec.CellHeight, spec.Count)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for i, r := range rasters {
		rect := spec.Cell(i)
		if _, err = tx.Exec("INSERT INTO cell (sheet_id, idx, name, x, y, width, height) VALUES (?, ?, ?, ?, ?, ?, ?)", id, i, cellName(r.Path), rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Sheet returns the path and layout of the recorded sheet.
func (ix *Index) Sheet() (string, grid.Spec, error) {
	var path string
	var spec grid.Spec
	switch err := ix.db.QueryRow("SELECT path, side, cell_width, cell_height, count FROM sheet LIMIT 1").Scan(&path, &spec.Side, &spec.CellWidth, &spec.CellHeight, &spec.Count); err {
	case sql.ErrNoRows:
		return "", grid.Spec{}, errors.New("index is empty")
	case nil:
		return path, spec, nil
	default:
		return "", grid.Spec{}, err
	}
}

// Cells returns every recorded cell in placement order.
func (ix *Index) Cells() ([]Cell, error) {
	rows, err := ix.db.Query("SELECT idx, name, x, y, width, height FROM cell ORDER BY idx")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []Cell
	for rows.Next() {
		var c Cell
		if err := rows.Scan(&c.Index, &c.Name, &c.X, &c.Y, &c.Width, &c.Height); err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}

	return cells, rows.Err()
}

// Lookup returns the cell recorded for the image with the given name.
func (ix *Index) Lookup(name string) (*Cell, error) {
	c := Cell{Name: name}
	switch err := ix.db.QueryRow("SELECT idx, x, y, width, height FROM cell WHERE name = ? ORDER BY idx LIMIT 1", name).Scan(&c.Index, &c.X, &c.Y, &c.Width, &c.Height); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &c, nil
	default:
		return nil, err
	}
}
