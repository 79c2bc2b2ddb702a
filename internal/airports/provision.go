package airports

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ngmaloney/skycast/internal/database"
)

var provisionMu sync.Mutex

// Sources names the reference files imported on first start
type Sources struct {
	CoordinatesCSV string // columns: Airport, Latitude, Longitude
	TypesCSV       string // columns: origin, type
	Shapefile      string // optional point shapefile with iata_code/type attributes
}

// NeedsProvisioning reports whether the coordinate table is missing or empty
func NeedsProvisioning(db *sql.DB) (bool, error) {
	exists, err := database.TableExists(db, "airport_coords")
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}
	count, err := database.RowCount(db, "airport_coords")
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Provision imports the reference tables into the database at dbPath when
// they are not there yet. Progress messages go to progressChan when it is
// non-nil, otherwise to the default logger.
func Provision(dbPath string, src Sources, progressChan chan<- string) error {
	provisionMu.Lock()
	defer provisionMu.Unlock()

	sendProgress := func(msg string) {
		if progressChan != nil {
			progressChan <- msg
		} else {
			slog.Info(msg)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	needs, err := NeedsProvisioning(db)
	if err != nil {
		return err
	}
	if !needs {
		return nil
	}

	sendProgress("Airport reference tables not found, provisioning...")
	if err := database.EnsureReferenceSchema(db); err != nil {
		return err
	}

	if src.CoordinatesCSV != "" {
		sendProgress(fmt.Sprintf("Importing airport coordinates from %s...", src.CoordinatesCSV))
		n, err := importFile(src.CoordinatesCSV, func(r io.Reader) (int, error) {
			return ImportCoordinates(db, r)
		})
		if err != nil {
			return fmt.Errorf("importing coordinates: %w", err)
		}
		sendProgress(fmt.Sprintf("Imported %d airport coordinates", n))
	}

	if src.Shapefile != "" {
		sendProgress(fmt.Sprintf("Importing airports from shapefile %s...", src.Shapefile))
		n, err := ImportShapefile(db, src.Shapefile)
		if err != nil {
			return fmt.Errorf("importing shapefile: %w", err)
		}
		sendProgress(fmt.Sprintf("Imported %d airports from shapefile", n))
	}

	if src.TypesCSV != "" {
		sendProgress(fmt.Sprintf("Importing airport types from %s...", src.TypesCSV))
		n, err := importFile(src.TypesCSV, func(r io.Reader) (int, error) {
			return ImportTypes(db, r)
		})
		if err != nil {
			return fmt.Errorf("importing types: %w", err)
		}
		sendProgress(fmt.Sprintf("Imported %d airport types", n))
	}

	sendProgress(fmt.Sprintf("Successfully provisioned airport reference data at %s", dbPath))
	return nil
}

// Load provisions the reference database if needed and returns a resolver
// holding both tables in memory.
func Load(dbPath string, src Sources) (*Resolver, error) {
	if err := Provision(dbPath, src, nil); err != nil {
		return nil, err
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := database.EnsureReferenceSchema(db); err != nil {
		return nil, err
	}
	return LoadResolver(db)
}

func importFile(path string, fn func(io.Reader) (int, error)) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return fn(f)
}

// ImportCoordinates loads an Airport,Latitude,Longitude CSV into
// airport_coords. Rows with unparsable coordinates are skipped, and the
// first row wins when a code appears more than once.
func ImportCoordinates(db *sql.DB, r io.Reader) (int, error) {
	return importCSV(db, r,
		[]string{"Airport", "Latitude", "Longitude"},
		"INSERT OR IGNORE INTO airport_coords (code, latitude, longitude) VALUES (?, ?, ?)",
		func(fields []string) ([]any, bool) {
			lat, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
			if err != nil {
				return nil, false
			}
			lon, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
			if err != nil {
				return nil, false
			}
			return []any{normalize(fields[0]), lat, lon}, true
		})
}

// ImportTypes loads an origin,type CSV into airport_types. As with
// coordinates, the first row for a code wins.
func ImportTypes(db *sql.DB, r io.Reader) (int, error) {
	return importCSV(db, r,
		[]string{"origin", "type"},
		"INSERT OR IGNORE INTO airport_types (code, type) VALUES (?, ?)",
		func(fields []string) ([]any, bool) {
			kind := strings.TrimSpace(fields[1])
			if kind == "" {
				return nil, false
			}
			return []any{normalize(fields[0]), kind}, true
		})
}

// importCSV reads a CSV with a header row, picks the named columns in order
// and inserts each converted row in a single transaction.
func importCSV(db *sql.DB, r io.Reader, columns []string, insert string, convert func([]string) ([]any, bool)) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	idx, err := columnIndexes(header, columns)
	if err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // Skip malformed lines
		}

		fields := make([]string, len(idx))
		ok := true
		for i, col := range idx {
			if col >= len(record) {
				ok = false
				break
			}
			fields[i] = record[col]
		}
		if !ok || strings.TrimSpace(fields[0]) == "" {
			continue
		}

		args, ok := convert(fields)
		if !ok {
			continue
		}
		res, err := stmt.Exec(args...)
		if err != nil {
			slog.Warn("skipping reference row", "code", fields[0], "error", err)
			continue
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}

func columnIndexes(header, want []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	idx := make([]int, len(want))
	for i, name := range want {
		p, ok := pos[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		idx[i] = p
	}
	return idx, nil
}
