package airports

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
)

// naturalEarthTypes maps the "type" attribute of Natural Earth airport
// shapefiles onto the classification used by the type table.
var naturalEarthTypes = map[string]string{
	"major":          "large_airport",
	"mid":            "medium_airport",
	"small":          "small_airport",
	"spaceport":      "small_airport",
	"military major": "large_airport",
	"military mid":   "medium_airport",
}

// ImportShapefile loads point features with an iata_code attribute into
// airport_coords, and their type attribute (when present) into
// airport_types. Features without a code or with non-point geometry are
// skipped. Existing rows are kept.
func ImportShapefile(db *sql.DB, path string) (int, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	codeField, typeField := -1, -1
	for i, f := range shape.Fields() {
		switch strings.ToLower(f.String()) {
		case "iata_code", "iata":
			codeField = i
		case "type":
			typeField = i
		}
	}
	if codeField < 0 {
		return 0, fmt.Errorf("shapefile %s has no iata_code attribute", path)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	count := 0
	for shape.Next() {
		n, p := shape.Shape()

		point, ok := p.(*shp.Point)
		if !ok {
			continue
		}
		code := normalize(strings.Trim(shape.ReadAttribute(n, codeField), "\x00"))
		if code == "" {
			continue
		}

		res, err := tx.Exec("INSERT OR IGNORE INTO airport_coords (code, latitude, longitude) VALUES (?, ?, ?)",
			code, point.Y, point.X)
		if err != nil {
			return 0, fmt.Errorf("inserting %s: %w", code, err)
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			count++
		}

		if typeField < 0 {
			continue
		}
		raw := strings.ToLower(strings.TrimSpace(strings.Trim(shape.ReadAttribute(n, typeField), "\x00")))
		kind, ok := naturalEarthTypes[raw]
		if !ok {
			continue
		}
		if _, err := tx.Exec("INSERT OR IGNORE INTO airport_types (code, type) VALUES (?, ?)", code, kind); err != nil {
			return 0, fmt.Errorf("inserting type for %s: %w", code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return count, nil
}
