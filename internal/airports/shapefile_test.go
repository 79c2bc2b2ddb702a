package airports

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
)

func writeAirportShapefile(t *testing.T, path string) {
	t.Helper()
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		t.Fatalf("shp.Create() error = %v", err)
	}
	defer w.Close()

	w.SetFields([]shp.Field{
		shp.StringField("iata_code", 3),
		shp.StringField("type", 16),
	})

	rows := []struct {
		code, kind string
		lon, lat   float64
	}{
		{"BOS", "major", -71.0052, 42.3643},
		{"ACK", "mid", -70.0603, 41.2531},
		{"", "small", -70.5, 41.5},
	}
	for _, r := range rows {
		n := w.Write(&shp.Point{X: r.lon, Y: r.lat})
		w.WriteAttribute(int(n), 0, r.code)
		w.WriteAttribute(int(n), 1, r.kind)
	}
}

func TestImportShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.shp")
	writeAirportShapefile(t, path)

	db := newTestDB(t)
	n, err := ImportShapefile(db, path)
	if err != nil {
		t.Fatalf("ImportShapefile() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ImportShapefile() imported %d airports, want 2", n)
	}

	r, err := LoadResolver(db)
	if err != nil {
		t.Fatalf("LoadResolver() error = %v", err)
	}

	bos, err := r.Resolve("BOS")
	if err != nil {
		t.Fatalf("Resolve(BOS) error = %v", err)
	}
	if bos.Latitude < 42.36 || bos.Latitude > 42.37 {
		t.Errorf("Resolve(BOS).Latitude = %v, want 42.3643", bos.Latitude)
	}
	if bos.Type != "large_airport" {
		t.Errorf("Resolve(BOS).Type = %s, want large_airport", bos.Type)
	}

	ack, err := r.Resolve("ACK")
	if err != nil {
		t.Fatalf("Resolve(ACK) error = %v", err)
	}
	if ack.Type != "medium_airport" {
		t.Errorf("Resolve(ACK).Type = %s, want medium_airport", ack.Type)
	}
}

func TestImportShapefile_MissingFile(t *testing.T) {
	db := newTestDB(t)
	if _, err := ImportShapefile(db, filepath.Join(t.TempDir(), "missing.shp")); err == nil {
		t.Fatal("ImportShapefile() expected error, got nil")
	}
}
