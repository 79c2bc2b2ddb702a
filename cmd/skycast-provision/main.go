package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ngmaloney/skycast/internal/airports"
	"github.com/ngmaloney/skycast/internal/app"
	"github.com/ngmaloney/skycast/internal/config"
	"github.com/ngmaloney/skycast/internal/database"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	coords := flag.String("coords", "", "Airport coordinates CSV (Airport,Latitude,Longitude); overrides config")
	types := flag.String("types", "", "Airport types CSV (origin,type); overrides config")
	shapefile := flag.String("shapefile", "", "Optional airports point shapefile (iata_code, type)")
	force := flag.Bool("force", false, "Rebuild the reference tables even if they exist")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	src := app.Sources(cfg)
	if *coords != "" {
		src.CoordinatesCSV = *coords
	}
	if *types != "" {
		src.TypesCSV = *types
	}
	if *shapefile != "" {
		src.Shapefile = *shapefile
	}

	if *force {
		if err := os.Remove(cfg.DBPath); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Error removing %s: %v\n", cfg.DBPath, err)
			os.Exit(1)
		}
		os.Remove(cfg.DBPath + "-wal")
		os.Remove(cfg.DBPath + "-shm")
	}

	progress := make(chan string)
	done := make(chan error, 1)
	go func() {
		done <- airports.Provision(cfg.DBPath, src, progress)
		close(progress)
	}()
	for msg := range progress {
		fmt.Println(msg)
	}
	if err := <-done; err != nil {
		fmt.Printf("Error provisioning: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("Error opening %s: %v\n", cfg.DBPath, err)
		os.Exit(1)
	}
	defer db.Close()

	for _, table := range []string{"airport_coords", "airport_types"} {
		n, err := database.RowCount(db, table)
		if err != nil {
			fmt.Printf("Error counting %s: %v\n", table, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d rows\n", table, n)
	}
}
