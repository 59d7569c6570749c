// One-shot exporter: scrape the resort page once and write the table to
// hakuba_data.csv and hakuba_data.xlsx in the current directory. Handy for
// grabbing a snapshot without running the server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/powderline/hakuba-dashboard/internal/cache"
	"github.com/powderline/hakuba-dashboard/internal/config"
	"github.com/powderline/hakuba-dashboard/internal/export"
	"github.com/powderline/hakuba-dashboard/internal/httpx"
	"github.com/powderline/hakuba-dashboard/internal/observability"
	"github.com/powderline/hakuba-dashboard/internal/pipeline"
	"github.com/powderline/hakuba-dashboard/internal/resort"
)

func main() {
	combine := flag.Bool("combine", false, "merge the configured resort pair before exporting")
	outPrefix := flag.String("out", "hakuba_data", "output file prefix")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	metrics := observability.NewMetrics()
	svc := pipeline.New(httpx.NewFetcher(cfg.UserAgent), cache.New(0), metrics, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var table resort.Table
	if *combine {
		snap, err := svc.Combined(ctx, false)
		if err != nil {
			log.Fatalf("scrape failed: %v", err)
		}
		table = snap.Table
	} else {
		snap, err := svc.Snapshot(ctx)
		if err != nil {
			log.Fatalf("scrape failed: %v", err)
		}
		table = snap.Table
	}

	csvData, err := export.CSV(table)
	if err != nil {
		log.Fatalf("csv export failed: %v", err)
	}
	xlsxData, err := export.Excel(table)
	if err != nil {
		log.Fatalf("xlsx export failed: %v", err)
	}

	csvPath := *outPrefix + ".csv"
	xlsxPath := *outPrefix + ".xlsx"
	if err := os.WriteFile(csvPath, csvData, 0o644); err != nil {
		log.Fatalf("writing %s: %v", csvPath, err)
	}
	if err := os.WriteFile(xlsxPath, xlsxData, 0o644); err != nil {
		log.Fatalf("writing %s: %v", xlsxPath, err)
	}

	log.Printf("wrote %d resorts to %s and %s", len(table), csvPath, xlsxPath)
}
