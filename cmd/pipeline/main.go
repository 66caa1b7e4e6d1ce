// Package main provides the batch cleaning command: it reads the raw
// customer, catalog and sales tables, runs the three cleaning
// pipelines and writes the clean tables and quality-control reports.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"retailq/internal/config"
	"retailq/internal/logger"
	"retailq/internal/pipeline"
	"retailq/internal/table"
	"retailq/pkg/csvio"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	only := flag.String("only", "", "Run a single pipeline: customers, catalog or sales")
	flag.Parse()

	switch *only {
	case "", "customers", "catalog", "sales":
	default:
		fmt.Println("Usage: pipeline -config <config.yaml> [-only customers|catalog|sales]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level)
	log.Info("🚀 Starting retail data cleaning run", "config", cfg.String())

	start := time.Now()

	// The pipelines share only read-only inputs (the category mapping
	// and the currency rate), so they run concurrently.
	var g errgroup.Group

	if *only == "" || *only == "customers" {
		g.Go(func() error { return runCustomers(cfg, log.Pipeline("customers")) })
	}

	if *only == "" || *only == "catalog" {
		g.Go(func() error { return runCatalog(cfg, log.Pipeline("catalog")) })
	}

	if *only == "" || *only == "sales" {
		g.Go(func() error { return runSales(cfg, log.Pipeline("sales")) })
	}

	if err := g.Wait(); err != nil {
		log.Error("❌ Cleaning run failed", "error", err)
		os.Exit(1)
	}

	log.Info("✅ Cleaning run finished", "duration", time.Since(start))
}

func runCustomers(cfg *config.Config, log *logger.Logger) error {
	t, err := loadTable(cfg.Inputs.Customers)
	if err != nil {
		return err
	}

	log.Info("Cleaning customers", "rows", t.Len())

	res := pipeline.Customers(cfg, t)

	log.Info("Customers cleaned",
		"rows_after", res.KPI.RowsAfter,
		"missing", res.KPI.MissingRows,
		"duplicates", res.KPI.DuplicatesRemoved,
	)

	return writeAll(map[string]*table.Table{
		filepath.Join(cfg.Output.CleanDir, "customers_clean.csv"):     res.Clean,
		filepath.Join(cfg.Output.ReportsDir, "customers_missing.csv"): res.Missing,
		filepath.Join(cfg.Output.ReportsDir, "kpi_customers.csv"):     res.KPITable(),
	})
}

func runCatalog(cfg *config.Config, log *logger.Logger) error {
	mapping, err := loadTable(cfg.Inputs.CategoryMapping)
	if err != nil {
		return err
	}

	sources := make([]pipeline.CatalogSource, 0, len(cfg.Inputs.CatalogSources))

	for _, src := range cfg.Inputs.CatalogSources {
		t, err := loadTable(src.Path)
		if err != nil {
			return err
		}

		log.Info("Loaded catalog source", "source", src.Name, "rows", t.Len())
		sources = append(sources, pipeline.CatalogSource{Name: src.Name, Table: t})
	}

	res := pipeline.Catalog(cfg, sources, mapping)

	log.Info("Catalog cleaned",
		"rows_after", res.KPI.RowsAfter,
		"missing", res.KPI.MissingRows,
		"duplicates", res.KPI.DuplicatesRemoved,
	)

	return writeAll(map[string]*table.Table{
		filepath.Join(cfg.Output.CleanDir, "catalog_clean.csv"):     res.Clean,
		filepath.Join(cfg.Output.ReportsDir, "catalog_missing.csv"): res.Missing,
		filepath.Join(cfg.Output.ReportsDir, "kpi_catalog.csv"):     res.KPITable(),
	})
}

func runSales(cfg *config.Config, log *logger.Logger) error {
	t, err := loadTable(cfg.Inputs.Sales)
	if err != nil {
		return err
	}

	log.Info("Cleaning sales", "rows", t.Len())

	res := pipeline.Sales(cfg, t)

	log.Info("Sales cleaned",
		"rows_after", res.KPI.RowsAfter,
		"missing", res.KPI.MissingRows,
		"refunds", res.KPI.RefundRows,
		"duplicates", res.KPI.DuplicatesRemoved,
	)

	return writeAll(map[string]*table.Table{
		filepath.Join(cfg.Output.CleanDir, "sales_clean.csv"):     res.Clean,
		filepath.Join(cfg.Output.ReportsDir, "sales_missing.csv"): res.Missing,
		filepath.Join(cfg.Output.ReportsDir, "sales_refunds.csv"): res.Refunds,
		filepath.Join(cfg.Output.ReportsDir, "daily_revenue.csv"): res.DailyRevenue,
		filepath.Join(cfg.Output.ReportsDir, "kpi_sales.csv"):     res.KPITable(),
	})
}

// loadTable reads a CSV source and normalizes its column names, the
// first thing that happens to every table on load.
func loadTable(path string) (*table.Table, error) {
	t, err := csvio.Read(path)
	if err != nil {
		return nil, err
	}

	t.NormalizeColumns()

	return t, nil
}

func writeAll(outputs map[string]*table.Table) error {
	for path, t := range outputs {
		if err := csvio.Write(path, t); err != nil {
			return err
		}
	}

	return nil
}
