// Package main provides the KPI dashboard command: it reads the KPI
// report files produced by the pipeline command and prints them as
// terminal bar charts.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"retailq/internal/pipeline"
	"retailq/internal/report"
	"retailq/pkg/csvio"
)

func main() {
	reportsDir := flag.String("reports", "reports", "Directory containing the KPI report files")
	flag.Parse()

	charts := []struct {
		title string
		file  string
		bars  func(pipeline.KPI) []report.Bar
	}{
		{"Customer KPIs", "kpi_customers.csv", report.CustomerBars},
		{"Catalog KPIs", "kpi_catalog.csv", report.CatalogBars},
		{"Sales KPIs", "kpi_sales.csv", report.SalesBars},
	}

	failed := false

	for _, c := range charts {
		path := filepath.Join(*reportsDir, c.file)

		t, err := csvio.Read(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)

			failed = true

			continue
		}

		kpi := report.FromTable(t)
		fmt.Println(report.Chart(c.title, c.bars(kpi)))
	}

	if failed {
		os.Exit(1)
	}
}
