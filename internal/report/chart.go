// Package report renders pipeline KPI records as terminal bar charts.
// It is a presentation layer only: it consumes immutable KPI snapshots
// and carries no cleaning logic.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"retailq/internal/pipeline"
)

// maxBarWidth is the width in cells of the longest bar.
const maxBarWidth = 40

// Bar is one labelled count in a chart.
type Bar struct {
	Label string
	Count int
}

// Chart renders a titled horizontal bar chart. Bars scale relative to
// the largest count; labels align width-aware so multi-byte labels
// keep the bars in one column.
func Chart(title string, bars []Bar) string {
	var b strings.Builder

	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", runewidth.StringWidth(title)) + "\n")

	labelWidth := 0
	maxCount := 0

	for _, bar := range bars {
		if w := runewidth.StringWidth(bar.Label); w > labelWidth {
			labelWidth = w
		}

		if bar.Count > maxCount {
			maxCount = bar.Count
		}
	}

	for _, bar := range bars {
		width := 0
		if maxCount > 0 {
			width = bar.Count * maxBarWidth / maxCount
		}

		if bar.Count > 0 && width == 0 {
			width = 1
		}

		b.WriteString(fmt.Sprintf("%s  %s %d\n",
			runewidth.FillRight(bar.Label, labelWidth),
			strings.Repeat("█", width),
			bar.Count,
		))
	}

	return b.String()
}

// CustomerBars lists the chart bars for a customer KPI record.
func CustomerBars(kpi pipeline.KPI) []Bar {
	return []Bar{
		{Label: "rows before", Count: kpi.RowsBefore},
		{Label: "rows after", Count: kpi.RowsAfter},
		{Label: "missing rows", Count: kpi.MissingRows},
		{Label: "duplicates removed", Count: kpi.DuplicatesRemoved},
		{Label: "invalid emails", Count: kpi.InvalidEmails},
	}
}

// CatalogBars lists the chart bars for a catalog KPI record.
func CatalogBars(kpi pipeline.KPI) []Bar {
	return []Bar{
		{Label: "rows before", Count: kpi.RowsBefore},
		{Label: "rows after", Count: kpi.RowsAfter},
		{Label: "missing rows", Count: kpi.MissingRows},
		{Label: "duplicates removed", Count: kpi.DuplicatesRemoved},
		{Label: "invalid prices", Count: kpi.InvalidPrices},
	}
}

// SalesBars lists the chart bars for a sales KPI record.
func SalesBars(kpi pipeline.KPI) []Bar {
	return []Bar{
		{Label: "rows before", Count: kpi.RowsBefore},
		{Label: "rows after", Count: kpi.RowsAfter},
		{Label: "missing rows", Count: kpi.MissingRows},
		{Label: "duplicates removed", Count: kpi.DuplicatesRemoved},
		{Label: "refund rows", Count: kpi.RefundRows},
		{Label: "invalid dates", Count: kpi.InvalidDates},
		{Label: "invalid amounts", Count: kpi.InvalidAmounts},
	}
}
