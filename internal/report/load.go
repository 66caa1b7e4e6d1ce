package report

import (
	"github.com/spf13/cast"

	"retailq/internal/pipeline"
	"retailq/internal/table"
)

// FromTable rebuilds a KPI snapshot from a stored one-row KPI table.
// Absent columns stay zero, so one loader serves all three pipelines.
func FromTable(t *table.Table) pipeline.KPI {
	if t.Len() == 0 {
		return pipeline.KPI{}
	}

	row := t.Rows[0]

	return pipeline.KPI{
		RowsBefore:        cellInt(row, "rows_before"),
		RowsAfter:         cellInt(row, "rows_after"),
		DuplicatesRemoved: cellInt(row, "duplicates_removed"),
		MissingRows:       cellInt(row, "missing_rows"),
		InvalidEmails:     cellInt(row, "invalid_emails"),
		PctInvalidEmails:  cast.ToFloat64(row.Get("pct_invalid_emails").Render()),
		InvalidPrices:     cellInt(row, "invalid_prices"),
		InvalidDates:      cellInt(row, "invalid_dates"),
		InvalidAmounts:    cellInt(row, "invalid_amounts"),
		RefundRows:        cellInt(row, "refund_rows"),
	}
}

func cellInt(row table.Row, col string) int {
	v := row.Get(col)
	if v.IsNull() {
		return 0
	}

	return cast.ToInt(v.Render())
}
