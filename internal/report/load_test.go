package report

import (
	"testing"

	"retailq/internal/table"
)

func TestFromTable(t *testing.T) {
	kt := table.New("rows_before", "rows_after", "missing_rows", "pct_invalid_emails")
	kt.Append(table.Row{
		"rows_before":        table.String("120"),
		"rows_after":         table.String("95"),
		"missing_rows":       table.String("20"),
		"pct_invalid_emails": table.String("3.25"),
	})

	kpi := FromTable(kt)

	if kpi.RowsBefore != 120 || kpi.RowsAfter != 95 || kpi.MissingRows != 20 {
		t.Errorf("counts = %+v", kpi)
	}

	if kpi.PctInvalidEmails != 3.25 {
		t.Errorf("PctInvalidEmails = %v, want 3.25", kpi.PctInvalidEmails)
	}

	// Columns the pipeline never wrote stay zero.
	if kpi.RefundRows != 0 || kpi.InvalidPrices != 0 {
		t.Errorf("absent columns should stay zero: %+v", kpi)
	}
}

func TestFromTable_Empty(t *testing.T) {
	kpi := FromTable(table.New("rows_before"))

	if kpi.RowsBefore != 0 {
		t.Errorf("empty table should yield zero KPI, got %+v", kpi)
	}
}
