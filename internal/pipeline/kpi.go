package pipeline

import (
	"math"

	"retailq/internal/table"
)

// KPI is the quality summary of one pipeline run. It is computed once,
// immediately after the run finishes, and never recomputed: the counts
// are a snapshot of the before/after/missing/refund row sets.
//
// The counts always satisfy
//
//	RowsAfter + MissingRows + DuplicatesRemoved + RefundRows == RowsBefore
//
// because DuplicatesRemoved is the actual dedup discard count and every
// rejected row lands in exactly one bucket.
type KPI struct {
	RowsBefore        int
	RowsAfter         int
	DuplicatesRemoved int
	MissingRows       int

	// Customer-specific.
	InvalidEmails    int
	PctInvalidEmails float64

	// Catalog-specific.
	InvalidPrices int

	// Sales-specific.
	InvalidDates   int
	InvalidAmounts int
	RefundRows     int
}

// Pct returns 100*part/whole rounded to two decimals, 0 when whole is 0.
func Pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return math.Round(10000*float64(part)/float64(whole)) / 100
}

// countNull returns how many rows of t have a null cell in col.
func countNull(t *table.Table, col string) int {
	n := 0

	for _, row := range t.Rows {
		if row.Get(col).IsNull() {
			n++
		}
	}

	return n
}
