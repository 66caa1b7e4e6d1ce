package pipeline

import (
	"strings"

	"retailq/internal/clean"
	"retailq/internal/config"
	"retailq/internal/table"
)

// salesCritical are the raw fields whose nullity rejects a sale row
// before any conversion is attempted.
var salesCritical = []string{"order_id", "customer_email", "order_date", "amount", "currency"}

// SalesResult holds the output tables and KPI of a sales run.
type SalesResult struct {
	Clean        *table.Table
	Missing      *table.Table
	Refunds      *table.Table
	DailyRevenue *table.Table
	KPI          KPI
}

// Sales cleans the sales table. Rows missing a raw critical field are
// rejected up front. Surviving rows get their dates normalized and
// their amounts converted to the canonical currency with sign
// preserved; a row whose amount cannot be parsed gets a null amount
// and joins the missing report, counted separately as an invalid
// amount. Negative amounts split off as refunds and are excluded from
// everything downstream. The remaining rows get emails and order ids
// normalized, are deduplicated by (order id, email), and feed the
// daily revenue aggregate.
func Sales(cfg *config.Config, t *table.Table) *SalesResult {
	missing, usable := t.Partition(salesCritical)

	usable.Apply("order_date", clean.Date)

	invalidAmounts := 0
	converted := table.New(usable.Columns...)

	for _, row := range usable.Rows {
		amt, ok := clean.Amount(row.Get("amount"), row.Get("currency"), cfg.Currency.USDRate)
		row["amount"] = amt
		row["currency"] = table.String(cfg.Currency.Symbol)

		if !ok {
			invalidAmounts++
			missing.Append(row)

			continue
		}

		converted.Append(row)
	}

	refunds := table.New(converted.Columns...)
	candidates := table.New(converted.Columns...)

	for _, row := range converted.Rows {
		if row.Get("amount").Float() < 0 {
			refunds.Append(row)
		} else {
			candidates.Append(row)
		}
	}

	candidates.Apply("customer_email", normalizeSaleEmail)
	candidates.Apply("order_id", trimString)

	cleaned, removed := candidates.DedupBy(func(r table.Row) string {
		return r.Get("order_id").Str() + "\x1f" + r.Get("customer_email").Str()
	})

	return &SalesResult{
		Clean:        cleaned,
		Missing:      missing,
		Refunds:      refunds,
		DailyRevenue: dailyRevenue(cleaned),
		KPI: KPI{
			RowsBefore:        t.Len(),
			RowsAfter:         cleaned.Len(),
			DuplicatesRemoved: removed,
			MissingRows:       missing.Len(),
			InvalidDates:      countNull(cleaned, "order_date"),
			InvalidAmounts:    invalidAmounts,
			RefundRows:        refunds.Len(),
		},
	}
}

// dailyRevenue groups the clean rows by exact date, summing amounts,
// one output row per distinct date, sorted ascending. Rows whose date
// failed to normalize are dropped; dates absent from the data produce
// no row.
func dailyRevenue(cleaned *table.Table) *table.Table {
	sums := make(map[string]float64)

	var dates []string

	for _, row := range cleaned.Rows {
		d := row.Get("order_date")
		if d.IsNull() {
			continue
		}

		if _, seen := sums[d.Str()]; !seen {
			dates = append(dates, d.Str())
		}

		sums[d.Str()] += row.Get("amount").Float()
	}

	out := table.New("order_date", "daily_revenue")
	for _, d := range dates {
		out.Append(table.Row{
			"order_date":    table.String(d),
			"daily_revenue": table.Number(sums[d]),
		})
	}

	out.SortBy("order_date")

	return out
}

// normalizeSaleEmail applies the source system's light email cleanup
// for dedup purposes: trim and lower-case, no grammar check.
func normalizeSaleEmail(v table.Value) table.Value {
	if v.Kind() != table.KindString {
		return v
	}

	return table.String(strings.ToLower(strings.TrimSpace(v.Str())))
}

func trimString(v table.Value) table.Value {
	if v.Kind() != table.KindString {
		return v
	}

	return table.String(strings.TrimSpace(v.Str()))
}

// KPITable renders the KPI snapshot as a one-row table for output.
func (r *SalesResult) KPITable() *table.Table {
	t := table.New(
		"rows_before", "rows_after", "duplicates_removed", "missing_rows",
		"invalid_dates", "invalid_amounts", "refund_rows",
	)
	t.Append(table.Row{
		"rows_before":        table.Number(float64(r.KPI.RowsBefore)),
		"rows_after":         table.Number(float64(r.KPI.RowsAfter)),
		"duplicates_removed": table.Number(float64(r.KPI.DuplicatesRemoved)),
		"missing_rows":       table.Number(float64(r.KPI.MissingRows)),
		"invalid_dates":      table.Number(float64(r.KPI.InvalidDates)),
		"invalid_amounts":    table.Number(float64(r.KPI.InvalidAmounts)),
		"refund_rows":        table.Number(float64(r.KPI.RefundRows)),
	})

	return t
}
