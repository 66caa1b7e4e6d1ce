// Package pipeline implements the three batch-cleaning pipelines:
// customers, product catalog and sales. Each pipeline takes ownership
// of its input tables, normalizes fields, triages rows with missing
// critical fields into a rejection report, removes duplicates under its
// domain key and snapshots quality KPIs. The pipelines share only the
// field normalizers and the injected currency rate, so they are safe to
// run concurrently.
package pipeline

import (
	"retailq/internal/clean"
	"retailq/internal/config"
	"retailq/internal/table"
)

// customerCritical are the fields whose nullity after normalization
// rejects a customer row.
var customerCritical = []string{"id", "name", "surname", "email", "phone", "country", "birthdate"}

// CustomersResult holds the output tables and KPI of a customer run.
type CustomersResult struct {
	Clean   *table.Table
	Missing *table.Table
	KPI     KPI
}

// Customers cleans the customer table: canonical email, country, phone
// and birthdate, missing-field triage, then dedup by email with the
// first occurrence winning.
func Customers(cfg *config.Config, t *table.Table) *CustomersResult {
	t.Apply("email", clean.Email)
	t.Apply("country", func(v table.Value) table.Value {
		return clean.Country(v, cfg.Countries)
	})
	t.Apply("phone", func(v table.Value) table.Value {
		return clean.Phone(v, cfg.Phone.DefaultCountryCode)
	})
	t.Apply("birthdate", clean.Date)

	missing, usable := t.Partition(customerCritical)

	cleaned, removed := usable.DedupBy(func(r table.Row) string {
		return r.Get("email").Str()
	})

	invalid := countNull(cleaned, "email")

	return &CustomersResult{
		Clean:   cleaned,
		Missing: missing,
		KPI: KPI{
			RowsBefore:        t.Len(),
			RowsAfter:         cleaned.Len(),
			DuplicatesRemoved: removed,
			MissingRows:       missing.Len(),
			InvalidEmails:     invalid,
			PctInvalidEmails:  Pct(invalid, cleaned.Len()),
		},
	}
}

// KPITable renders the KPI snapshot as a one-row table for output.
func (r *CustomersResult) KPITable() *table.Table {
	t := table.New(
		"rows_before", "rows_after", "duplicates_removed", "missing_rows",
		"invalid_emails", "pct_invalid_emails",
	)
	t.Append(table.Row{
		"rows_before":        table.Number(float64(r.KPI.RowsBefore)),
		"rows_after":         table.Number(float64(r.KPI.RowsAfter)),
		"duplicates_removed": table.Number(float64(r.KPI.DuplicatesRemoved)),
		"missing_rows":       table.Number(float64(r.KPI.MissingRows)),
		"invalid_emails":     table.Number(float64(r.KPI.InvalidEmails)),
		"pct_invalid_emails": table.Number(r.KPI.PctInvalidEmails),
	})

	return t
}
