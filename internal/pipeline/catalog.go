package pipeline

import (
	"strings"

	"retailq/internal/clean"
	"retailq/internal/config"
	"retailq/internal/table"
)

// catalogCritical are the fields whose nullity after normalization
// rejects a catalog row.
var catalogCritical = []string{"sku", "name", "category", "weight", "price"}

// CatalogSource pairs a regional catalog table with its provenance name.
type CatalogSource struct {
	Name  string
	Table *table.Table
}

// CatalogResult holds the output tables and KPI of a catalog run.
type CatalogResult struct {
	Clean   *table.Table
	Missing *table.Table
	KPI     KPI
}

// Catalog cleans the regional product catalogs. Each source is
// normalized independently (weights to kilograms, prices to the
// canonical currency, categories remapped through the shared mapping
// table, provenance column added), then the sources are concatenated
// in order, SKUs are normalized, and the combined table goes through
// missing-field triage and dedup by SKU.
func Catalog(cfg *config.Config, sources []CatalogSource, mapping *table.Table) *CatalogResult {
	categories := categoryLookup(mapping)
	invalidPrices := 0

	var merged *table.Table

	for _, src := range sources {
		t := src.Table
		t.Apply("weight", clean.WeightForce)
		t.Apply("price", func(v table.Value) table.Value {
			p, ok := clean.Price(v, cfg.Currency.USDRate)
			if !ok {
				invalidPrices++
			}

			return p
		})
		t.Apply("category", func(v table.Value) table.Value {
			return mapCategory(v, categories)
		})
		t.AddColumn("source", table.String(src.Name))

		if merged == nil {
			merged = t
		} else {
			merged = merged.Concat(t)
		}
	}

	if merged == nil {
		merged = table.New()
	}

	merged.Apply("sku", normalizeSKU)
	merged.AddColumn("currency", table.String(cfg.Currency.Symbol))

	missing, usable := merged.Partition(catalogCritical)

	cleaned, removed := usable.DedupBy(func(r table.Row) string {
		return r.Get("sku").Str()
	})

	return &CatalogResult{
		Clean:   cleaned,
		Missing: missing,
		KPI: KPI{
			RowsBefore:        merged.Len(),
			RowsAfter:         cleaned.Len(),
			DuplicatesRemoved: removed,
			MissingRows:       missing.Len(),
			InvalidPrices:     invalidPrices,
		},
	}
}

// categoryLookup indexes the mapping table by raw source category.
func categoryLookup(mapping *table.Table) map[string]string {
	out := make(map[string]string, mapping.Len())

	for _, row := range mapping.Rows {
		src := row.Get("source_category")
		dst := row.Get("target_category")

		if !src.IsNull() && !dst.IsNull() {
			out[src.Str()] = dst.Str()
		}
	}

	return out
}

// mapCategory is the left join of a raw category onto the mapping
// table: a category absent from the table becomes null, which routes
// the row to the missing report downstream.
func mapCategory(v table.Value, categories map[string]string) table.Value {
	if v.IsNull() {
		return table.Null()
	}

	target, ok := categories[v.Str()]
	if !ok {
		return table.Null()
	}

	return table.String(target)
}

// normalizeSKU trims and upper-cases a SKU; null stays null.
func normalizeSKU(v table.Value) table.Value {
	if v.Kind() != table.KindString {
		return table.Null()
	}

	return table.String(strings.ToUpper(strings.TrimSpace(v.Str())))
}

// KPITable renders the KPI snapshot as a one-row table for output.
func (r *CatalogResult) KPITable() *table.Table {
	t := table.New(
		"rows_before", "rows_after", "duplicates_removed", "missing_rows",
		"invalid_prices",
	)
	t.Append(table.Row{
		"rows_before":        table.Number(float64(r.KPI.RowsBefore)),
		"rows_after":         table.Number(float64(r.KPI.RowsAfter)),
		"duplicates_removed": table.Number(float64(r.KPI.DuplicatesRemoved)),
		"missing_rows":       table.Number(float64(r.KPI.MissingRows)),
		"invalid_prices":     table.Number(float64(r.KPI.InvalidPrices)),
	})

	return t
}
