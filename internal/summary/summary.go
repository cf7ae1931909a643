// Package summary derives read-only views over a classification result list.
package summary

import "github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"

// Codes whose items are not expected to appear in a vendor quote; coverage is not reported for them.
var noQuoteExpected = map[int]bool{1: true, 2: true, 3: true, 8: true}

// Codes for which a missing quote is a procurement risk.
var criticalCodes = []int{5, 6}

// Input is everything one summary pass reads.
type Input struct {
	DrawingItems        []models.DrawingItem
	QuoteItems          []models.QuoteItem
	Results             []models.ClassificationResult
	SupplierCodes       models.SupplierCodes
	CategoryEnforcement bool
}

// Build assembles every view. Supplier code rows are only produced under category enforcement.
func Build(in Input) models.Summary {
	s := models.Summary{
		Overview:        Overview(in.Results),
		ByStatus:        ByStatus(in.Results),
		QuoteFiles:      QuoteFiles(in.QuoteItems),
		CriticalMissing: CriticalMissing(in.Results, in.CategoryEnforcement),
		Uncategorized:   Uncategorized(in.Results),
	}
	if in.CategoryEnforcement {
		s.BySupplierCode = BySupplierCode(in.DrawingItems, in.Results, in.SupplierCodes)
	}
	return s
}

// ByStatus counts results and sums their total price per status, in taxonomy order.
// Statuses with no results are omitted.
func ByStatus(results []models.ClassificationResult) []models.StatusSummary {
	counts := make(map[models.Status]*models.StatusSummary)
	for _, r := range results {
		s, ok := counts[r.Status]
		if !ok {
			s = &models.StatusSummary{Status: r.Status}
			counts[r.Status] = s
		}
		s.Count++
		s.TotalValue += r.TotalPrice
	}

	out := make([]models.StatusSummary, 0, len(counts))
	for _, st := range models.Statuses {
		if s, ok := counts[st]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// BySupplierCode reports schedule size, status counts and quoted value for each of the codes
// 1-8, whether or not codes carries a description for it.
func BySupplierCode(items []models.DrawingItem, results []models.ClassificationResult, codes models.SupplierCodes) []models.CodeSummary {
	const n = models.MaxSupplierCode - models.MinSupplierCode + 1
	rows := make(map[int]*models.CodeSummary, n)
	out := make([]models.CodeSummary, 0, n)
	for code := models.MinSupplierCode; code <= models.MaxSupplierCode; code++ {
		rows[code] = &models.CodeSummary{Code: code, Description: codes.Lookup(code, "")}
	}

	for _, it := range items {
		if it.SupplierCode == nil {
			continue
		}
		if row, ok := rows[*it.SupplierCode]; ok {
			row.ScheduleItems++
			row.ScheduleQuantity += it.Quantity
		}
	}

	for _, r := range results {
		if r.SupplierCode == nil {
			continue
		}
		row, ok := rows[*r.SupplierCode]
		if !ok {
			continue
		}
		switch r.Status {
		case models.StatusQuoted:
			row.Quoted++
		case models.StatusMissing:
			row.Missing++
		case models.StatusQtyMismatch:
			row.QtyMismatch++
		case models.StatusNIC:
			row.NIC++
		case models.StatusNeedsPricing:
			row.NeedsPricing++
		}
		row.QuotedValue += r.TotalPrice
	}

	for code := models.MinSupplierCode; code <= models.MaxSupplierCode; code++ {
		row := rows[code]
		if !noQuoteExpected[code] && row.ScheduleItems > 0 {
			pct := float64(row.Quoted) / float64(row.ScheduleItems) * 100
			row.Coverage = &pct
		}
		out = append(out, *row)
	}
	return out
}

// QuoteFiles summarizes loaded quote lines per source file, in first-seen order.
func QuoteFiles(quotes []models.QuoteItem) []models.QuoteFileSummary {
	index := make(map[string]int)
	var out []models.QuoteFileSummary
	for _, q := range quotes {
		i, ok := index[q.SourceFile]
		if !ok {
			i = len(out)
			index[q.SourceFile] = i
			out = append(out, models.QuoteFileSummary{File: q.SourceFile})
		}
		out[i].Items++
		if q.NotInContract {
			out[i].NICItems++
		}
		out[i].TotalValue += q.EffectiveTotalPrice()
	}
	return out
}

// Overview builds the headline counts. Owner Supply, Existing and N/A items are not actionable.
func Overview(results []models.ClassificationResult) models.Overview {
	var o models.Overview
	o.TotalItems = len(results)
	for _, r := range results {
		o.TotalValue += r.TotalPrice

		switch r.Status {
		case models.StatusOwnerSupply, models.StatusExisting, models.StatusNA:
			continue
		}
		o.ActionableItems++

		switch r.Status {
		case models.StatusQuoted:
			o.Quoted++
		case models.StatusMissing:
			o.Missing++
		case models.StatusQtyMismatch:
			o.QtyMismatch++
		case models.StatusNeedsPricing:
			o.NeedsPricing++
		}
	}
	return o
}

// CriticalMissing lists MISSING items that carry a contractor-supply code. Without category
// enforcement codes are not trusted, so every MISSING item is listed.
func CriticalMissing(results []models.ClassificationResult, enforce bool) []models.ClassificationResult {
	out := []models.ClassificationResult{}
	for _, r := range results {
		if r.Status != models.StatusMissing {
			continue
		}
		if enforce && !hasCode(r, criticalCodes) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Uncategorized lists results whose drawing line has no supplier code.
func Uncategorized(results []models.ClassificationResult) []models.ClassificationResult {
	out := []models.ClassificationResult{}
	for _, r := range results {
		if r.SupplierCode == nil {
			out = append(out, r)
		}
	}
	return out
}

// Filter keeps results whose status is in statuses (all when empty) and whose code is in
// codes (all when empty). Items without a code survive a code filter.
func Filter(results []models.ClassificationResult, statuses []models.Status, codes []int) []models.ClassificationResult {
	wantStatus := make(map[models.Status]bool, len(statuses))
	for _, s := range statuses {
		wantStatus[s] = true
	}

	out := []models.ClassificationResult{}
	for _, r := range results {
		if len(wantStatus) > 0 && !wantStatus[r.Status] {
			continue
		}
		if len(codes) > 0 && r.SupplierCode != nil && !hasCode(r, codes) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasCode(r models.ClassificationResult, codes []int) bool {
	if r.SupplierCode == nil {
		return false
	}
	for _, c := range codes {
		if *r.SupplierCode == c {
			return true
		}
	}
	return false
}
