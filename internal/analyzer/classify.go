package analyzer

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/matcher"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// Issue texts attached to classification results.
const (
	IssueSpare          = "Spare or placeholder"
	IssueExisting       = "Existing or relocated"
	IssueNotInContract  = "Not In Contract"
	IssueNeedsInstall   = "Owner supplies - needs install pricing"
	IssueCriticalQuote  = "Critical - requires quote"
	IssueNotFound       = "Not found in quotes"
	ownerSupplyFallback = "Owner handles"
	placeholder         = "-"
)

var (
	ownerSupplyCodes = []int{1, 2, 3}
	criticalCodes    = []int{5, 6}
)

const (
	existingCode     = 8
	ownerInstallCode = 7
)

// Options controls one analysis pass.
type Options struct {
	CategoryEnforcement bool
	SupplierCodes       models.SupplierCodes
}

// Classify assigns a status and optional issue to a drawing item given its matched quote line.
// Rules are evaluated in precedence order and the first hit wins. With enforce off no supplier
// code is ever read.
func Classify(item models.DrawingItem, match *models.QuoteItem, codes models.SupplierCodes, enforce bool) (models.Status, *string) {
	if isSpare(item.Description) {
		return models.StatusNA, issue(IssueSpare)
	}

	if enforce && item.HasCode(ownerSupplyCodes...) {
		return models.StatusOwnerSupply, issue(codes.Lookup(*item.SupplierCode, ownerSupplyFallback))
	}
	if enforce && item.HasCode(existingCode) {
		return models.StatusExisting, issue(IssueExisting)
	}

	if match != nil {
		switch {
		case match.NotInContract:
			return models.StatusNIC, issue(IssueNotInContract)
		case match.Quantity == item.Quantity:
			return models.StatusQuoted, nil
		default:
			return models.StatusQtyMismatch, issue(fmt.Sprintf("Drawing: %d, Quote: %d", item.Quantity, match.Quantity))
		}
	}

	switch {
	case enforce && item.HasCode(ownerInstallCode):
		return models.StatusNeedsPricing, issue(IssueNeedsInstall)
	case enforce && item.HasCode(criticalCodes...):
		return models.StatusMissing, issue(IssueCriticalQuote)
	default:
		return models.StatusMissing, issue(IssueNotFound)
	}
}

// Analyze classifies every drawing item against the quote lines, preserving drawing order.
func Analyze(drawing []models.DrawingItem, quotes []models.QuoteItem, opts Options) []models.ClassificationResult {
	codes := opts.SupplierCodes
	if codes == nil {
		codes = models.DefaultSupplierCodes()
	}

	idx := matcher.NewIndex(quotes)
	results := make([]models.ClassificationResult, 0, len(drawing))
	for _, item := range drawing {
		match := idx.Lookup(item)
		status, iss := Classify(item, match, codes, opts.CategoryEnforcement)
		results = append(results, newResult(item, match, status, iss, codes, opts.CategoryEnforcement))
	}
	return results
}

func newResult(item models.DrawingItem, match *models.QuoteItem, status models.Status, iss *string, codes models.SupplierCodes, enforce bool) models.ClassificationResult {
	r := models.ClassificationResult{
		DrawingNo:               item.ItemNo,
		EquipmentNumber:         item.EquipmentNumber,
		Description:             item.Description,
		DrawingQty:              item.Quantity,
		SupplierCode:            item.SupplierCode,
		SupplierCodeDescription: placeholder,
		QuoteItemNo:             placeholder,
		QuoteSource:             placeholder,
		Status:                  status,
		Issue:                   iss,
	}
	if enforce && item.SupplierCode != nil {
		r.SupplierCodeDescription = codes.Lookup(*item.SupplierCode, placeholder)
	}
	if match != nil {
		r.Matched = true
		r.QuoteItemNo = match.ItemNo
		r.QuoteQty = match.Quantity
		r.UnitPrice = match.EffectiveUnitPrice()
		r.TotalPrice = match.EffectiveTotalPrice()
		r.QuoteSource = match.SourceFile
	}
	return r
}

func isSpare(description string) bool {
	d := strings.ToUpper(strings.TrimSpace(description))
	switch d {
	case "SPARE", "-", "N/A":
		return true
	}
	return strings.Contains(d, "SPARE")
}

func issue(s string) *string { return &s }
