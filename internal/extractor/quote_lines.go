package extractor

import (
	"regexp"
	"strings"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

// QuoteLineColumns are the headers of tables built by ParseQuoteLines. They resolve to the
// canonical quote fields through the ordinary column mapper.
var QuoteLineColumns = []string{"Item", "Description", "Qty", "Unit Price", "Total"}

var (
	lineItemNo = regexp.MustCompile(`^(\d+[A-Za-z]?|\d+\s*[-–]\s*\d+)[.)]?$`)
	moneyToken = regexp.MustCompile(`^\$?\d{1,3}(,\d{3})*(\.\d+)?$|^\$?\d+\.\d+$`)
	qtyToken   = regexp.MustCompile(`^(?i)\d+(ea)?$`)
)

// ParseQuoteLines reads free-text quotation lines of the form
//
//	<item> <description> [<qty> [ea]] [<unit price>] [<total>]
//
// where a trailing NIC replaces quantity and prices. Lines that do not start with an item
// number are ignored.
func ParseQuoteLines(name, text string) models.Table {
	var records [][]string
	for _, line := range strings.Split(text, "\n") {
		if rec, ok := parseQuoteLine(line); ok {
			records = append(records, rec)
		}
	}
	return NewTable(name, QuoteLineColumns, records)
}

func parseQuoteLine(line string) ([]string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, false
	}

	itemNo, rest := fields[0], fields[1:]
	// "11 - 23" arrives as three fields
	if len(rest) >= 2 && (rest[0] == "-" || rest[0] == "–") && lineItemNo.MatchString(itemNo+"-"+rest[1]) {
		itemNo, rest = itemNo+"-"+rest[1], rest[2:]
	}
	if !lineItemNo.MatchString(itemNo) {
		return nil, false
	}
	itemNo = strings.TrimRight(itemNo, ".)")

	var qty, unit, total string

	if n := len(rest); n > 0 && strings.EqualFold(rest[n-1], "NIC") {
		qty = "NIC"
		rest = rest[:n-1]
	} else {
		var money []string
		for len(money) < 2 && len(rest) > 0 && isMoney(rest[len(rest)-1]) {
			money = append([]string{rest[len(rest)-1]}, money...)
			rest = rest[:len(rest)-1]
		}
		switch len(money) {
		case 2:
			unit, total = money[0], money[1]
		case 1:
			total = money[0]
		}

		if n := len(rest); n > 1 && strings.EqualFold(rest[n-1], "ea") && qtyToken.MatchString(rest[n-2]) {
			qty = rest[n-2] + " ea"
			rest = rest[:n-2]
		} else if n > 1 && qtyToken.MatchString(rest[n-1]) {
			qty = rest[n-1]
			rest = rest[:n-1]
		}
	}

	desc := strings.Join(rest, " ")
	if desc == "" && qty != "NIC" {
		return nil, false
	}
	return []string{itemNo, desc, qty, unit, total}, true
}

func isMoney(tok string) bool {
	return moneyToken.MatchString(tok) && (strings.Contains(tok, ".") || strings.HasPrefix(tok, "$") || strings.Contains(tok, ","))
}
