package models

import (
	"fmt"
	"strings"
)

// Supplier code range accepted from schedules and configuration.
const (
	MinSupplierCode = 1
	MaxSupplierCode = 8
)

// SupplierCodes maps a supplier code to its supply/install responsibility text.
type SupplierCodes map[int]string

// DefaultSupplierCodes returns a fresh copy of the built-in code table.
func DefaultSupplierCodes() SupplierCodes {
	return SupplierCodes{
		1: "Owner Supply / Owner Install",
		2: "Owner Supply / Owner Install (Special)",
		3: "Owner Supply / Owner Install (Other)",
		4: "Owner Supply / Vendor Install",
		5: "Contractor Supply / Contractor Install",
		6: "Contractor Supply / Vendor Install",
		7: "Owner Supply / Contractor Install",
		8: "Existing / Relocated",
	}
}

// Lookup returns the description for code, or fallback when the code is unknown.
func (c SupplierCodes) Lookup(code int, fallback string) string {
	if desc, ok := c[code]; ok && desc != "" {
		return desc
	}
	return fallback
}

// Clone returns an independent copy.
func (c SupplierCodes) Clone() SupplierCodes {
	out := make(SupplierCodes, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns a copy of c with overrides applied on top. Blank descriptions leave the
// existing entry in place.
func (c SupplierCodes) Merge(overrides map[int]string) SupplierCodes {
	out := c.Clone()
	for code, desc := range overrides {
		if desc = strings.TrimSpace(desc); desc != "" {
			out[code] = desc
		}
	}
	return out
}

// Validate checks every code is within range.
func (c SupplierCodes) Validate() error {
	for code := range c {
		if code < MinSupplierCode || code > MaxSupplierCode {
			return fmt.Errorf("supplier code %d out of range %d-%d", code, MinSupplierCode, MaxSupplierCode)
		}
	}
	return nil
}
