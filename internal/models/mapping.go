package models

// Schema selects the canonical record layout a table is mapped onto.
type Schema string

const (
	SchemaDrawing Schema = "drawing"
	SchemaQuote   Schema = "quote"
)

// Field is a canonical record field a source column can be mapped to.
type Field string

const (
	FieldNo          Field = "no"
	FieldDescription Field = "description"
	FieldQty         Field = "qty"
	FieldCategory    Field = "category"
	FieldEquipNum    Field = "equip_num"
	FieldUnit        Field = "unit"
	FieldRemarks     Field = "remarks"
	FieldUnitPrice   Field = "unit_price"
	FieldTotalPrice  Field = "total_price"
)

// RequiredFields must be mapped before a drawing table can be extracted.
var RequiredFields = []Field{FieldNo, FieldDescription}

// FieldMapping assigns canonical fields to source column names.
type FieldMapping map[Field]string

// Column returns the mapped column for f, or "" when unmapped.
func (m FieldMapping) Column(f Field) string {
	if m == nil {
		return ""
	}
	return m[f]
}

// Has reports whether f is mapped.
func (m FieldMapping) Has(f Field) bool {
	return m.Column(f) != ""
}

// Missing returns the required fields absent from the mapping.
func (m FieldMapping) Missing() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if !m.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Clone returns an independent copy.
func (m FieldMapping) Clone() FieldMapping {
	out := make(FieldMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
