package records

import (
	"fmt"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/normalizer"
)

// ExtractDrawingItems reads schedule rows through mapping. It fails with ErrUnmappable when
// the item number or description column is not mapped and with ErrNoData when no row
// survives; the returned extraction still lists every skipped row in that case.
func ExtractDrawingItems(rows []models.Row, mapping models.FieldMapping) (*Extraction[models.DrawingItem], error) {
	out := &Extraction[models.DrawingItem]{}

	if missing := mapping.Missing(); len(missing) > 0 {
		return out, fmt.Errorf("%w: %v", ErrUnmappable, missing)
	}

	for i, row := range rows {
		rowNum := i + 2 // header occupies row 1

		item, err := drawingItemFromRow(row, mapping)
		if err != nil {
			out.skip(rowNum, "%s", err.Error())
			continue
		}
		out.Items = append(out.Items, item)
	}

	if len(out.Items) == 0 {
		return out, ErrNoData
	}
	out.Duplicates = duplicates(out.Items, func(d models.DrawingItem) string { return d.ItemNo })
	return out, nil
}

func drawingItemFromRow(row models.Row, mapping models.FieldMapping) (models.DrawingItem, error) {
	no := row.Get(mapping.Column(models.FieldNo))
	if normalizer.IsHeaderRemnant(no) {
		return models.DrawingItem{}, skipRow("item number %q is blank or a header", no)
	}

	desc := row.Get(mapping.Column(models.FieldDescription))
	if normalizer.IsHeaderRemnant(desc) {
		return models.DrawingItem{}, skipRow("description %q is blank or a header", desc)
	}

	item := models.DrawingItem{
		ItemNo:          no,
		Description:     desc,
		Quantity:        normalizer.DefaultQuantity,
		EquipmentNumber: models.EquipmentNumberNone,
	}

	if mapping.Has(models.FieldQty) {
		item.Quantity = normalizer.ParseQuantity(row.Get(mapping.Column(models.FieldQty)))
	}
	if mapping.Has(models.FieldCategory) {
		item.SupplierCode = normalizer.ParseSupplierCode(row.Get(mapping.Column(models.FieldCategory)))
	}
	if mapping.Has(models.FieldEquipNum) {
		if en := normalizer.CleanText(row.Get(mapping.Column(models.FieldEquipNum))); en != "" && en != models.EquipmentNumberNone {
			item.EquipmentNumber = en
		}
	}

	return item, nil
}
