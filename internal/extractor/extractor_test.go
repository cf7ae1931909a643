package extractor

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BerylCAtieno/drawing-quote-analyzer/internal/models"
)

func TestCleanColumns(t *testing.T) {
	t.Parallel()

	got := CleanColumns([]string{"No.", "", " Description ", "Qty", "Qty", "nan", "Qty"})
	assert.Equal(t, []string{"No.", "Column_1", "Description", "Qty", "Qty_1", "Column_5", "Qty_2"}, got)

	got = CleanColumns([]string{"Qty", "Qty", "Qty_1", "Qty"})
	assert.Equal(t, []string{"Qty", "Qty_1", "Qty_1_1", "Qty_2"}, got)

	got = CleanColumns([]string{"Qty_1", "Qty", "Qty"})
	assert.Equal(t, []string{"Qty_1", "Qty", "Qty_2"}, got)

	tbl := NewTable("sheet", []string{"Qty", "Qty", "Qty_1"}, [][]string{{"1", "2", "3"}})
	require.Len(t, tbl.Rows, 1)
	assert.Len(t, tbl.Rows[0], 3, "every cell keeps its own column")
}

func TestTableFromRecords(t *testing.T) {
	t.Parallel()

	tbl, ok := TableFromRecords("sheet", [][]string{
		{"", ""},
		{"No", "Description", "Qty"},
		{"1", "WALK IN", "1", "extra"},
		{"", " ", ""},
		{"2", "ICE"},
	})
	require.True(t, ok)
	assert.Equal(t, []string{"No", "Description", "Qty"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, models.Row{"No": "2", "Description": "ICE", "Qty": ""}, tbl.Rows[1])

	_, ok = TableFromRecords("empty", [][]string{{"No", "Description"}})
	assert.False(t, ok)
}

func TestLargest(t *testing.T) {
	t.Parallel()

	_, ok := Largest(nil)
	assert.False(t, ok)

	got, ok := Largest([]models.Table{
		{Name: "a", Rows: make([]models.Row, 2)},
		{Name: "b", Rows: make([]models.Row, 5)},
		{Name: "c", Rows: make([]models.Row, 5)},
	})
	require.True(t, ok)
	assert.Equal(t, "b", got.Name)
}

func TestExtract_CSV(t *testing.T) {
	t.Parallel()

	data := []byte("\xEF\xBB\xBFNo;Description;Qty\n1;WALK IN COOLER;1\n2;\"ICE; MACHINE\";2\n")

	doc, err := Extract("schedule.csv", data)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, doc.Format)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, []string{"No", "Description", "Qty"}, doc.Tables[0].Columns)
	assert.Equal(t, "ICE; MACHINE", doc.Tables[0].Rows[1]["Description"])
}

func TestExtract_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Item", "Description", "Qty", "Total"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"1", "MIXER", 2, 150.5}))
	_, err := f.NewSheet("Empty")
	require.NoError(t, err)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	doc, err := Extract("quote.XLSX", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "Sheet1", doc.Tables[0].Name)
	assert.Equal(t, "MIXER", doc.Tables[0].Rows[0]["Description"])
	assert.Equal(t, "150.5", doc.Tables[0].Rows[0]["Total"])
}

func TestExtract_DOCX(t *testing.T) {
	t.Parallel()

	body := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Quotation 2291</w:t></w:r></w:p>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Item</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Description</w:t></w:r></w:p></w:tc></w:tr>
<w:tr><w:tc><w:p><w:r><w:t>4</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>HAND </w:t></w:r><w:r><w:t>SINK</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	doc, err := Extract("quote.docx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "HAND SINK", doc.Tables[0].Rows[0]["Description"])
	assert.Contains(t, doc.Text, "Quotation 2291")

	text, err := ExtractDOCX(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Quotation 2291", text)
}

func TestExtract_PDFTable(t *testing.T) {
	t.Parallel()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range [][]string{
		{"No", "Description", "Qty"},
		{"1", "WALK IN COOLER", "1"},
		{"2", "ICE MACHINE", "2"},
	} {
		for _, cell := range row {
			pdf.CellFormat(50, 8, cell, "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	doc, err := Extract("schedule.pdf", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Tables, 1)

	tbl := doc.Tables[0]
	assert.Equal(t, []string{"No", "Description", "Qty"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "WALK IN COOLER", tbl.Rows[0]["Description"])
	assert.Equal(t, "2", tbl.Rows[1]["Qty"])
	assert.Contains(t, doc.Text, "ICE MACHINE")
}

func TestExtract_TXTUTF16(t *testing.T) {
	t.Parallel()

	src := "12 MIXER 1 $100.00\r\n\r\n13 SINK NIC"
	data := []byte{0xFF, 0xFE}
	for _, r := range src {
		data = append(data, byte(r), 0)
	}

	doc, err := Extract("quote.txt", data)
	require.NoError(t, err)
	assert.Equal(t, "12 MIXER 1 $100.00\n13 SINK NIC", doc.Text)
	assert.Empty(t, doc.Tables)
}

func TestExtract_Errors(t *testing.T) {
	t.Parallel()

	_, err := Extract("drawing.dwg", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Extract("quote.csv", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Extract("quote.txt", []byte{0, 1, 2, 3, 4, 5, 6, 7})
	assert.Error(t, err)
}

func TestParseQuoteLines(t *testing.T) {
	t.Parallel()

	text := `ACME KITCHENS QUOTATION
Item Description Qty Unit Price Total
12 WALK IN COOLER 1 $9,500.00 $9,500.00
13. HAND SINK 2 ea 400.00
14 HOOD SYSTEM NIC
11 - 23 NIC
Page 1 of 2`

	tbl := ParseQuoteLines("pasted", text)
	assert.Equal(t, QuoteLineColumns, tbl.Columns)
	require.Len(t, tbl.Rows, 4)

	assert.Equal(t, models.Row{"Item": "12", "Description": "WALK IN COOLER", "Qty": "1", "Unit Price": "$9,500.00", "Total": "$9,500.00"}, tbl.Rows[0])
	assert.Equal(t, models.Row{"Item": "13", "Description": "HAND SINK", "Qty": "2 ea", "Unit Price": "", "Total": "400.00"}, tbl.Rows[1])
	assert.Equal(t, "NIC", tbl.Rows[2]["Qty"])
	assert.Equal(t, "11-23", tbl.Rows[3]["Item"])
}

func TestExtractTXT_Windows1252(t *testing.T) {
	t.Parallel()

	// 0xB0 is the degree sign in Windows-1252 and invalid on its own in UTF-8.
	data := []byte("5 FREEZER -10\xB0F 1 $2,000.00\r\n\r\n  6 SHELF\xA0UNIT NIC  ")

	text, err := ExtractTXT(data)
	require.NoError(t, err)
	assert.Equal(t, "5 FREEZER -10°F 1 $2,000.00\n6 SHELF UNIT NIC", text)
}

func TestValidateTXT(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ValidateTXT(nil), ErrEmptyFile)
	assert.NoError(t, ValidateTXT([]byte("12 MIXER 1\n")))
	assert.Error(t, ValidateTXT([]byte{0x00, 0x01, 0x02, 0x03, 'a'}))
	assert.NoError(t, ValidateTXT([]byte{0xFE, 0xFF, 0x00, 'a'}))
}
