package export

import (
	"bytes"

	"github.com/tealeg/xlsx"

	"github.com/example/merchstore/internal/orders"
)

// XLSXContentType is the MIME type of OrdersXLSX output.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrdersXLSX renders the same columns as OrdersCSV into a single-sheet
// workbook. Totals are written as numbers so the sheet can sum them.
func OrdersXLSX(records []orders.Record) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range Headers {
		header.AddCell().SetValue(h)
	}

	for _, rec := range records {
		row := sheet.AddRow()
		cols := Row(rec)
		for _, value := range cols[:len(cols)-1] {
			row.AddCell().SetValue(value)
		}
		row.AddCell().SetFloat(rec.Total)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
