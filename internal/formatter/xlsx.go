package formatter

import (
	"io"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"
)

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

// writeXLSX writes one sheet with a header row and typed cells.
func writeXLSX(w io.Writer, v View) error {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	name := v.title()
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	sheet.SetName(name)

	hdr := sheet.AddRow()
	for _, c := range v.Columns {
		hdr.AddCell().SetString(c.Header)
	}
	for _, r := range v.Rows {
		row := sheet.AddRow()
		for _, c := range v.Columns {
			cell := row.AddCell()
			switch val := r.Field(c.ID).(type) {
			case nil:
			case int:
				cell.SetNumber(float64(val))
			case float64:
				cell.SetNumber(val)
			case bool:
				cell.SetBool(val)
			case time.Time:
				cell.SetDate(val)
			default:
				cell.SetString(v.Formatter.Cell(c.ColumnDef, val))
			}
		}
	}
	return wb.Save(w)
}
