// pkg/pmdoc/excel.go
package pmdoc

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// glyphText maps a glyph to the character printed in a result cell.
func glyphText(g Glyph) string {
	switch g {
	case GlyphCheck:
		return "✓"
	case GlyphCross:
		return "✗"
	case GlyphDash:
		return "-"
	}
	return ""
}

// excelWriter tracks the cursor while a page is streamed into a sheet.
type excelWriter struct {
	f     *excelize.File
	sheet string
	row   int

	titleStyle  int
	headerStyle int
	cellStyle   int
	subStyle    int
}

func (w *excelWriter) set(col int, value interface{}, style int) {
	cell, _ := excelize.CoordinatesToCellName(col, w.row)
	w.f.SetCellValue(w.sheet, cell, value)
	if style != 0 {
		w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

func (w *excelWriter) setRow(values []interface{}, style int) {
	for i, v := range values {
		w.set(i+1, v, style)
	}
	w.row++
}

func (w *excelWriter) blank() { w.row++ }

// ToExcel renders a laid-out document into a workbook, one sheet per
// page. The workbook mirrors the page structure rather than the pixel
// geometry; widths and pagination are already fixed in the document.
func ToExcel(doc *Document) (*excelize.File, error) {
	f := excelize.NewFile()

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	subStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true},
	})

	for _, page := range doc.Pages {
		sheet := fmt.Sprintf("Page %d", page.Number)
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
		if page.Number == 1 {
			f.SetActiveSheet(idx)
		}
		f.SetColWidth(sheet, "A", "A", 6)
		f.SetColWidth(sheet, "B", "B", 60)
		f.SetColWidth(sheet, "C", "N", 14)

		w := &excelWriter{
			f: f, sheet: sheet, row: 1,
			titleStyle: titleStyle, headerStyle: headerStyle,
			cellStyle: cellStyle, subStyle: subStyle,
		}
		for _, b := range page.Blocks {
			writeBlock(w, b)
			w.blank()
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeBlock(w *excelWriter, b Block) {
	switch b.Type {
	case BlockHeaderBanner:
		h := b.HeaderBanner
		w.setRow([]interface{}{h.Title}, w.titleStyle)
		w.setRow([]interface{}{h.Subtitle}, w.titleStyle)
		w.setRow([]interface{}{fmt.Sprintf("Page %d of %d", h.PageNo, h.TotalPages)}, 0)

	case BlockInfoFieldGrid:
		for _, fields := range b.InfoFieldGrid.Rows {
			values := make([]interface{}, 0, len(fields)*2)
			for _, fld := range fields {
				values = append(values, fld.Label, fld.Value)
			}
			w.setRow(values, 0)
		}

	case BlockCheckboxRow:
		values := []interface{}{b.CheckboxRow.Caption}
		for _, it := range b.CheckboxRow.Items {
			mark := "☐"
			if it.Checked {
				mark = "☑"
			}
			values = append(values, mark+" "+it.Label)
		}
		w.setRow(values, 0)

	case BlockSectionTitle:
		w.setRow([]interface{}{b.SectionTitle.Text}, w.headerStyle)

	case BlockChecklistTable:
		t := b.ChecklistTable
		head := []interface{}{"No.", "Description"}
		for _, h := range t.DeviceHeaders {
			head = append(head, h)
		}
		head = append(head, "Remark")
		w.setRow(head, w.headerStyle)
		for _, row := range t.Rows {
			style := w.cellStyle
			if row.Sub {
				style = w.subStyle
			}
			values := []interface{}{row.No, row.Description}
			if row.Cells == nil {
				for range t.DeviceHeaders {
					values = append(values, "")
				}
			} else {
				for _, c := range row.Cells {
					values = append(values, glyphText(c))
				}
			}
			values = append(values, row.Remark)
			w.setRow(values, style)
		}

	case BlockMeasurementGrid:
		g := b.MeasurementGrid
		w.setRow([]interface{}{g.Title}, w.headerStyle)
		if len(g.Groups) > 0 {
			values := []interface{}{"", ""}
			for _, grp := range g.Groups {
				values = append(values, grp.Label)
				for i := 1; i < grp.Span; i++ {
					values = append(values, "")
				}
			}
			w.setRow(values, w.headerStyle)
		}
		cols := []interface{}{"", ""}
		for _, c := range g.Columns {
			cols = append(cols, c)
		}
		w.setRow(cols, w.headerStyle)
		for _, row := range g.Rows {
			values := []interface{}{row.Label, row.Sub}
			for _, v := range row.Values {
				values = append(values, v)
			}
			w.setRow(values, w.cellStyle)
		}
		if g.Remark != "" {
			w.setRow([]interface{}{g.Remark}, 0)
		}

	case BlockSpringForceTable:
		t := b.SpringForceTable
		w.setRow([]interface{}{t.Title}, w.headerStyle)
		for _, half := range t.Halves {
			head := []interface{}{half.Title}
			for i := 0; i < t.DeviceCount; i++ {
				head = append(head, fmt.Sprintf("Dev %d BF", i+1), fmt.Sprintf("Dev %d AT", i+1))
			}
			w.setRow(head, w.headerStyle)
			for _, row := range half.Rows {
				values := []interface{}{row.ContactNo}
				for _, c := range row.Cells {
					values = append(values, c.Before, c.After)
				}
				w.setRow(values, w.cellStyle)
			}
		}
		if t.Remark != "" {
			w.setRow([]interface{}{t.Remark}, 0)
		}

	case BlockLedStatusGrid:
		g := b.LedStatusGrid
		w.setRow([]interface{}{g.Title}, w.headerStyle)
		head := []interface{}{"Unit"}
		if len(g.Panels) > 0 {
			for _, led := range g.Panels[0].Leds {
				head = append(head, led.Indicator)
			}
			w.setRow(head, w.headerStyle)
		}
		for _, panel := range g.Panels {
			values := []interface{}{panel.DeviceCode}
			for _, led := range panel.Leds {
				values = append(values, string(led.Color))
			}
			w.setRow(values, w.cellStyle)
		}
		for _, legend := range g.Legend {
			w.setRow([]interface{}{string(legend.Color), legend.Label}, w.subStyle)
		}

	case BlockNotes:
		w.setRow([]interface{}{b.Notes.Title}, w.headerStyle)
		for i := 0; i < b.Notes.Lines; i++ {
			w.blank()
		}

	case BlockPhotoArea:
		w.setRow([]interface{}{b.PhotoArea.Title}, w.headerStyle)
		w.setRow([]interface{}{b.PhotoArea.Placeholder}, w.subStyle)

	case BlockSignature:
		for _, line := range b.Signature.Lines {
			name := line.Name
			if name == "" {
				name = "........................."
			}
			w.setRow([]interface{}{line.Role, name}, 0)
		}

	case BlockFooter:
		w.setRow([]interface{}{b.Footer.FormNumber, b.Footer.EffectiveDate}, w.subStyle)

	case BlockPlaceholder:
		w.setRow([]interface{}{b.Placeholder.Message}, w.subStyle)
	}
}
