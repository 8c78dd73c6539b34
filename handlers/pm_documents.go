// handlers/pm_documents.go
package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rchotikawat/BTS-MaintenanceApp/config"
	"github.com/rchotikawat/BTS-MaintenanceApp/models"
	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/pmdoc"
)

func buildDocument(report *models.MaintenanceReport) (*pmdoc.Document, error) {
	payload, err := checklist.Decode(report.JobTemplateCode, report.ChecklistData)
	if err != nil {
		return nil, err
	}
	info := pmdoc.ReportInfo{
		WorkOrderNo:      report.WorkOrderNo,
		WorkOrderNo2:     report.WorkOrderNo2,
		ReportDate:       report.ReportDate,
		ReportTimeStart:  report.ReportTimeStart,
		ReportTimeEnd:    report.ReportTimeEnd,
		StationName:      report.StationName,
		LocationArea:     report.LocationArea,
		LeaderName:       report.LeaderName,
		ApostleName:      report.ApostleName,
		CoordinatePerson: report.CoordinatePerson,
		TprNo:            report.TprNo,
		TeamNameList:     report.TeamNameList,
		WorkDescription:  report.WorkDescription,
		GeneratedAt:      report.UpdatedAt,
	}
	return pmdoc.Build(report.JobTemplateCode, info, payload), nil
}

// GetReportDocument returns the laid-out print model as JSON. The
// client renders it page by page without any layout decisions of its
// own.
func GetReportDocument(w http.ResponseWriter, r *http.Request) {
	report, ok := loadReport(w, r)
	if !ok {
		return
	}
	doc, err := buildDocument(report)
	if err != nil {
		writePayloadErr(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// ExportReportExcel renders the document into a workbook, one sheet
// per page, and streams it as a download.
func ExportReportExcel(w http.ResponseWriter, r *http.Request) {
	report, ok := loadReport(w, r)
	if !ok {
		return
	}
	doc, err := buildDocument(report)
	if err != nil {
		writePayloadErr(w, err)
		return
	}

	excelFile, err := pmdoc.ToExcel(doc)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeFilename(report.WorkOrderNo), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

var reportExportHeaders = []string{
	"Work Order No", "Template", "Report Date", "Station", "Leader",
	"Status", "Total Items", "Pass", "Fail", "Has Issues", "Submitted At",
}

func reportExportRow(m models.MaintenanceReport) []string {
	submitted := ""
	if m.SubmittedAt != nil {
		submitted = m.SubmittedAt.Format("2006-01-02 15:04:05")
	}
	return []string{
		m.WorkOrderNo,
		m.JobTemplateCode,
		m.ReportDate.Format("2006-01-02"),
		m.StationName,
		m.LeaderName,
		string(m.Status),
		fmt.Sprintf("%d", m.TotalCheckItems),
		fmt.Sprintf("%d", m.PassCount),
		fmt.Sprintf("%d", m.FailCount),
		fmt.Sprintf("%v", m.HasIssues),
		submitted,
	}
}

// ExportReportList exports the filtered report list as CSV or XLSX.
// The same filters as ListReports apply.
func ExportReportList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "xlsx"
	}

	db := config.DB.Model(&models.MaintenanceReport{}).Where("deleted_at IS NULL")
	if s := q.Get("status"); s != "" {
		db = db.Where("status = ?", s)
	}
	if c := q.Get("templateCode"); c != "" {
		db = db.Where("job_template_code = ?", c)
	}
	if d := q.Get("dateFrom"); d != "" {
		db = db.Where("report_date >= ?", d)
	}
	if d := q.Get("dateTo"); d != "" {
		db = db.Where("report_date <= ?", d)
	}

	var reports []models.MaintenanceReport
	if err := db.Omit("checklist_data").Order("report_date DESC").Find(&reports).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	switch format {
	case "csv":
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		writer.Write(reportExportHeaders)
		for _, m := range reports {
			writer.Write(reportExportRow(m))
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
			return
		}
		filename := fmt.Sprintf("pm_reports_%s.csv", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())

	case "xlsx":
		rows := make([][]string, len(reports))
		for i, m := range reports {
			rows[i] = reportExportRow(m)
		}
		f, err := createListExcel("PM Reports", reportExportHeaders, rows)
		if err != nil {
			http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
			return
		}
		buffer, err := f.WriteToBuffer()
		if err != nil {
			http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
			return
		}
		filename := fmt.Sprintf("pm_reports_%s.xlsx", time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
		w.WriteHeader(http.StatusOK)
		w.Write(buffer.Bytes())

	default:
		http.Error(w, "unknown format "+format, http.StatusBadRequest)
	}
}

// createListExcel builds a flat one-sheet workbook for list exports.
func createListExcel(title string, headers []string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheetName = "Report"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func sanitizeFilename(filename string) string {
	replacements := map[rune]rune{
		'/':  '_',
		'\\': '_',
		':':  '_',
		'*':  '_',
		'?':  '_',
		'"':  '_',
		'<':  '_',
		'>':  '_',
		'|':  '_',
		' ':  '_',
	}
	out := make([]rune, 0, len(filename))
	for _, c := range filename {
		if repl, ok := replacements[c]; ok {
			out = append(out, repl)
		} else {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return "report"
	}
	return string(out)
}
