// pkg/pmdoc/emp.go
package pmdoc

import (
	"fmt"
	"strings"

	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

var empControlItems = []itemDef{
	{1, "Check the external condition of the EMP control box.", nil},
	{2, "Check the terminals and connections.", nil},
	{3, "Check the circuit breaker.", nil},
	{4, "Check the relay and timer.", nil},
	{5, "Check the LED indicator.", nil},
}

var empSurgeItems = []itemDef{
	{1, "Check the surge protection device.", nil},
	{2, "Check the grounding connection.", nil},
}

var empPlatformItems = []itemDef{
	{1, "Check the EMP push button.", nil},
	{2, "Check the cover and housing.", nil},
	{3, "Check the spring mechanism.", nil},
	{4, "Check the wiring and connectors.", nil},
	{5, "Function test the plunger.", nil},
}

const empPages = 2

const empSubtitle = "PM (M2) : EMERGENCY STOP PLUNGER (EMP)"

// empSimpleTable is the single-result table used for the control box
// and the surge protection box.
func empSimpleTable(defs []itemDef, items []checklist.Item) Block {
	tw := empSimpleWidths()
	t := &ChecklistTable{
		DeviceHeaders: []string{"Result"},
		NoWidth:       tw.No,
		DescWidth:     tw.Desc,
		DeviceWidth:   tw.Device,
		RemarkWidth:   tw.Remark,
	}
	for _, def := range defs {
		row := TableRow{No: fmt.Sprintf("%d", def.no), Description: def.text}
		if def.no-1 < len(items) {
			it := items[def.no-1]
			row.Cells = []Glyph{ResultGlyph(it.Result)}
			row.Remark = it.Remark
		} else {
			row.Cells = []Glyph{GlyphBlank}
		}
		t.Rows = append(t.Rows, row)
	}
	return Block{Type: BlockChecklistTable, ChecklistTable: t}
}

// empPlatformTable always prints the full eight-plunger grid; columns
// without a recorded device stay empty.
func empPlatformTable(p *checklist.EmpPayload) Block {
	devices := p.Platform.Devices
	numCols := len(devices)
	if numCols == 0 {
		numCols = checklist.EmpPlatformDevices
	}
	tw := empPlatformWidths(numCols)
	headers := make([]string, numCols)
	for i := 0; i < numCols; i++ {
		if i < len(devices) {
			headers[i] = fmt.Sprintf("EMP %d", devices[i].EmpNumber)
		} else {
			headers[i] = fmt.Sprintf("EMP %d", i+1)
		}
	}
	t := &ChecklistTable{
		GroupHeader:   "Emergency Stop Plunger",
		DeviceHeaders: headers,
		NoWidth:       tw.No,
		DescWidth:     tw.Desc,
		DeviceWidth:   tw.Device,
		RemarkWidth:   tw.Remark,
		Overflow:      tw.Overflow,
	}
	for _, def := range empPlatformItems {
		row := TableRow{No: fmt.Sprintf("%d", def.no), Description: def.text}
		var remarks []string
		for i := 0; i < numCols; i++ {
			if i < len(devices) && def.no-1 < len(devices[i].Checklist) {
				it := devices[i].Checklist[def.no-1]
				row.Cells = append(row.Cells, ResultGlyph(it.Result))
				if it.Remark != "" {
					remarks = append(remarks, it.Remark)
				}
			} else {
				row.Cells = append(row.Cells, GlyphBlank)
			}
		}
		row.Remark = strings.Join(remarks, "; ")
		t.Rows = append(t.Rows, row)
	}
	return Block{Type: BlockChecklistTable, ChecklistTable: t}
}

func buildEmpPages(info ReportInfo, p *checklist.EmpPayload) []Page {
	code := checklist.TemplateEmp

	page1 := []Block{
		headerBlock(documentTitle, empSubtitle, 1, empPages),
		infoGridBlock(info),
		{Type: BlockCheckboxRow, CheckboxRow: &CheckboxRow{
			Caption: "Station area access",
			Items:   []CheckboxItem{{Label: "Sign in"}, {Label: "Sign out"}},
		}},
		sectionBlock("1. EMP Control Box in Station Control Room (SCR)"),
		empSimpleTable(empControlItems, p.ControlBox.Checklist),
		sectionBlock("2. Surge Protection Box"),
		{Type: BlockCheckboxRow, CheckboxRow: &CheckboxRow{
			Caption: "Surge protection box installed at this station",
			Items: []CheckboxItem{
				{Label: "Installed", Checked: p.SurgeProtectionBox.IsPresent},
				{Label: "Not installed", Checked: !p.SurgeProtectionBox.IsPresent},
			},
		}},
	}
	if p.SurgeProtectionBox.IsPresent {
		page1 = append(page1, empSimpleTable(empSurgeItems, p.SurgeProtectionBox.Checklist))
	} else {
		page1 = append(page1, placeholderBlock("No surge protection box is installed at this station."))
	}
	page1 = append(page1,
		sectionBlock("3. Emergency Stop Plunger on Platform"),
		empPlatformTable(p),
		footerBlock(code),
	)

	page2 := []Block{
		headerBlock(documentTitle, empSubtitle, 2, empPages),
		notesBlock(5),
		photoBlock(),
		signatureBlock(info.LeaderName),
		footerBlock(code),
	}

	return []Page{
		{Number: 1, Blocks: page1, Overflow: pageOverflow(page1)},
		{Number: 2, Blocks: page2},
	}
}
