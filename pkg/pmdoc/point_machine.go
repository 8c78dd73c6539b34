// pkg/pmdoc/point_machine.go
package pmdoc

import (
	"fmt"
	"strings"

	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

// itemDef is one printed checklist line. Sub lines carry measurement
// prompts or expanded detail and never get result cells of their own
// (the LED expansion on the MOXA form is the one exception).
type itemDef struct {
	no   int
	text string
	subs []string
}

const measureRemark = "record in the table on page 3"

var pointMachineItems = []itemDef{
	{1, "Visually check the overall condition of the point machine and the surrounding point area.", nil},
	{2, "Test with the 3 mm steel template: operate the point; the machine must not lock in the end position.", []string{
		"Power rod adjustment, plus (+) side (mm)",
		"Power rod adjustment, minus (-) side (mm)",
	}},
	{3, "Test with the 5 mm steel template: operate the point; the machine must not complete the movement.", []string{
		"Power rod adjustment, plus (+) side (mm)",
		"Power rod adjustment, minus (-) side (mm)",
	}},
	{4, "Check the detector rod center gap (criteria 2 - 3 mm).", []string{
		"Adjustment in, plus (+) side (mm)",
		"Adjustment in, minus (-) side (mm)",
		"Adjustment out, plus (+) side (mm)",
		"Adjustment out, minus (-) side (mm)",
	}},
	{5, "Measure the switching force with the force gauge (" + measureRemark + ").", nil},
	{6, "Lubricate the slide chairs and all moving parts with the specified grease.", nil},
	{7, "Check the insulated bolt and jaw for damage and tightness.", nil},
	{8, "Check the nut position markers; repaint any faded marker.", nil},
	{9, "Check the concrete base for cracks (criteria not over 2 mm).", nil},
	{10, "Check all visible parts for corrosion; treat and repaint where found.", nil},
	{11, "Check the gear box oil level; top up if below the mark.", nil},
	{12, "Clean the interior of the machine housing.", nil},
	{13, "Check the tightness of all bolts and fixings on the drive and detector rods.", nil},
	{14, "Check the cable entries and wiring terminals against the wiring diagram.", nil},
	{15, "Measure the contact spring force (" + measureRemark + ").", nil},
	{16, "Measure the contact resistances (" + measureRemark + ").", nil},
	{17, "Measure the supply voltages L1/L2, L1/L3 and L2/L3 (" + measureRemark + ").", nil},
	{18, "Measure the motor start and running currents (" + measureRemark + ").", nil},
	{19, "Measure the detection terminal voltages (" + measureRemark + ").", nil},
	{20, "Operate the machine with the hand crank to the start position and back.", nil},
	{21, "Operate the point from normal to reverse and confirm correct detection.", nil},
	{22, "Operate the point from reverse to normal and confirm correct detection.", nil},
	{23, "Repeat the operating test and listen for abnormal noise or vibration.", nil},
	{24, "Bell test 1: obstruct the point; the alarm bell must ring non-continuously.", nil},
	{25, "Bell test 2: the alarm bell must ring continuously.", nil},
	{26, "Bell test 3: the alarm bell must ring non-continuously.", nil},
	{27, "Clean the outside of the machine and the point area.", nil},
	{28, "Check that all covers are closed and locked.", nil},
	{29, "Final visual inspection of the complete installation.", nil},
	{30, "Confirm completion of the work with the CCR before leaving the site.", nil},
}

const (
	pointMachinePages     = 4
	pointMachinePage1Last = 14
)

func pointMachineSubtitle(p *checklist.PointMachinePayload) string {
	codes := make([]string, 0, len(p.Devices))
	for _, d := range p.Devices {
		codes = append(codes, d.PmCode)
	}
	return strings.TrimSpace("PM (Y1) POINT MACHINE " + strings.Join(codes, " & "))
}

// pointMachineTable renders items [from..to] across every device column.
func pointMachineTable(p *checklist.PointMachinePayload, from, to int) Block {
	tw := pointMachineWidths(len(p.Devices))
	headers := make([]string, len(p.Devices))
	for i, d := range p.Devices {
		headers[i] = d.PmCode
	}
	t := &ChecklistTable{
		GroupHeader:   "Point Machine",
		DeviceHeaders: headers,
		NoWidth:       tw.No,
		DescWidth:     tw.Desc,
		DeviceWidth:   tw.Device,
		RemarkWidth:   tw.Remark,
		Overflow:      tw.Overflow,
	}
	for _, def := range pointMachineItems {
		if def.no < from || def.no > to {
			continue
		}
		row := TableRow{No: fmt.Sprintf("%d", def.no), Description: def.text}
		var remarks []string
		for _, d := range p.Devices {
			// Draft checklists may be shorter than the item list.
			if def.no-1 >= len(d.Checklist) {
				row.Cells = append(row.Cells, GlyphBlank)
				continue
			}
			it := d.Checklist[def.no-1]
			row.Cells = append(row.Cells, ResultGlyph(it.Result))
			if it.Remark != "" {
				remarks = append(remarks, it.Remark)
			}
		}
		row.Remark = strings.Join(remarks, "; ")
		t.Rows = append(t.Rows, row)
		for _, sub := range def.subs {
			t.Rows = append(t.Rows, TableRow{Description: sub, Sub: true})
		}
	}
	return Block{Type: BlockChecklistTable, ChecklistTable: t}
}

func pointMachineAccessBlocks() []Block {
	return []Block{
		{Type: BlockCheckboxRow, CheckboxRow: &CheckboxRow{
			Caption: "Station area access",
			Items:   []CheckboxItem{{Label: "Sign in"}, {Label: "Sign out"}},
		}},
		{Type: BlockCheckboxRow, CheckboxRow: &CheckboxRow{
			Caption: "Equipment borrow / return",
			Items: []CheckboxItem{
				{Label: "Earthing device"}, {Label: "Voltage tester"},
				{Label: "Borrowed"}, {Label: "Returned"},
			},
		}},
		{Type: BlockCheckboxRow, CheckboxRow: &CheckboxRow{
			Caption: "Track possession notified to CCR",
			Items:   []CheckboxItem{{Label: "Taken"}, {Label: "Handed back"}},
		}},
	}
}

func forceGrid(p *checklist.PointMachinePayload) Block {
	g := &MeasurementGrid{
		Title: "Switching Force and Mark Center Measurement",
		Groups: []GridGroup{
			{Label: "Force Before Adjustment (Nm)", Span: 2},
			{Label: "Force After Adjustment (Nm)", Span: 2},
			{Label: "Mark Center Before (mm)", Span: 2},
			{Label: "Mark Center After (mm)", Span: 2},
		},
		Columns: []string{"Plus (+)", "Minus (-)", "Plus (+)", "Minus (-)", "Plus (+)", "Minus (-)", "Plus (+)", "Minus (-)"},
		Remark:  "Criteria Force = 4000-6000 Nm",
	}
	if len(p.Devices) == 0 {
		for i := 0; i < checklist.PointMachineMaxDevices; i++ {
			g.Rows = append(g.Rows, GridRow{
				Label:  fmt.Sprintf("%d.", i+1),
				Values: make([]string, 8),
			})
		}
		return Block{Type: BlockMeasurementGrid, MeasurementGrid: g}
	}
	for i, d := range p.Devices {
		fm := d.ForceMeasurement
		if fm == nil {
			fm = &checklist.ForceMeasurement{}
		}
		g.Rows = append(g.Rows, GridRow{
			Label: fmt.Sprintf("%d. %s", i+1, d.PmCode),
			Values: []string{
				fmtValue(fm.ForceBeforePlus), fmtValue(fm.ForceBeforeMinus),
				fmtValue(fm.ForceAfterPlus), fmtValue(fm.ForceAfterMinus),
				fmtValue(fm.MarkCenterBeforePlus), fmtValue(fm.MarkCenterBeforeMinus),
				fmtValue(fm.MarkCenterAfterPlus), fmtValue(fm.MarkCenterAfterMinus),
			},
		})
	}
	return Block{Type: BlockMeasurementGrid, MeasurementGrid: g}
}

func electricalGrid(p *checklist.PointMachinePayload) Block {
	g := &MeasurementGrid{
		Title: "Electrical Measurement",
		Groups: []GridGroup{
			{Label: "Contact Resistance (ohm)", Span: 6},
			{Label: "Voltage (VAC)", Span: 3},
			{Label: "Current (A)", Span: 2},
			{Label: "Detect Terminal (VDC)", Span: 2},
		},
		Columns: []string{
			"2,3", "11,12", "13,14", "1,2", "3,4", "12,13",
			"L1,L2", "L1,L3", "L2,L3", "Start", "Run",
			"19,25 (+)", "18,24 (-)",
		},
		Remark: "Criteria contact resistance not over 1 ohm",
	}
	emit := func(label string, el *checklist.ElectricalMeasurement) {
		if el == nil {
			el = &checklist.ElectricalMeasurement{}
		}
		g.Rows = append(g.Rows,
			GridRow{Label: label, Sub: "Plus (+)", Values: []string{
				fmtValue(el.ContactPlus23), fmtValue(el.ContactPlus1112), fmtValue(el.ContactPlus1314),
				"", "", "",
				fmtValue(el.VoltageL1L2), fmtValue(el.VoltageL1L3), fmtValue(el.VoltageL2L3),
				fmtValue(el.CurrentStart), fmtValue(el.CurrentRun),
				fmtValue(el.TerminalPlus), "",
			}},
			GridRow{Sub: "Minus (-)", Values: []string{
				"", "", "",
				fmtValue(el.ContactMinus12), fmtValue(el.ContactMinus34), fmtValue(el.ContactMinus1213),
				"", "", "", "", "",
				"", fmtValue(el.TerminalMinus),
			}},
		)
	}
	if len(p.Devices) == 0 {
		for i := 0; i < checklist.PointMachineMaxDevices; i++ {
			emit(fmt.Sprintf("%d.", i+1), nil)
		}
	} else {
		for i, d := range p.Devices {
			emit(fmt.Sprintf("%d. %s", i+1, d.PmCode), d.Electrical)
		}
	}
	return Block{Type: BlockMeasurementGrid, MeasurementGrid: g}
}

// springForceTable prints contacts 1-10 and 11-20 side by side, one
// before/after column pair per device with a fixed four-device grid.
func springForceTable(p *checklist.PointMachinePayload) Block {
	numDevices := len(p.Devices)
	if numDevices == 0 {
		numDevices = checklist.PointMachineMaxDevices
	}
	if numDevices > checklist.PointMachineMaxDevices {
		numDevices = checklist.PointMachineMaxDevices
	}
	t := &SpringForceTable{
		Title:       "Contact Spring Force Measurement",
		DeviceCount: numDevices,
		Remark:      "Criteria 3-5 Nm",
	}
	half := func(title string, lo, hi int) SpringForceHalf {
		h := SpringForceHalf{Title: title}
		for no := lo; no <= hi; no++ {
			row := SpringForceRow{ContactNo: no}
			for dev := 0; dev < numDevices; dev++ {
				cell := SpringForceCell{}
				if dev < len(p.Devices) {
					for _, sf := range p.Devices[dev].SpringForce {
						if sf.ContactNo == no {
							cell.Before = fmtValue(sf.Before)
							cell.After = fmtValue(sf.After)
							break
						}
					}
				}
				row.Cells = append(row.Cells, cell)
			}
			h.Rows = append(h.Rows, row)
		}
		return h
	}
	t.Halves = []SpringForceHalf{
		half("Contact 1-10", 1, 10),
		half("Contact 11-20", 11, 20),
	}
	return Block{Type: BlockSpringForceTable, SpringForceTable: t}
}

func buildPointMachinePages(info ReportInfo, p *checklist.PointMachinePayload) []Page {
	subtitle := pointMachineSubtitle(p)
	code := checklist.TemplatePointMachine

	page1 := []Block{
		headerBlock(documentTitle, subtitle, 1, pointMachinePages),
		infoGridBlock(info),
	}
	page1 = append(page1, pointMachineAccessBlocks()...)
	page1 = append(page1, sectionBlock("Visual Inspection and Cleaning Procedure (Y1)"))
	if len(p.Devices) == 0 {
		page1 = append(page1, placeholderBlock("No point machines have been recorded for this report."))
	} else {
		page1 = append(page1, pointMachineTable(p, 1, pointMachinePage1Last))
	}
	page1 = append(page1, footerBlock(code))

	page2 := []Block{headerBlock(documentTitle, subtitle, 2, pointMachinePages)}
	if len(p.Devices) == 0 {
		page2 = append(page2, placeholderBlock("No point machines have been recorded for this report."))
	} else {
		page2 = append(page2, pointMachineTable(p, pointMachinePage1Last+1, checklist.PointMachineItemCount))
	}
	page2 = append(page2, footerBlock(code))

	page3 := []Block{
		headerBlock(documentTitle, subtitle, 3, pointMachinePages),
		forceGrid(p),
		electricalGrid(p),
		springForceTable(p),
		footerBlock(code),
	}

	page4 := []Block{
		headerBlock(documentTitle, subtitle, 4, pointMachinePages),
		notesBlock(6),
		photoBlock(),
		signatureBlock(info.LeaderName),
		footerBlock(code),
	}

	return []Page{
		{Number: 1, Blocks: page1, Overflow: pageOverflow(page1)},
		{Number: 2, Blocks: page2, Overflow: pageOverflow(page2)},
		{Number: 3, Blocks: page3},
		{Number: 4, Blocks: page4},
	}
}
