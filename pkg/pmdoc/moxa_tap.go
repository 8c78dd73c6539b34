// pkg/pmdoc/moxa_tap.go
package pmdoc

import (
	"fmt"
	"strings"

	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

var moxaTapItems = []itemDef{
	{1, "Check the external condition of the MOXA TAP cabinet.", nil},
	{2, "Check the external connectors and cables.", nil},
	{3, "Check the internal connectors and cables.", nil},
	{4, "Check the status LEDs.", nil},
	{5, "Check the antenna and its mounting.", nil},
	{6, "Check the grounding connection.", nil},
	{7, "Check the power supply.", nil},
	{8, "Check the surge protection device.", nil},
	{9, "Check the operating temperature.", nil},
	{10, "Check the firmware version.", nil},
	{11, "Check the device configuration.", nil},
	{12, "Check the network connection.", nil},
	{13, "Check the radio signal strength.", nil},
	{14, "Check the link status.", nil},
	{15, "Check the error log.", nil},
	{16, "Clean the exterior of the cabinet.", nil},
	{17, "Clean the interior of the cabinet.", nil},
	{18, "Check the ventilation openings.", nil},
	{19, "Inspection summary.", nil},
}

const (
	moxaTapPages     = 2
	moxaTapPage1Last = 10
)

const moxaTapSubtitle = "PM (M3) MOXA TAP (PROJECT RESIG)"

var ledLegend = []LedLegendEntry{
	{Color: checklist.LedGreenOn, Label: "green steady"},
	{Color: checklist.LedGreenBlink, Label: "green blinking"},
	{Color: checklist.LedOrangeOn, Label: "orange steady"},
	{Color: checklist.LedOrangeBlink, Label: "orange blinking"},
	{Color: checklist.LedRedOn, Label: "red steady"},
	{Color: checklist.LedOff, Label: "off"},
}

func moxaLedGrid(p *checklist.MoxaTapPayload) Block {
	g := &LedStatusGrid{Title: "LED Status", Legend: ledLegend}
	for _, d := range p.Devices {
		panel := LedPanel{DeviceCode: d.TapCode}
		for _, ind := range checklist.MoxaLedIndicators {
			panel.Leds = append(panel.Leds, LedState{Indicator: ind, Color: d.LedStatus.Get(ind)})
		}
		g.Panels = append(g.Panels, panel)
	}
	return Block{Type: BlockLedStatusGrid, LedStatusGrid: g}
}

// moxaTapTable renders items [from..to]. When includeSubLed is set,
// item 4 expands into one sub-row per indicator whose result is derived
// from the recorded LED state.
func moxaTapTable(p *checklist.MoxaTapPayload, from, to int, includeSubLed bool) Block {
	tw := moxaTapWidths(len(p.Devices))
	headers := make([]string, len(p.Devices))
	for i, d := range p.Devices {
		headers[i] = d.TapCode
	}
	t := &ChecklistTable{
		GroupHeader:   "MOXA TAP",
		DeviceHeaders: headers,
		NoWidth:       tw.No,
		DescWidth:     tw.Desc,
		DeviceWidth:   tw.Device,
		RemarkWidth:   tw.Remark,
		Overflow:      tw.Overflow,
	}
	for _, def := range moxaTapItems {
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
		if def.no == checklist.MoxaLedItemNo && includeSubLed {
			for _, ind := range checklist.MoxaLedIndicators {
				sub := TableRow{Description: "LED " + ind, Sub: true}
				for i := range p.Devices {
					sub.Cells = append(sub.Cells, ResultGlyph(p.Devices[i].LedItemResult(ind)))
				}
				t.Rows = append(t.Rows, sub)
			}
		}
	}
	return Block{Type: BlockChecklistTable, ChecklistTable: t}
}

func buildMoxaTapPages(info ReportInfo, p *checklist.MoxaTapPayload) []Page {
	code := checklist.TemplateMoxaTap

	page1 := []Block{
		headerBlock(documentTitle, moxaTapSubtitle, 1, moxaTapPages),
		infoGridBlock(info),
	}
	if len(p.Devices) == 0 {
		page1 = append(page1, placeholderBlock("No MOXA TAP units have been recorded for this report."))
	} else {
		page1 = append(page1,
			moxaLedGrid(p),
			sectionBlock("Visual Inspection and Cleaning Procedure (M3)"),
			moxaTapTable(p, 1, moxaTapPage1Last, true),
		)
	}
	page1 = append(page1, footerBlock(code))

	page2 := []Block{headerBlock(documentTitle, moxaTapSubtitle, 2, moxaTapPages)}
	if len(p.Devices) > 0 {
		page2 = append(page2, moxaTapTable(p, moxaTapPage1Last+1, checklist.MoxaItemCount, false))
	}
	page2 = append(page2,
		notesBlock(3),
		signatureBlock(info.LeaderName),
		footerBlock(code),
	)

	return []Page{
		{Number: 1, Blocks: page1, Overflow: pageOverflow(page1)},
		{Number: 2, Blocks: page2, Overflow: pageOverflow(page2)},
	}
}
