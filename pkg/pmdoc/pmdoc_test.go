// pkg/pmdoc/pmdoc_test.go
package pmdoc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

func testInfo() ReportInfo {
	return ReportInfo{
		WorkOrderNo:      "WO-2026-0042",
		ReportDate:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		ReportTimeStart:  "01:30",
		ReportTimeEnd:    "04:00",
		StationName:      "Mo Chit",
		LocationArea:     "Trackside North",
		LeaderName:       "Somchai P.",
		ApostleName:      "Anan K.",
		CoordinatePerson: "Wichai T.",
		GeneratedAt:      time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC),
	}
}

func TestPageCounts(t *testing.T) {
	pm := checklist.NewPointMachinePayload()
	pm.AddDevice("PM-101")
	moxa := checklist.NewMoxaTapPayload()
	moxa.AddDevice("TAP-01", "N8")
	emp := checklist.NewEmpPayload()

	tests := []struct {
		code    string
		payload checklist.Payload
		pages   int
	}{
		{checklist.TemplatePointMachine, pm, 4},
		{checklist.TemplateMoxaTap, moxa, 2},
		{checklist.TemplateEmp, emp, 2},
	}
	for _, tc := range tests {
		doc := Build(tc.code, testInfo(), tc.payload)
		if len(doc.Pages) != tc.pages {
			t.Errorf("%s: got %d pages, want %d", tc.code, len(doc.Pages), tc.pages)
		}
		for i, pg := range doc.Pages {
			if pg.Number != i+1 {
				t.Errorf("%s: page %d numbered %d", tc.code, i+1, pg.Number)
			}
			if len(pg.Blocks) == 0 {
				t.Errorf("%s: page %d is empty", tc.code, pg.Number)
			}
			if pg.Blocks[0].Type != BlockHeaderBanner {
				t.Errorf("%s: page %d does not start with a header", tc.code, pg.Number)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	p := checklist.NewPointMachinePayload()
	p.AddDevice("PM-101")
	p.AddDevice("PM-102")
	p.SetItemResult(0, 1, checklist.ResultPass, "")
	p.SetItemResult(1, 9, checklist.ResultFail, "crack 3 mm")

	a, _ := json.Marshal(Build(checklist.TemplatePointMachine, testInfo(), p))
	b, _ := json.Marshal(Build(checklist.TemplatePointMachine, testInfo(), p))
	if string(a) != string(b) {
		t.Fatal("two builds of the same report differ")
	}
}

func TestUnknownTemplateFallback(t *testing.T) {
	p := checklist.NewEmpPayload()
	doc := Build("PM_UNKNOWN", testInfo(), p)
	// EMP payload still lays out; a truly unknown payload type is the
	// fallback path.
	if doc.TemplateName != "" {
		t.Errorf("unknown code resolved template metadata %q", doc.TemplateName)
	}

	doc = Build("PM_UNKNOWN", testInfo(), nil)
	if len(doc.Pages) != 1 {
		t.Fatalf("fallback document has %d pages, want 1", len(doc.Pages))
	}
	found := false
	for _, b := range doc.Pages[0].Blocks {
		if b.Type == BlockPlaceholder {
			found = true
		}
	}
	if !found {
		t.Error("fallback page has no notice block")
	}
}

func TestResultGlyph(t *testing.T) {
	tests := []struct {
		in   checklist.CheckResult
		want Glyph
	}{
		{checklist.ResultPass, GlyphCheck},
		{checklist.ResultFail, GlyphCross},
		{checklist.ResultNA, GlyphDash},
		{checklist.ResultNotChecked, GlyphBlank},
		{"???", GlyphBlank},
	}
	for _, tc := range tests {
		if got := ResultGlyph(tc.in); got != tc.want {
			t.Errorf("ResultGlyph(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPointMachineWidths(t *testing.T) {
	tests := []struct {
		devices  int
		desc     int
		remark   int
		device   int
		overflow bool
	}{
		{1, 260, 40, 205, false},
		{2, 260, 40, 102, false},
		{3, 230, 40, 78, false},
		{4, 210, 30, 66, false},
	}
	for _, tc := range tests {
		tw := pointMachineWidths(tc.devices)
		if tw.No != 20 || tw.Desc != tc.desc || tw.Remark != tc.remark ||
			tw.Device != tc.device || tw.Overflow != tc.overflow {
			t.Errorf("pointMachineWidths(%d) = %+v, want desc=%d remark=%d device=%d",
				tc.devices, tw, tc.desc, tc.remark, tc.device)
		}
		used := tw.No + tw.Desc + tw.Remark + tw.Device*tc.devices
		if !tc.overflow && used > ContentWidth {
			t.Errorf("pointMachineWidths(%d): columns sum to %d, over %d", tc.devices, used, ContentWidth)
		}
	}
}

func TestMoxaTapWidths(t *testing.T) {
	tests := []struct {
		devices  int
		desc     int
		remark   int
		device   int
		overflow bool
	}{
		{1, 135, 35, 335, false},
		{5, 135, 35, 67, false},
		{6, 115, 35, 59, false},
		{9, 100, 28, 41, false},
		{15, 100, 28, 25, false},
		{16, 100, 28, MinDeviceColWidth, true},
	}
	for _, tc := range tests {
		tw := moxaTapWidths(tc.devices)
		if tw.Desc != tc.desc || tw.Remark != tc.remark ||
			tw.Device != tc.device || tw.Overflow != tc.overflow {
			t.Errorf("moxaTapWidths(%d) = %+v, want desc=%d remark=%d device=%d overflow=%v",
				tc.devices, tw, tc.desc, tc.remark, tc.device, tc.overflow)
		}
	}
}

func TestEmpPlatformWidths(t *testing.T) {
	tw := empPlatformWidths(0)
	if tw.Device != (ContentWidth-22-155-35)/8 {
		t.Errorf("zero devices should lay out the eight-column grid, got device width %d", tw.Device)
	}
	if tw.Overflow {
		t.Error("eight-column grid must not overflow")
	}
}

func TestOverflowFlagReachesPage(t *testing.T) {
	p := checklist.NewMoxaTapPayload()
	for i := 0; i < 16; i++ {
		p.AddDevice(string(rune('A'+i))+"-TAP", "N8")
	}
	doc := Build(checklist.TemplateMoxaTap, testInfo(), p)
	if !doc.Pages[0].Overflow {
		t.Error("16 device columns hit the width floor but page 1 is not flagged")
	}
}

func TestMoxaLedSubRowsOnPageOneOnly(t *testing.T) {
	p := checklist.NewMoxaTapPayload()
	p.AddDevice("TAP-01", "N8")
	p.SetLedStatus(0, "PWR1", checklist.LedGreenOn)

	doc := Build(checklist.TemplateMoxaTap, testInfo(), p)

	countSubs := func(pg Page) (main, subs int) {
		for _, b := range pg.Blocks {
			if b.ChecklistTable == nil {
				continue
			}
			for _, row := range b.ChecklistTable.Rows {
				if row.Sub {
					subs++
				} else {
					main++
				}
			}
		}
		return
	}
	main1, subs1 := countSubs(doc.Pages[0])
	if main1 != 10 || subs1 != len(checklist.MoxaLedIndicators) {
		t.Errorf("page 1: %d main rows and %d sub-rows, want 10 and %d",
			main1, subs1, len(checklist.MoxaLedIndicators))
	}
	main2, subs2 := countSubs(doc.Pages[1])
	if main2 != 9 || subs2 != 0 {
		t.Errorf("page 2: %d main rows and %d sub-rows, want 9 and 0", main2, subs2)
	}

	// PWR1 is lit so its derived sub-row passes; the rest stay blank.
	for _, b := range doc.Pages[0].Blocks {
		if b.ChecklistTable == nil {
			continue
		}
		for _, row := range b.ChecklistTable.Rows {
			if !row.Sub {
				continue
			}
			want := GlyphBlank
			if row.Description == "LED PWR1" {
				want = GlyphCheck
			}
			if row.Cells[0] != want {
				t.Errorf("%s: glyph %q, want %q", row.Description, row.Cells[0], want)
			}
		}
	}
}

func TestPointMachineItemSplit(t *testing.T) {
	p := checklist.NewPointMachinePayload()
	p.AddDevice("PM-101")
	doc := Build(checklist.TemplatePointMachine, testInfo(), p)

	lastNo := func(pg Page) (first, last string) {
		for _, b := range pg.Blocks {
			if b.ChecklistTable == nil {
				continue
			}
			for _, row := range b.ChecklistTable.Rows {
				if row.Sub {
					continue
				}
				if first == "" {
					first = row.No
				}
				last = row.No
			}
		}
		return
	}
	if first, last := lastNo(doc.Pages[0]); first != "1" || last != "14" {
		t.Errorf("page 1 covers items %s-%s, want 1-14", first, last)
	}
	if first, last := lastNo(doc.Pages[1]); first != "15" || last != "30" {
		t.Errorf("page 2 covers items %s-%s, want 15-30", first, last)
	}
}

func TestPointMachineSubtitleJoinsCodes(t *testing.T) {
	p := checklist.NewPointMachinePayload()
	p.AddDevice("PM-101")
	p.AddDevice("PM-102")
	doc := Build(checklist.TemplatePointMachine, testInfo(), p)
	got := doc.Pages[0].Blocks[0].HeaderBanner.Subtitle
	want := "PM (Y1) POINT MACHINE PM-101 & PM-102"
	if got != want {
		t.Errorf("subtitle %q, want %q", got, want)
	}
}

func TestZeroDevicePlaceholder(t *testing.T) {
	p := checklist.NewPointMachinePayload()
	doc := Build(checklist.TemplatePointMachine, testInfo(), p)
	hasTable, hasNotice := false, false
	for _, b := range doc.Pages[0].Blocks {
		if b.Type == BlockChecklistTable {
			hasTable = true
		}
		if b.Type == BlockPlaceholder {
			hasNotice = true
		}
	}
	if hasTable || !hasNotice {
		t.Errorf("empty report page 1: table=%v notice=%v, want no table and a notice", hasTable, hasNotice)
	}
	// Measurement tables on page 3 still print their empty grids.
	grids := 0
	for _, b := range doc.Pages[2].Blocks {
		if b.Type == BlockMeasurementGrid || b.Type == BlockSpringForceTable {
			grids++
		}
	}
	if grids != 3 {
		t.Errorf("page 3 has %d measurement blocks, want 3", grids)
	}
}

func TestEmpSurgeSection(t *testing.T) {
	p := checklist.NewEmpPayload()
	doc := Build(checklist.TemplateEmp, testInfo(), p)
	tables := 0
	notice := false
	for _, b := range doc.Pages[0].Blocks {
		if b.Type == BlockChecklistTable {
			tables++
		}
		if b.Type == BlockPlaceholder {
			notice = true
		}
	}
	// Control box and platform tables only; surge box is absent.
	if tables != 2 || !notice {
		t.Errorf("surge absent: %d tables, notice=%v, want 2 tables and a notice", tables, notice)
	}

	p.SetSurgePresent(true)
	doc = Build(checklist.TemplateEmp, testInfo(), p)
	tables, notice = 0, false
	for _, b := range doc.Pages[0].Blocks {
		if b.Type == BlockChecklistTable {
			tables++
		}
		if b.Type == BlockPlaceholder {
			notice = true
		}
	}
	if tables != 3 || notice {
		t.Errorf("surge present: %d tables, notice=%v, want 3 tables and no notice", tables, notice)
	}
}

func TestEmpPlatformGridAlwaysEight(t *testing.T) {
	p := checklist.NewEmpPayload()
	doc := Build(checklist.TemplateEmp, testInfo(), p)
	for _, b := range doc.Pages[0].Blocks {
		if b.ChecklistTable == nil || b.ChecklistTable.GroupHeader != "Emergency Stop Plunger" {
			continue
		}
		if got := len(b.ChecklistTable.DeviceHeaders); got != checklist.EmpPlatformDevices {
			t.Errorf("platform grid has %d columns, want %d", got, checklist.EmpPlatformDevices)
		}
		return
	}
	t.Fatal("platform table not found on page 1")
}

func TestElectricalGridRowPairs(t *testing.T) {
	p := checklist.NewPointMachinePayload()
	p.AddDevice("PM-101")
	v := 0.4
	p.SetMeasurement(0, "electrical", "contactPlus_2_3", &v)
	p.SetMeasurement(0, "electrical", "contactMinus_1_2", &v)

	doc := Build(checklist.TemplatePointMachine, testInfo(), p)
	for _, b := range doc.Pages[2].Blocks {
		if b.MeasurementGrid == nil || b.MeasurementGrid.Title != "Electrical Measurement" {
			continue
		}
		g := b.MeasurementGrid
		if len(g.Columns) != 13 {
			t.Fatalf("electrical grid has %d columns, want 13", len(g.Columns))
		}
		if len(g.Rows) != 2 {
			t.Fatalf("one device should print 2 rows, got %d", len(g.Rows))
		}
		if g.Rows[0].Values[0] != "0.4" || g.Rows[0].Values[3] != "" {
			t.Errorf("plus row values wrong: %v", g.Rows[0].Values)
		}
		if g.Rows[1].Values[3] != "0.4" || g.Rows[1].Values[0] != "" {
			t.Errorf("minus row values wrong: %v", g.Rows[1].Values)
		}
		return
	}
	t.Fatal("electrical grid not found on page 3")
}

func TestShortChecklistRendersBlankCells(t *testing.T) {
	// Drafts can be stored with fewer items than the form defines;
	// the layout prints blanks for the missing entries.
	pm, err := checklist.Decode(checklist.TemplatePointMachine,
		[]byte(`{"devices":[{"pmCode":"W01","checklist":[]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	doc := Build(checklist.TemplatePointMachine, testInfo(), pm)
	for _, page := range doc.Pages {
		for _, b := range page.Blocks {
			if b.Type != BlockChecklistTable {
				continue
			}
			for _, row := range b.ChecklistTable.Rows {
				for _, c := range row.Cells {
					if c != GlyphBlank {
						t.Fatalf("row %s cell = %q, want blank", row.No, c)
					}
				}
			}
		}
	}

	moxa, err := checklist.Decode(checklist.TemplateMoxaTap,
		[]byte(`{"devices":[{"tapCode":"TAP-01","stationCode":"N8","checklist":[{"itemNo":1,"result":"PASS"}]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	doc = Build(checklist.TemplateMoxaTap, testInfo(), moxa)
	if got := len(doc.Pages); got != moxaTapPages {
		t.Fatalf("pages = %d, want %d", got, moxaTapPages)
	}
}

func TestExcelRender(t *testing.T) {
	p := checklist.NewPointMachinePayload()
	p.AddDevice("PM-101")
	doc := Build(checklist.TemplatePointMachine, testInfo(), p)

	f, err := ToExcel(doc)
	if err != nil {
		t.Fatalf("ToExcel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != len(doc.Pages) {
		t.Fatalf("workbook has %d sheets, want %d", len(sheets), len(doc.Pages))
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("workbook serialized to zero bytes")
	}
}
