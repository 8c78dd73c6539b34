package checklist

import (
	"errors"
	"reflect"
	"testing"
)

func TestInitializeIdempotent(t *testing.T) {
	for _, code := range Codes() {
		a, err := Initialize(code)
		if err != nil {
			t.Fatalf("Initialize(%s): %v", code, err)
		}
		b, _ := Initialize(code)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Initialize(%s) not deterministic", code)
		}
	}
}

func TestInitializeUnknownCode(t *testing.T) {
	if _, err := Initialize("PM_X9_UNKNOWN"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestEmpInitialShape(t *testing.T) {
	p := NewEmpPayload()
	if got := len(p.ControlBox.Checklist); got != 5 {
		t.Errorf("control box items = %d, want 5", got)
	}
	if p.SurgeProtectionBox.IsPresent {
		t.Error("surge box should start absent")
	}
	if got := len(p.Platform.Devices); got != 8 {
		t.Fatalf("platform devices = %d, want 8", got)
	}
	for i, d := range p.Platform.Devices {
		if d.EmpNumber != i+1 {
			t.Errorf("device %d empNumber = %d", i, d.EmpNumber)
		}
		if len(d.Checklist) != 5 {
			t.Errorf("device %d items = %d, want 5", i, len(d.Checklist))
		}
		for _, it := range d.Checklist {
			if it.Result != ResultNotChecked {
				t.Errorf("device %d item %d starts %s", i, it.ItemNo, it.Result)
			}
		}
	}
}

func TestAggregationIdentity(t *testing.T) {
	p := NewPointMachinePayload()
	if err := p.AddDevice("V101"); err != nil {
		t.Fatal(err)
	}
	if err := p.AddDevice("V102"); err != nil {
		t.Fatal(err)
	}
	// Scenario: one failing item on the second device.
	if err := p.SetItemResult(1, 13, ResultFail, "loose bolt"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetItemResult(0, 1, ResultPass, ""); err != nil {
		t.Fatal(err)
	}
	if err := p.SetItemResult(0, 2, ResultNA, ""); err != nil {
		t.Fatal(err)
	}

	s := p.Stats()
	if s.TotalCheckItems != 60 {
		t.Errorf("total = %d, want 60", s.TotalCheckItems)
	}
	if s.FailCount != 1 || !s.HasIssues {
		t.Errorf("failCount = %d hasIssues = %v, want 1/true", s.FailCount, s.HasIssues)
	}
	if s.PassCount != 1 {
		t.Errorf("passCount = %d, want 1", s.PassCount)
	}

	// total = pass + fail + everything else
	other := 0
	for _, d := range p.Devices {
		for _, it := range d.Checklist {
			if it.Result == ResultNA || it.Result == ResultNotChecked {
				other++
			}
		}
	}
	if s.TotalCheckItems != s.PassCount+s.FailCount+other {
		t.Errorf("counting identity broken: %d != %d+%d+%d", s.TotalCheckItems, s.PassCount, s.FailCount, other)
	}
}

func TestAddRemoveDeviceInverse(t *testing.T) {
	p := NewMoxaTapPayload()
	if err := p.AddDevice("TAP-01", "N8"); err != nil {
		t.Fatal(err)
	}
	before, _ := Encode(p)
	if err := p.AddDevice("TAP-02", "N8"); err != nil {
		t.Fatal(err)
	}
	if err := p.RemoveDevice(len(p.Devices) - 1); err != nil {
		t.Fatal(err)
	}
	after, _ := Encode(p)
	if string(before) != string(after) {
		t.Errorf("add+remove is not an inverse:\n%s\n%s", before, after)
	}
}

func TestRemoveDeviceOutOfRange(t *testing.T) {
	p := NewMoxaTapPayload()
	if err := p.RemoveDevice(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestPointMachineDeviceLimit(t *testing.T) {
	p := NewPointMachinePayload()
	for _, code := range []string{"V101", "V102", "V103", "V104"} {
		if err := p.AddDevice(code); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.AddDevice("V105"); !errors.Is(err, ErrDeviceLimit) {
		t.Fatalf("expected ErrDeviceLimit, got %v", err)
	}
}

func TestDuplicateDeviceCodeRejected(t *testing.T) {
	p := NewPointMachinePayload()
	if err := p.AddDevice("V101"); err != nil {
		t.Fatal(err)
	}
	if err := p.AddDevice("V101"); !errors.Is(err, ErrDuplicateDevice) {
		t.Fatalf("expected ErrDuplicateDevice, got %v", err)
	}
}

func TestSetItemResultEnumClosure(t *testing.T) {
	p := NewPointMachinePayload()
	if err := p.AddDevice("V101"); err != nil {
		t.Fatal(err)
	}
	err := p.SetItemResult(0, 1, CheckResult("MAYBE"), "")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if p.Devices[0].Checklist[0].Result != ResultNotChecked {
		t.Error("invalid result must not be stored")
	}
}

func TestSetItemResultUnknownItem(t *testing.T) {
	p := NewPointMachinePayload()
	if err := p.AddDevice("V101"); err != nil {
		t.Fatal(err)
	}
	if err := p.SetItemResult(0, 31, ResultPass, ""); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSetMeasurement(t *testing.T) {
	p := NewPointMachinePayload()
	if err := p.AddDevice("V101"); err != nil {
		t.Fatal(err)
	}
	v := 4500.0
	if err := p.SetMeasurement(0, "forceMeasurement", "forceBeforePlus", &v); err != nil {
		t.Fatal(err)
	}
	if got := p.Devices[0].ForceMeasurement.ForceBeforePlus; got == nil || *got != 4500 {
		t.Errorf("forceBeforePlus = %v, want 4500", got)
	}
	if err := p.SetMeasurement(0, "forceMeasurement", "bogus", &v); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := p.SetMeasurement(0, "bogus", "x", &v); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestMoxaLedDerivation(t *testing.T) {
	p := NewMoxaTapPayload()
	if err := p.AddDevice("TAP-01", "CEN"); err != nil {
		t.Fatal(err)
	}
	d := &p.Devices[0]
	if got := d.LedItemResult("STATUS"); got != ResultNotChecked {
		t.Errorf("OFF led result = %s, want NOT_CHECKED", got)
	}
	if err := p.SetLedStatus(0, "STATUS", LedGreenOn); err != nil {
		t.Fatal(err)
	}
	if got := d.LedItemResult("STATUS"); got != ResultPass {
		t.Errorf("lit led result = %s, want PASS", got)
	}
	// the stored item 4 result must be untouched
	if d.Checklist[MoxaLedItemNo-1].Result != ResultNotChecked {
		t.Error("checklist item 4 was mutated by LED derivation")
	}
}

func TestMoxaStatsCountDerivedLedItem(t *testing.T) {
	p := NewMoxaTapPayload()
	if err := p.AddDevice("TAP-01", "CEN"); err != nil {
		t.Fatal(err)
	}

	// All LEDs dark: item 4 counts as NOT_CHECKED.
	s := p.Stats()
	if s.PassCount != 0 {
		t.Errorf("dark panel passCount = %d, want 0", s.PassCount)
	}

	// One lit indicator flips the counted item 4 to PASS even though
	// the stored entry stays NOT_CHECKED.
	if err := p.SetLedStatus(0, "STATUS", LedGreenOn); err != nil {
		t.Fatal(err)
	}
	s = p.Stats()
	if s.PassCount != 1 {
		t.Errorf("lit panel passCount = %d, want 1", s.PassCount)
	}
	if s.TotalCheckItems != MoxaItemCount {
		t.Errorf("total = %d, want %d", s.TotalCheckItems, MoxaItemCount)
	}
	if p.Devices[0].Checklist[MoxaLedItemNo-1].Result != ResultNotChecked {
		t.Error("stored item 4 was mutated by aggregation")
	}

	// An explicitly failed item 4 is still overridden by the panel.
	if err := p.SetItemResult(0, MoxaLedItemNo, ResultFail, ""); err != nil {
		t.Fatal(err)
	}
	s = p.Stats()
	if s.FailCount != 0 || s.PassCount != 1 {
		t.Errorf("failCount = %d passCount = %d, want 0/1", s.FailCount, s.PassCount)
	}
}

func TestMoxaValidateZeroDevices(t *testing.T) {
	p := NewMoxaTapPayload()
	vs := p.Validate()
	if len(vs) == 0 {
		t.Fatal("expected a violation for zero devices")
	}
	if vs[0].Path != "devices" || vs[0].Rule != "min" {
		t.Errorf("violation = %+v, want devices/min", vs[0])
	}
}

func TestEmpSurgeToggle(t *testing.T) {
	p := NewEmpPayload()
	p.SetSurgePresent(true)
	if got := len(p.SurgeProtectionBox.Checklist); got != 2 {
		t.Fatalf("surge items = %d, want 2", got)
	}
	if err := p.SetItemResult(EmpSectionSurgeBox, 0, 1, ResultPass, ""); err != nil {
		t.Fatal(err)
	}
	p.SetSurgePresent(false)
	if got := len(p.SurgeProtectionBox.Checklist); got != 0 {
		t.Fatalf("surge items after clear = %d, want 0", got)
	}
	if err := p.SetItemResult(EmpSectionSurgeBox, 0, 1, ResultPass, ""); err == nil {
		t.Fatal("expected error writing to absent surge box")
	}
	// stats must only include the surge items while present
	p.SetSurgePresent(true)
	if got := p.Stats().TotalCheckItems; got != 5+2+8*5 {
		t.Errorf("total with surge = %d, want 47", got)
	}
	p.SetSurgePresent(false)
	if got := p.Stats().TotalCheckItems; got != 5+8*5 {
		t.Errorf("total without surge = %d, want 45", got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for _, code := range Codes() {
		p, err := Initialize(code)
		if err != nil {
			t.Fatal(err)
		}
		raw, err := Encode(p)
		if err != nil {
			t.Fatal(err)
		}
		q, err := Decode(code, raw)
		if err != nil {
			t.Fatalf("Decode(%s): %v", code, err)
		}
		raw2, err := Encode(q)
		if err != nil {
			t.Fatal(err)
		}
		if string(raw) != string(raw2) {
			t.Errorf("round trip changed %s payload:\n%s\n%s", code, raw, raw2)
		}
	}
}

func TestDecodeRejectsBadEnum(t *testing.T) {
	raw := []byte(`{"devices":[{"tapCode":"T1","stationCode":"CEN","columnOrder":1,"checklist":[{"itemNo":1,"result":"GOOD"}]}]}`)
	if _, err := Decode(TemplateMoxaTap, raw); err == nil {
		t.Fatal("expected decode failure on unknown result value")
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	raw := []byte(`{"devices":[],"extra":1}`)
	if _, err := Decode(TemplatePointMachine, raw); err == nil {
		t.Fatal("expected decode failure on unknown key")
	}
}

func TestDecodeEmptyInitializes(t *testing.T) {
	p, err := Decode(TemplateEmp, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.(*EmpPayload).Platform.Devices) != 8 {
		t.Error("empty raw should initialize the full EMP shape")
	}
}

func TestLookup(t *testing.T) {
	tpl, err := Lookup(TemplateMoxaTap)
	if err != nil {
		t.Fatal(err)
	}
	if tpl.FormNumber != "FM-MTD-M51000-Z-021" {
		t.Errorf("form number = %s", tpl.FormNumber)
	}
	if _, err := Lookup("NOPE"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}
