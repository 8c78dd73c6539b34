// pkg/checklist/point_machine.go
package checklist

import "fmt"

const (
	TemplatePointMachine = "PM_Y1_POINT_MACHINE"

	PointMachineItemCount  = 30
	PointMachineMaxDevices = 4
	SpringContactCount     = 20
)

// PowerRodAdjustment records adjustment distances measured during the
// 3 mm / 5 mm steel template tests.
type PowerRodAdjustment struct {
	PlusDistance  *float64 `json:"plusDistance,omitempty"`
	MinusDistance *float64 `json:"minusDistance,omitempty"`
}

type DetectorRodAdjustment struct {
	InPlus   *float64 `json:"inPlus,omitempty"`
	InMinus  *float64 `json:"inMinus,omitempty"`
	OutPlus  *float64 `json:"outPlus,omitempty"`
	OutMinus *float64 `json:"outMinus,omitempty"`
}

// ForceMeasurement holds switching force (Nm, criteria 4000-6000) and
// detector rod mark center (mm) readings, before and after adjustment.
type ForceMeasurement struct {
	ForceBeforePlus       *float64 `json:"forceBeforePlus,omitempty"`
	ForceBeforeMinus      *float64 `json:"forceBeforeMinus,omitempty"`
	ForceAfterPlus        *float64 `json:"forceAfterPlus,omitempty"`
	ForceAfterMinus       *float64 `json:"forceAfterMinus,omitempty"`
	MarkCenterBeforePlus  *float64 `json:"markCenterBeforePlus,omitempty"`
	MarkCenterBeforeMinus *float64 `json:"markCenterBeforeMinus,omitempty"`
	MarkCenterAfterPlus   *float64 `json:"markCenterAfterPlus,omitempty"`
	MarkCenterAfterMinus  *float64 `json:"markCenterAfterMinus,omitempty"`
}

// ElectricalMeasurement holds contact resistances (ohm, criteria <= 1),
// line voltages (VAC), motor currents (A) and terminal detect voltages
// (VDC) for one point machine.
type ElectricalMeasurement struct {
	ContactPlus23    *float64 `json:"contactPlus_2_3,omitempty"`
	ContactPlus1112  *float64 `json:"contactPlus_11_12,omitempty"`
	ContactPlus1314  *float64 `json:"contactPlus_13_14,omitempty"`
	ContactMinus12   *float64 `json:"contactMinus_1_2,omitempty"`
	ContactMinus34   *float64 `json:"contactMinus_3_4,omitempty"`
	ContactMinus1213 *float64 `json:"contactMinus_12_13,omitempty"`
	VoltageL1L2      *float64 `json:"voltageL1L2,omitempty"`
	VoltageL1L3      *float64 `json:"voltageL1L3,omitempty"`
	VoltageL2L3      *float64 `json:"voltageL2L3,omitempty"`
	CurrentStart     *float64 `json:"currentStart,omitempty"`
	CurrentRun       *float64 `json:"currentRun,omitempty"`
	TerminalPlus     *float64 `json:"terminalPlus,omitempty"`
	TerminalMinus    *float64 `json:"terminalMinus,omitempty"`
}

// SpringForceContact is one of the 20 contact spring readings (Nm,
// criteria 3-5).
type SpringForceContact struct {
	ContactNo int      `json:"contactNo"`
	Before    *float64 `json:"before,omitempty"`
	After     *float64 `json:"after,omitempty"`
}

type PointMachineDevice struct {
	PmCode           string                 `json:"pmCode"`
	ColumnOrder      int                    `json:"columnOrder"`
	Checklist        []Item                 `json:"checklist"`
	PowerRod3mm      *PowerRodAdjustment    `json:"powerRod3mm,omitempty"`
	PowerRod5mm      *PowerRodAdjustment    `json:"powerRod5mm,omitempty"`
	DetectorRod      *DetectorRodAdjustment `json:"detectorRod,omitempty"`
	ForceMeasurement *ForceMeasurement      `json:"forceMeasurement,omitempty"`
	Electrical       *ElectricalMeasurement `json:"electrical,omitempty"`
	SpringForce      []SpringForceContact   `json:"springForce,omitempty"`
}

type PointMachinePayload struct {
	Devices []PointMachineDevice `json:"devices"`
}

func NewPointMachinePayload() *PointMachinePayload {
	return &PointMachinePayload{Devices: []PointMachineDevice{}}
}

func (p *PointMachinePayload) TemplateCode() string { return TemplatePointMachine }

// AddDevice appends a device with a fresh 30-item checklist, empty
// measurement blocks and the full 20-contact spring force grid.
func (p *PointMachinePayload) AddDevice(pmCode string) error {
	if len(p.Devices) >= PointMachineMaxDevices {
		return fmt.Errorf("point machine report allows at most %d devices: %w", PointMachineMaxDevices, ErrDeviceLimit)
	}
	for _, d := range p.Devices {
		if d.PmCode == pmCode {
			return fmt.Errorf("pmCode %q: %w", pmCode, ErrDuplicateDevice)
		}
	}
	spring := make([]SpringForceContact, SpringContactCount)
	for i := range spring {
		spring[i] = SpringForceContact{ContactNo: i + 1}
	}
	p.Devices = append(p.Devices, PointMachineDevice{
		PmCode:           pmCode,
		ColumnOrder:      len(p.Devices) + 1,
		Checklist:        newChecklist(PointMachineItemCount),
		PowerRod3mm:      &PowerRodAdjustment{},
		PowerRod5mm:      &PowerRodAdjustment{},
		DetectorRod:      &DetectorRodAdjustment{},
		ForceMeasurement: &ForceMeasurement{},
		Electrical:       &ElectricalMeasurement{},
		SpringForce:      spring,
	})
	return nil
}

func (p *PointMachinePayload) RemoveDevice(index int) error {
	if index < 0 || index >= len(p.Devices) {
		return fmt.Errorf("device %d of %d: %w", index, len(p.Devices), ErrIndexOutOfRange)
	}
	p.Devices = append(p.Devices[:index], p.Devices[index+1:]...)
	for i := range p.Devices {
		p.Devices[i].ColumnOrder = i + 1
	}
	return nil
}

func (p *PointMachinePayload) SetItemResult(index, itemNo int, result CheckResult, remark string) error {
	if index < 0 || index >= len(p.Devices) {
		return fmt.Errorf("device %d of %d: %w", index, len(p.Devices), ErrIndexOutOfRange)
	}
	return setItem(p.Devices[index].Checklist, itemNo, result, remark)
}

// SetMeasurement writes one numeric field addressed by block and field
// name, using the same keys the payload serializes with.
func (p *PointMachinePayload) SetMeasurement(index int, block, field string, value *float64) error {
	if index < 0 || index >= len(p.Devices) {
		return fmt.Errorf("device %d of %d: %w", index, len(p.Devices), ErrIndexOutOfRange)
	}
	d := &p.Devices[index]
	switch block {
	case "powerRod3mm", "powerRod5mm":
		rod := d.PowerRod3mm
		if block == "powerRod5mm" {
			rod = d.PowerRod5mm
		}
		if rod == nil {
			rod = &PowerRodAdjustment{}
			if block == "powerRod5mm" {
				d.PowerRod5mm = rod
			} else {
				d.PowerRod3mm = rod
			}
		}
		switch field {
		case "plusDistance":
			rod.PlusDistance = value
		case "minusDistance":
			rod.MinusDistance = value
		default:
			return fmt.Errorf("%s.%s: %w", block, field, ErrUnknownField)
		}
	case "detectorRod":
		if d.DetectorRod == nil {
			d.DetectorRod = &DetectorRodAdjustment{}
		}
		switch field {
		case "inPlus":
			d.DetectorRod.InPlus = value
		case "inMinus":
			d.DetectorRod.InMinus = value
		case "outPlus":
			d.DetectorRod.OutPlus = value
		case "outMinus":
			d.DetectorRod.OutMinus = value
		default:
			return fmt.Errorf("%s.%s: %w", block, field, ErrUnknownField)
		}
	case "forceMeasurement":
		if d.ForceMeasurement == nil {
			d.ForceMeasurement = &ForceMeasurement{}
		}
		fm := d.ForceMeasurement
		switch field {
		case "forceBeforePlus":
			fm.ForceBeforePlus = value
		case "forceBeforeMinus":
			fm.ForceBeforeMinus = value
		case "forceAfterPlus":
			fm.ForceAfterPlus = value
		case "forceAfterMinus":
			fm.ForceAfterMinus = value
		case "markCenterBeforePlus":
			fm.MarkCenterBeforePlus = value
		case "markCenterBeforeMinus":
			fm.MarkCenterBeforeMinus = value
		case "markCenterAfterPlus":
			fm.MarkCenterAfterPlus = value
		case "markCenterAfterMinus":
			fm.MarkCenterAfterMinus = value
		default:
			return fmt.Errorf("%s.%s: %w", block, field, ErrUnknownField)
		}
	case "electrical":
		if d.Electrical == nil {
			d.Electrical = &ElectricalMeasurement{}
		}
		el := d.Electrical
		switch field {
		case "contactPlus_2_3":
			el.ContactPlus23 = value
		case "contactPlus_11_12":
			el.ContactPlus1112 = value
		case "contactPlus_13_14":
			el.ContactPlus1314 = value
		case "contactMinus_1_2":
			el.ContactMinus12 = value
		case "contactMinus_3_4":
			el.ContactMinus34 = value
		case "contactMinus_12_13":
			el.ContactMinus1213 = value
		case "voltageL1L2":
			el.VoltageL1L2 = value
		case "voltageL1L3":
			el.VoltageL1L3 = value
		case "voltageL2L3":
			el.VoltageL2L3 = value
		case "currentStart":
			el.CurrentStart = value
		case "currentRun":
			el.CurrentRun = value
		case "terminalPlus":
			el.TerminalPlus = value
		case "terminalMinus":
			el.TerminalMinus = value
		default:
			return fmt.Errorf("%s.%s: %w", block, field, ErrUnknownField)
		}
	default:
		return fmt.Errorf("%s: %w", block, ErrUnknownSection)
	}
	return nil
}

// SetSpringForce records the before/after reading for one of the 20
// contact springs.
func (p *PointMachinePayload) SetSpringForce(index, contactNo int, before, after *float64) error {
	if index < 0 || index >= len(p.Devices) {
		return fmt.Errorf("device %d of %d: %w", index, len(p.Devices), ErrIndexOutOfRange)
	}
	for i := range p.Devices[index].SpringForce {
		if p.Devices[index].SpringForce[i].ContactNo == contactNo {
			p.Devices[index].SpringForce[i].Before = before
			p.Devices[index].SpringForce[i].After = after
			return nil
		}
	}
	return fmt.Errorf("contact %d: %w", contactNo, ErrItemNotFound)
}

func (p *PointMachinePayload) Validate() []Violation {
	var vs []Violation
	if len(p.Devices) < 1 {
		vs = append(vs, Violation{Path: "devices", Rule: "min", Message: "at least one point machine is required"})
	}
	if len(p.Devices) > PointMachineMaxDevices {
		vs = append(vs, Violation{Path: "devices", Rule: "max",
			Message: fmt.Sprintf("at most %d point machines per report, got %d", PointMachineMaxDevices, len(p.Devices))})
	}
	seen := map[string]bool{}
	for i, d := range p.Devices {
		path := fmt.Sprintf("devices[%d]", i)
		if d.PmCode == "" {
			vs = append(vs, Violation{Path: path + ".pmCode", Rule: "required", Message: "pmCode is required"})
		} else if seen[d.PmCode] {
			vs = append(vs, Violation{Path: path + ".pmCode", Rule: "unique",
				Message: fmt.Sprintf("pmCode %q appears more than once", d.PmCode)})
		}
		seen[d.PmCode] = true
		vs = checkItems(vs, path+".checklist", d.Checklist, PointMachineItemCount)
		for j, sf := range d.SpringForce {
			if sf.ContactNo < 1 || sf.ContactNo > SpringContactCount {
				vs = append(vs, Violation{
					Path:    fmt.Sprintf("%s.springForce[%d].contactNo", path, j),
					Rule:    "range",
					Message: fmt.Sprintf("contactNo must be 1-%d, got %d", SpringContactCount, sf.ContactNo),
				})
			}
		}
	}
	return vs
}

func (p *PointMachinePayload) Stats() Stats {
	var s Stats
	for _, d := range p.Devices {
		s.tally(d.Checklist)
	}
	return s
}
