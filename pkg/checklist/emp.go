// pkg/checklist/emp.go
package checklist

import "fmt"

const (
	TemplateEmp = "PM_M2_EMP"

	EmpControlItemCount  = 5
	EmpSurgeItemCount    = 2
	EmpPlatformItemCount = 5
	EmpPlatformDevices   = 8
)

// Section names accepted by EmpPayload.SetItemResult.
const (
	EmpSectionControlBox = "controlBox"
	EmpSectionSurgeBox   = "surgeProtectionBox"
	EmpSectionPlatform   = "platform"
)

type EmpControlBox struct {
	Checklist []Item `json:"checklist"`
}

// SurgeProtectionBox is optional station equipment. Its checklist exists
// only while IsPresent is true.
type SurgeProtectionBox struct {
	IsPresent bool   `json:"isPresent"`
	Checklist []Item `json:"checklist,omitempty"`
}

type EmpPlungerDevice struct {
	EmpNumber int    `json:"empNumber"`
	Checklist []Item `json:"checklist"`
}

type EmpPlatform struct {
	Devices []EmpPlungerDevice `json:"devices"`
}

type EmpPayload struct {
	ControlBox         EmpControlBox      `json:"controlBox"`
	SurgeProtectionBox SurgeProtectionBox `json:"surgeProtectionBox"`
	Platform           EmpPlatform        `json:"platform"`
}

// NewEmpPayload pre-seeds the fixed station shape: a 5-item control box,
// no surge box, and all 8 platform plungers each with 5 items.
func NewEmpPayload() *EmpPayload {
	devices := make([]EmpPlungerDevice, EmpPlatformDevices)
	for i := range devices {
		devices[i] = EmpPlungerDevice{
			EmpNumber: i + 1,
			Checklist: newChecklist(EmpPlatformItemCount),
		}
	}
	return &EmpPayload{
		ControlBox:         EmpControlBox{Checklist: newChecklist(EmpControlItemCount)},
		SurgeProtectionBox: SurgeProtectionBox{IsPresent: false, Checklist: []Item{}},
		Platform:           EmpPlatform{Devices: devices},
	}
}

func (p *EmpPayload) TemplateCode() string { return TemplateEmp }

// SetSurgePresent toggles the surge protection box. Marking it present
// seeds its 2-item checklist; marking it absent discards the items.
func (p *EmpPayload) SetSurgePresent(present bool) {
	p.SurgeProtectionBox.IsPresent = present
	if present {
		if len(p.SurgeProtectionBox.Checklist) != EmpSurgeItemCount {
			p.SurgeProtectionBox.Checklist = newChecklist(EmpSurgeItemCount)
		}
	} else {
		p.SurgeProtectionBox.Checklist = []Item{}
	}
}

// SetItemResult addresses an item by section; deviceIndex is only
// meaningful for the platform section.
func (p *EmpPayload) SetItemResult(section string, deviceIndex, itemNo int, result CheckResult, remark string) error {
	switch section {
	case EmpSectionControlBox:
		return setItem(p.ControlBox.Checklist, itemNo, result, remark)
	case EmpSectionSurgeBox:
		if !p.SurgeProtectionBox.IsPresent {
			return fmt.Errorf("surge protection box is not present: %w", ErrItemNotFound)
		}
		return setItem(p.SurgeProtectionBox.Checklist, itemNo, result, remark)
	case EmpSectionPlatform:
		if deviceIndex < 0 || deviceIndex >= len(p.Platform.Devices) {
			return fmt.Errorf("platform device %d of %d: %w", deviceIndex, len(p.Platform.Devices), ErrIndexOutOfRange)
		}
		return setItem(p.Platform.Devices[deviceIndex].Checklist, itemNo, result, remark)
	}
	return fmt.Errorf("%s: %w", section, ErrUnknownSection)
}

func (p *EmpPayload) Validate() []Violation {
	var vs []Violation
	vs = checkItems(vs, "controlBox.checklist", p.ControlBox.Checklist, EmpControlItemCount)
	if p.SurgeProtectionBox.IsPresent {
		vs = checkItems(vs, "surgeProtectionBox.checklist", p.SurgeProtectionBox.Checklist, EmpSurgeItemCount)
	} else if len(p.SurgeProtectionBox.Checklist) != 0 {
		vs = append(vs, Violation{
			Path:    "surgeProtectionBox.checklist",
			Rule:    "conditional",
			Message: "checklist must be empty when the surge protection box is absent",
		})
	}
	if n := len(p.Platform.Devices); n < 1 || n > EmpPlatformDevices {
		vs = append(vs, Violation{
			Path:    "platform.devices",
			Rule:    "range",
			Message: fmt.Sprintf("platform must have 1-%d plungers, got %d", EmpPlatformDevices, n),
		})
	}
	seen := map[int]bool{}
	for i, d := range p.Platform.Devices {
		path := fmt.Sprintf("platform.devices[%d]", i)
		if d.EmpNumber < 1 || d.EmpNumber > EmpPlatformDevices {
			vs = append(vs, Violation{
				Path:    path + ".empNumber",
				Rule:    "range",
				Message: fmt.Sprintf("empNumber must be 1-%d, got %d", EmpPlatformDevices, d.EmpNumber),
			})
		} else if seen[d.EmpNumber] {
			vs = append(vs, Violation{
				Path:    path + ".empNumber",
				Rule:    "unique",
				Message: fmt.Sprintf("empNumber %d appears more than once", d.EmpNumber),
			})
		}
		seen[d.EmpNumber] = true
		vs = checkItems(vs, path+".checklist", d.Checklist, EmpPlatformItemCount)
	}
	return vs
}

func (p *EmpPayload) Stats() Stats {
	var s Stats
	s.tally(p.ControlBox.Checklist)
	if p.SurgeProtectionBox.IsPresent {
		s.tally(p.SurgeProtectionBox.Checklist)
	}
	for _, d := range p.Platform.Devices {
		s.tally(d.Checklist)
	}
	return s
}
