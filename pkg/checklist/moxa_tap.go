// pkg/checklist/moxa_tap.go
package checklist

import "fmt"

const (
	TemplateMoxaTap = "PM_M3_MOXA_TAP"

	MoxaItemCount = 19
	// Item 4 ("check LED status") is satisfied by the LED status block;
	// the printed form expands it into one sub-row per indicator.
	MoxaLedItemNo = 4
)

// MoxaLedIndicators lists the six named status LEDs in panel order.
var MoxaLedIndicators = []string{"PWR1", "STATUS", "HEAD", "TAIL", "LAN1", "WLAN1"}

type MoxaLedStatus struct {
	PWR1   LedColor `json:"PWR1,omitempty"`
	Status LedColor `json:"STATUS,omitempty"`
	Head   LedColor `json:"HEAD,omitempty"`
	Tail   LedColor `json:"TAIL,omitempty"`
	LAN1   LedColor `json:"LAN1,omitempty"`
	WLAN1  LedColor `json:"WLAN1,omitempty"`
}

func (s *MoxaLedStatus) Get(indicator string) LedColor {
	if s == nil {
		return LedOff
	}
	switch indicator {
	case "PWR1":
		return s.PWR1
	case "STATUS":
		return s.Status
	case "HEAD":
		return s.Head
	case "TAIL":
		return s.Tail
	case "LAN1":
		return s.LAN1
	case "WLAN1":
		return s.WLAN1
	}
	return LedOff
}

func (s *MoxaLedStatus) Set(indicator string, color LedColor) error {
	if !color.Valid() {
		return &ValidationError{Violations: []Violation{{
			Path:    "ledStatus." + indicator,
			Rule:    "enum",
			Message: fmt.Sprintf("LED color %q is not a known state", color),
		}}}
	}
	switch indicator {
	case "PWR1":
		s.PWR1 = color
	case "STATUS":
		s.Status = color
	case "HEAD":
		s.Head = color
	case "TAIL":
		s.Tail = color
	case "LAN1":
		s.LAN1 = color
	case "WLAN1":
		s.WLAN1 = color
	default:
		return fmt.Errorf("LED indicator %q: %w", indicator, ErrItemNotFound)
	}
	return nil
}

type MoxaTapDevice struct {
	TapCode     string         `json:"tapCode"`
	StationCode string         `json:"stationCode"`
	ColumnOrder int            `json:"columnOrder"`
	Checklist   []Item         `json:"checklist"`
	LedStatus   *MoxaLedStatus `json:"ledStatus,omitempty"`
}

// LedItemResult derives the printed pass state of one LED sub-row of
// item 4. A lit indicator passes; OFF stays not-checked. The stored
// checklist entry for item 4 is never mutated by this.
func (d *MoxaTapDevice) LedItemResult(indicator string) CheckResult {
	if c := d.LedStatus.Get(indicator); c != "" && c != LedOff {
		return ResultPass
	}
	return ResultNotChecked
}

// LedSummaryResult is the counted result for item 4: any lit indicator
// passes the item, a fully dark panel stays not-checked.
func (d *MoxaTapDevice) LedSummaryResult() CheckResult {
	for _, ind := range MoxaLedIndicators {
		if d.LedItemResult(ind) == ResultPass {
			return ResultPass
		}
	}
	return ResultNotChecked
}

type MoxaTapPayload struct {
	Devices []MoxaTapDevice `json:"devices"`
}

func NewMoxaTapPayload() *MoxaTapPayload {
	return &MoxaTapPayload{Devices: []MoxaTapDevice{}}
}

func (p *MoxaTapPayload) TemplateCode() string { return TemplateMoxaTap }

// AddDevice appends a unit with all 19 items NOT_CHECKED and every LED
// defaulted to OFF.
func (p *MoxaTapPayload) AddDevice(tapCode, stationCode string) error {
	for _, d := range p.Devices {
		if d.TapCode == tapCode {
			return fmt.Errorf("tapCode %q: %w", tapCode, ErrDuplicateDevice)
		}
	}
	p.Devices = append(p.Devices, MoxaTapDevice{
		TapCode:     tapCode,
		StationCode: stationCode,
		ColumnOrder: len(p.Devices) + 1,
		Checklist:   newChecklist(MoxaItemCount),
		LedStatus: &MoxaLedStatus{
			PWR1: LedOff, Status: LedOff, Head: LedOff,
			Tail: LedOff, LAN1: LedOff, WLAN1: LedOff,
		},
	})
	return nil
}

func (p *MoxaTapPayload) RemoveDevice(index int) error {
	if index < 0 || index >= len(p.Devices) {
		return fmt.Errorf("device %d of %d: %w", index, len(p.Devices), ErrIndexOutOfRange)
	}
	p.Devices = append(p.Devices[:index], p.Devices[index+1:]...)
	for i := range p.Devices {
		p.Devices[i].ColumnOrder = i + 1
	}
	return nil
}

func (p *MoxaTapPayload) SetItemResult(index, itemNo int, result CheckResult, remark string) error {
	if index < 0 || index >= len(p.Devices) {
		return fmt.Errorf("device %d of %d: %w", index, len(p.Devices), ErrIndexOutOfRange)
	}
	return setItem(p.Devices[index].Checklist, itemNo, result, remark)
}

func (p *MoxaTapPayload) SetLedStatus(index int, indicator string, color LedColor) error {
	if index < 0 || index >= len(p.Devices) {
		return fmt.Errorf("device %d of %d: %w", index, len(p.Devices), ErrIndexOutOfRange)
	}
	if p.Devices[index].LedStatus == nil {
		p.Devices[index].LedStatus = &MoxaLedStatus{}
	}
	return p.Devices[index].LedStatus.Set(indicator, color)
}

func (p *MoxaTapPayload) Validate() []Violation {
	var vs []Violation
	if len(p.Devices) < 1 {
		vs = append(vs, Violation{Path: "devices", Rule: "min", Message: "at least one MOXA TAP unit is required"})
	}
	seen := map[string]bool{}
	for i, d := range p.Devices {
		path := fmt.Sprintf("devices[%d]", i)
		if d.TapCode == "" {
			vs = append(vs, Violation{Path: path + ".tapCode", Rule: "required", Message: "tapCode is required"})
		} else if seen[d.TapCode] {
			vs = append(vs, Violation{Path: path + ".tapCode", Rule: "unique",
				Message: fmt.Sprintf("tapCode %q appears more than once", d.TapCode)})
		}
		seen[d.TapCode] = true
		if d.StationCode == "" {
			vs = append(vs, Violation{Path: path + ".stationCode", Rule: "required", Message: "stationCode is required"})
		}
		vs = checkItems(vs, path+".checklist", d.Checklist, MoxaItemCount)
		if d.LedStatus != nil {
			for _, ind := range MoxaLedIndicators {
				if c := d.LedStatus.Get(ind); c != "" && !c.Valid() {
					vs = append(vs, Violation{
						Path:    fmt.Sprintf("%s.ledStatus.%s", path, ind),
						Rule:    "enum",
						Message: fmt.Sprintf("LED color %q is not a known state", c),
					})
				}
			}
		}
	}
	return vs
}

// Stats counts the checklist entries with item 4 swapped for the
// LED-derived result. The stored item 4 is left untouched.
func (p *MoxaTapPayload) Stats() Stats {
	var s Stats
	for i := range p.Devices {
		d := &p.Devices[i]
		items := make([]Item, len(d.Checklist))
		copy(items, d.Checklist)
		if MoxaLedItemNo-1 < len(items) {
			items[MoxaLedItemNo-1].Result = d.LedSummaryResult()
		}
		s.tally(items)
	}
	return s
}
