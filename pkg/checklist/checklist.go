// pkg/checklist/checklist.go
package checklist

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CheckResult is the outcome recorded against a single checklist item.
type CheckResult string

const (
	ResultPass       CheckResult = "PASS"
	ResultFail       CheckResult = "FAIL"
	ResultNA         CheckResult = "NA"
	ResultNotChecked CheckResult = "NOT_CHECKED"
)

func (r CheckResult) Valid() bool {
	switch r {
	case ResultPass, ResultFail, ResultNA, ResultNotChecked:
		return true
	}
	return false
}

// UnmarshalJSON rejects values outside the closed result enum instead of
// letting arbitrary strings through into stored payloads.
func (r *CheckResult) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := CheckResult(s)
	if !v.Valid() {
		return fmt.Errorf("invalid check result %q", s)
	}
	*r = v
	return nil
}

// LedColor is the observed state of one status LED on a MOXA TAP unit.
type LedColor string

const (
	LedGreenOn     LedColor = "GREEN_ON"
	LedGreenBlink  LedColor = "GREEN_BLINK"
	LedOrangeOn    LedColor = "ORANGE_ON"
	LedOrangeBlink LedColor = "ORANGE_BLINK"
	LedRedOn       LedColor = "RED_ON"
	LedOff         LedColor = "OFF"
)

func (c LedColor) Valid() bool {
	switch c {
	case LedGreenOn, LedGreenBlink, LedOrangeOn, LedOrangeBlink, LedRedOn, LedOff:
		return true
	}
	return false
}

func (c *LedColor) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v := LedColor(s)
	if !v.Valid() {
		return fmt.Errorf("invalid LED color %q", s)
	}
	*c = v
	return nil
}

// Item is one line of a checklist. ItemNo is 1-based and local to the
// section that owns the item.
type Item struct {
	ItemNo int         `json:"itemNo"`
	Result CheckResult `json:"result"`
	Remark string      `json:"remark,omitempty"`
}

var (
	ErrUnknownTemplate = errors.New("unknown job template code")
	ErrIndexOutOfRange = errors.New("device index out of range")
	ErrItemNotFound    = errors.New("checklist item not found")
	ErrDeviceLimit     = errors.New("device limit reached")
	ErrDuplicateDevice = errors.New("duplicate device code")
	ErrUnknownSection  = errors.New("unknown payload section")
	ErrUnknownField    = errors.New("unknown measurement field")
)

// Violation is one schema problem found in a payload, tagged with the
// JSON path of the offending value.
type Violation struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a payload so callers
// can report them field by field.
type ValidationError struct {
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return "validation failed: " + e.Violations[0].Path + ": " + e.Violations[0].Message
	}
	return fmt.Sprintf("validation failed with %d violations", len(e.Violations))
}

// newChecklist builds a dense 1..n item list, every result NOT_CHECKED.
func newChecklist(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ItemNo: i + 1, Result: ResultNotChecked}
	}
	return items
}

// setItem updates one entry in an item list by its number.
func setItem(items []Item, itemNo int, result CheckResult, remark string) error {
	if !result.Valid() {
		return &ValidationError{Violations: []Violation{{
			Path:    fmt.Sprintf("checklist[%d].result", itemNo-1),
			Rule:    "enum",
			Message: fmt.Sprintf("result %q is not one of PASS, FAIL, NA, NOT_CHECKED", result),
		}}}
	}
	for i := range items {
		if items[i].ItemNo == itemNo {
			items[i].Result = result
			items[i].Remark = remark
			return nil
		}
	}
	return fmt.Errorf("item %d: %w", itemNo, ErrItemNotFound)
}

// checkItems validates density (itemNo == position+1) and enum closure of
// one item list, appending violations under the given path prefix.
func checkItems(vs []Violation, path string, items []Item, want int) []Violation {
	if len(items) != want {
		vs = append(vs, Violation{
			Path:    path,
			Rule:    "length",
			Message: fmt.Sprintf("expected %d checklist items, got %d", want, len(items)),
		})
		return vs
	}
	for i, it := range items {
		if it.ItemNo != i+1 {
			vs = append(vs, Violation{
				Path:    fmt.Sprintf("%s[%d].itemNo", path, i),
				Rule:    "dense",
				Message: fmt.Sprintf("expected itemNo %d, got %d", i+1, it.ItemNo),
			})
		}
		if !it.Result.Valid() {
			vs = append(vs, Violation{
				Path:    fmt.Sprintf("%s[%d].result", path, i),
				Rule:    "enum",
				Message: fmt.Sprintf("result %q is not one of PASS, FAIL, NA, NOT_CHECKED", it.Result),
			})
		}
	}
	return vs
}
