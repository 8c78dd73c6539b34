// pkg/checklist/registry.go
package checklist

import "sort"

// Template binds a job template code to its display metadata and the
// printed form identifiers. Exactly one schema and one document layout
// exist per code; the layout side is registered by the document package.
type Template struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	EquipmentType string `json:"equipmentType"`
	CycleLabel    string `json:"cycleLabel"`
	IntervalDays  int    `json:"intervalDays"`
	FormNumber    string `json:"formNumber"`
	FormRevision  string `json:"formRevision"`
	EffectiveDate string `json:"effectiveDate"`
}

var templates = map[string]Template{
	TemplatePointMachine: {
		Code:          TemplatePointMachine,
		Name:          "PM (Y1) Point Machine",
		EquipmentType: "POINT_MACHINE",
		CycleLabel:    "Yearly",
		IntervalDays:  365,
		FormNumber:    "FM-MTD-M51000-Z-XXX",
		FormRevision:  "Rev.00",
		EffectiveDate: "X/X/2025",
	},
	TemplateMoxaTap: {
		Code:          TemplateMoxaTap,
		Name:          "PM (M3) MOXA TAP",
		EquipmentType: "MOXA_TAP",
		CycleLabel:    "3-Monthly",
		IntervalDays:  90,
		FormNumber:    "FM-MTD-M51000-Z-021",
		FormRevision:  "Rev.00",
		EffectiveDate: "25/09/2025",
	},
	TemplateEmp: {
		Code:          TemplateEmp,
		Name:          "PM (M2) EMP",
		EquipmentType: "EMP",
		CycleLabel:    "2-Monthly",
		IntervalDays:  60,
		FormNumber:    "FM-MTD-M51000-Z-018",
		FormRevision:  "Rev.00",
		EffectiveDate: "25/09/2025",
	},
}

// Lookup resolves a template code. Unknown codes return
// ErrUnknownTemplate so callers can degrade gracefully.
func Lookup(code string) (Template, error) {
	t, ok := templates[code]
	if !ok {
		return Template{}, ErrUnknownTemplate
	}
	return t, nil
}

// Known reports whether a template code has a registered schema.
func Known(code string) bool {
	_, ok := templates[code]
	return ok
}

// Codes returns all registered template codes in stable order.
func Codes() []string {
	out := make([]string, 0, len(templates))
	for c := range templates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// All returns every registered template in stable code order.
func All() []Template {
	out := make([]Template, 0, len(templates))
	for _, c := range Codes() {
		out = append(out, templates[c])
	}
	return out
}
