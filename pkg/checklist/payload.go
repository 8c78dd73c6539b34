// pkg/checklist/payload.go
package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the tagged union over the three equipment-specific
// checklist shapes. The concrete type is selected by template code.
type Payload interface {
	TemplateCode() string
	Validate() []Violation
	Stats() Stats
}

// Initialize builds the empty-but-structured payload for a template
// code. The result is deterministic for a given code.
func Initialize(code string) (Payload, error) {
	switch code {
	case TemplatePointMachine:
		return NewPointMachinePayload(), nil
	case TemplateMoxaTap:
		return NewMoxaTapPayload(), nil
	case TemplateEmp:
		return NewEmpPayload(), nil
	}
	return nil, fmt.Errorf("%q: %w", code, ErrUnknownTemplate)
}

// Decode parses raw checklist data into the typed payload for the given
// template code. Unknown template codes, unknown JSON keys and enum
// values outside the closed sets all fail loudly rather than producing
// a half-decoded payload.
func Decode(code string, raw []byte) (Payload, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Initialize(code)
	}
	var target Payload
	switch code {
	case TemplatePointMachine:
		target = &PointMachinePayload{}
	case TemplateMoxaTap:
		target = &MoxaTapPayload{}
	case TemplateEmp:
		target = &EmpPayload{}
	default:
		return nil, fmt.Errorf("%q: %w", code, ErrUnknownTemplate)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", code, err)
	}
	return target, nil
}

// Encode serializes a payload for storage in the envelope's JSONB
// column.
func Encode(p Payload) ([]byte, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", p.TemplateCode(), err)
	}
	return b, nil
}
