package handlers

import (
	"errors"
	"testing"

	"github.com/rchotikawat/BTS-MaintenanceApp/models"
	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

func strPtr(s string) *string { return &s }

func TestEnvelopeApplyPatchesOnlyGivenFields(t *testing.T) {
	report := models.MaintenanceReport{
		WorkOrderNo: "JOB-202608-001",
		StationName: "Mo Chit",
		LeaderName:  "Somchai",
	}
	env := reportEnvelope{
		StationName: strPtr("Siam"),
		ReportDate:  strPtr("2026-08-15"),
	}
	if err := env.apply(&report); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if report.StationName != "Siam" {
		t.Errorf("StationName = %q, want Siam", report.StationName)
	}
	if report.WorkOrderNo != "JOB-202608-001" {
		t.Errorf("WorkOrderNo changed to %q", report.WorkOrderNo)
	}
	if report.LeaderName != "Somchai" {
		t.Errorf("LeaderName changed to %q", report.LeaderName)
	}
	if got := report.ReportDate.Format("2006-01-02"); got != "2026-08-15" {
		t.Errorf("ReportDate = %s", got)
	}
}

func TestEnvelopeApplyRejectsBadDate(t *testing.T) {
	var report models.MaintenanceReport
	env := reportEnvelope{ReportDate: strPtr("15/08/2026")}
	if err := env.apply(&report); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestApplyOpPointMachine(t *testing.T) {
	payload, err := checklist.Initialize("PM_Y1_POINT_MACHINE")
	if err != nil {
		t.Fatal(err)
	}
	ops := []payloadOp{
		{Op: "addDevice", DeviceCode: "PM-101"},
		{Op: "setItem", Index: 0, ItemNo: 1, Result: "PASS"},
	}
	for _, op := range ops {
		if err := applyOp(payload, op); err != nil {
			t.Fatalf("op %s: %v", op.Op, err)
		}
	}
	stats := payload.Stats()
	if stats.PassCount != 1 {
		t.Errorf("PassCount = %d, want 1", stats.PassCount)
	}
}

func TestApplyOpDuplicateDevice(t *testing.T) {
	payload, _ := checklist.Initialize("PM_Y1_POINT_MACHINE")
	if err := applyOp(payload, payloadOp{Op: "addDevice", DeviceCode: "PM-101"}); err != nil {
		t.Fatal(err)
	}
	err := applyOp(payload, payloadOp{Op: "addDevice", DeviceCode: "PM-101"})
	if !errors.Is(err, checklist.ErrDuplicateDevice) {
		t.Errorf("err = %v, want ErrDuplicateDevice", err)
	}
}

func TestApplyOpMoxaLed(t *testing.T) {
	payload, _ := checklist.Initialize("PM_M3_MOXA_TAP")
	if err := applyOp(payload, payloadOp{Op: "addDevice", DeviceCode: "TAP-01", StationCode: "N8"}); err != nil {
		t.Fatal(err)
	}
	if err := applyOp(payload, payloadOp{Op: "setLed", Index: 0, Indicator: "PWR1", Color: string(checklist.LedGreenOn)}); err != nil {
		t.Fatalf("setLed: %v", err)
	}
}

func TestApplyOpEmpSurge(t *testing.T) {
	payload, _ := checklist.Initialize("PM_M2_EMP")
	if err := applyOp(payload, payloadOp{Op: "setSurgePresent", Present: boolPtr(true)}); err != nil {
		t.Fatalf("setSurgePresent: %v", err)
	}
	if err := applyOp(payload, payloadOp{Op: "setSurgePresent"}); err == nil {
		t.Error("expected error when present is missing")
	}
}

func TestApplyOpUnknownOp(t *testing.T) {
	payload, _ := checklist.Initialize("PM_M2_EMP")
	if err := applyOp(payload, payloadOp{Op: "addDevice", DeviceCode: "X"}); err == nil {
		t.Error("expected error, EMP has no addDevice")
	}
}

func boolPtr(b bool) *bool { return &b }

func TestJobReqValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     jobReq
		wantErr bool
	}{
		{"valid", jobReq{Subject: "Broken switch", Location: "N8 platform", ReportedBy: "CCR"}, false},
		{"missing subject", jobReq{Location: "N8", ReportedBy: "CCR"}, true},
		{"missing location", jobReq{Subject: "x", ReportedBy: "CCR"}, true},
		{"missing reporter", jobReq{Subject: "x", Location: "N8"}, true},
		{"bad priority", jobReq{Subject: "x", Location: "N8", ReportedBy: "CCR", Priority: "URGENT"}, true},
		{"good priority", jobReq{Subject: "x", Location: "N8", ReportedBy: "CCR", Priority: "HIGH"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename(`JOB/2026:08 report?.xlsx`)
	want := "JOB_2026_08_report_.xlsx"
	if got != want {
		t.Errorf("sanitizeFilename = %q, want %q", got, want)
	}
}
