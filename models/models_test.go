// models/models_test.go
package models

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm/schema"
)

func TestReportStatusTransitions(t *testing.T) {
	tests := []struct {
		from   ReportStatus
		action string
		to     ReportStatus
		ok     bool
	}{
		{ReportDraft, "submit", ReportSubmitted, true},
		{ReportSubmitted, "approve", ReportApproved, true},
		{ReportSubmitted, "reject", ReportRejected, true},
		{ReportRejected, "reopen", ReportDraft, true},
		{ReportDraft, "approve", "", false},
		{ReportDraft, "reject", "", false},
		{ReportApproved, "submit", "", false},
		{ReportApproved, "reopen", "", false},
		{ReportSubmitted, "submit", "", false},
	}
	for _, tc := range tests {
		to, ok := tc.from.CanTransition(tc.action)
		if ok != tc.ok || to != tc.to {
			t.Errorf("%s + %s = (%s, %v), want (%s, %v)", tc.from, tc.action, to, ok, tc.to, tc.ok)
		}
	}
}

func TestApprovedIsTerminal(t *testing.T) {
	if got := ReportApproved.AvailableActions(); len(got) != 0 {
		t.Errorf("APPROVED still offers actions: %v", got)
	}
}

func TestJobStatusTransitions(t *testing.T) {
	tests := []struct {
		from   JobStatus
		action string
		to     JobStatus
		ok     bool
	}{
		{JobPending, "start", JobInProgress, true},
		{JobPending, "cancel", JobCancelled, true},
		{JobInProgress, "complete", JobCompleted, true},
		{JobInProgress, "cancel", JobCancelled, true},
		{JobCancelled, "reopen", JobPending, true},
		{JobPending, "complete", "", false},
		{JobCompleted, "reopen", "", false},
		{JobCompleted, "cancel", "", false},
		{JobCancelled, "start", "", false},
	}
	for _, tc := range tests {
		to, ok := tc.from.CanTransition(tc.action)
		if ok != tc.ok || to != tc.to {
			t.Errorf("%s + %s = (%s, %v), want (%s, %v)", tc.from, tc.action, to, ok, tc.to, tc.ok)
		}
	}
}

func TestFormatJobNo(t *testing.T) {
	d := time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC)
	if got := FormatJobNo(d, 1); got != "JOB-202602-001" {
		t.Errorf("FormatJobNo = %q", got)
	}
	if got := FormatJobNo(d, 123); got != "JOB-202602-123" {
		t.Errorf("FormatJobNo = %q", got)
	}
	if got := JobNoPrefix(d); got != "JOB-202602-" {
		t.Errorf("JobNoPrefix = %q", got)
	}
}

func TestReportTemplateCodeColumnName(t *testing.T) {
	// Raw SQL in the stats and list filters addresses this column by
	// name; keep the model field pinned to it.
	s, err := schema.Parse(&MaintenanceReport{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatal(err)
	}
	f := s.LookUpField("JobTemplateCode")
	if f == nil {
		t.Fatal("JobTemplateCode field not found")
	}
	if f.DBName != "job_template_code" {
		t.Errorf("column = %s, want job_template_code", f.DBName)
	}
}

func TestTransitionSentinelErrors(t *testing.T) {
	if _, err := ReportApproved.Transition("reopen"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("approved reopen err = %v, want ErrInvalidTransition", err)
	}
	to, err := ReportDraft.Transition("submit")
	if err != nil || to != ReportSubmitted {
		t.Errorf("draft submit = %s, %v", to, err)
	}

	if _, err := JobCompleted.Transition("start"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed start err = %v, want ErrInvalidTransition", err)
	}
	jto, err := JobPending.Transition("start")
	if err != nil || jto != JobInProgress {
		t.Errorf("pending start = %s, %v", jto, err)
	}
}

func TestFormatJobNoBeyondThreeDigits(t *testing.T) {
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatJobNo(at, 1000); got != "JOB-202602-1000" {
		t.Errorf("FormatJobNo(1000) = %s", got)
	}
	// the numeric suffix starts right after the prefix for any width
	prefix := JobNoPrefix(at)
	if got := FormatJobNo(at, 1000)[len(prefix):]; got != "1000" {
		t.Errorf("suffix = %s, want 1000", got)
	}
}

func TestEditableOnlyInDraft(t *testing.T) {
	for _, s := range []ReportStatus{ReportSubmitted, ReportApproved, ReportRejected} {
		m := MaintenanceReport{Status: s}
		if m.Editable() {
			t.Errorf("report in %s must not be editable", s)
		}
	}
	m := MaintenanceReport{Status: ReportDraft}
	if !m.Editable() {
		t.Error("draft report must be editable")
	}
}
