// models/maintenance_report.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportStatus is the lifecycle state of a PM inspection report.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "DRAFT"
	ReportSubmitted ReportStatus = "SUBMITTED"
	ReportApproved  ReportStatus = "APPROVED"
	ReportRejected  ReportStatus = "REJECTED"
)

// ReportAction is one allowed lifecycle action.
type ReportAction struct {
	Action string       `json:"action"`
	Label  string       `json:"label"`
	To     ReportStatus `json:"to"`
}

var reportActions = map[ReportStatus][]ReportAction{
	ReportDraft: {
		{Action: "submit", Label: "Submit for approval", To: ReportSubmitted},
	},
	ReportSubmitted: {
		{Action: "approve", Label: "Approve", To: ReportApproved},
		{Action: "reject", Label: "Reject", To: ReportRejected},
	},
	ReportRejected: {
		{Action: "reopen", Label: "Reopen as draft", To: ReportDraft},
	},
}

// CanTransition resolves an action against the current status. APPROVED
// is terminal.
func (s ReportStatus) CanTransition(action string) (ReportStatus, bool) {
	for _, a := range reportActions[s] {
		if a.Action == action {
			return a.To, true
		}
	}
	return "", false
}

// Transition resolves an action or fails with ErrInvalidTransition.
func (s ReportStatus) Transition(action string) (ReportStatus, error) {
	to, ok := s.CanTransition(action)
	if !ok {
		return "", fmt.Errorf("%w: action '%s' not allowed from status '%s'", ErrInvalidTransition, action, s)
	}
	return to, nil
}

// AvailableActions lists the actions allowed from the current status.
func (s ReportStatus) AvailableActions() []ReportAction {
	return reportActions[s]
}

// Valid reports whether the status is one of the four lifecycle states.
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportDraft, ReportSubmitted, ReportApproved, ReportRejected:
		return true
	}
	return false
}

// MaintenanceReport is the envelope of one PM inspection report. The
// per-template checklist payload lives in ChecklistData as JSONB; the
// aggregation counters are recomputed from it on every write.
type MaintenanceReport struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobTemplateCode string    `gorm:"size:50;not null;index" json:"jobTemplateCode"`

	WorkOrderNo  string `gorm:"size:50;not null;index" json:"workOrderNo"`
	WorkOrderNo2 string `gorm:"size:50" json:"workOrderNo2,omitempty"`

	ReportDate      time.Time `gorm:"type:date;not null" json:"reportDate"`
	ReportTimeStart string    `gorm:"size:10;not null" json:"reportTimeStart"`
	ReportTimeEnd   string    `gorm:"size:10" json:"reportTimeEnd,omitempty"`

	StationName      string `gorm:"size:100;not null;index" json:"stationName"`
	LocationArea     string `gorm:"size:200" json:"locationArea"`
	LeaderName       string `gorm:"size:100;not null;index" json:"leaderName"`
	ApostleName      string `gorm:"size:100" json:"apostleName"`
	CoordinatePerson string `gorm:"size:100" json:"coordinatePerson"`
	TprNo            string `gorm:"size:50" json:"tprNo,omitempty"`
	TeamNameList     string `gorm:"type:text" json:"teamNameList,omitempty"`
	WorkDescription  string `gorm:"type:text" json:"workDescription,omitempty"`

	StationCodes   pq.StringArray `gorm:"type:text[]" json:"stationCodes,omitempty"`
	EquipmentCodes pq.StringArray `gorm:"type:text[]" json:"equipmentCodes,omitempty"`
	StaffNames     pq.StringArray `gorm:"type:text[]" json:"staffNames,omitempty"`

	Status        ReportStatus   `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	ChecklistData datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"checklistData"`

	TotalCheckItems int  `gorm:"default:0" json:"totalCheckItems"`
	PassCount       int  `gorm:"default:0" json:"passCount"`
	FailCount       int  `gorm:"default:0" json:"failCount"`
	HasIssues       bool `gorm:"default:false;index" json:"hasIssues"`

	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	RejectedAt   *time.Time `json:"rejectedAt,omitempty"`
	RejectReason string     `gorm:"type:text" json:"rejectReason,omitempty"`

	CreatedBy uuid.UUID `gorm:"type:uuid;index" json:"createdBy"`
	Version   int       `gorm:"default:1" json:"version"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`

	Transitions []ReportTransition `gorm:"foreignKey:ReportID" json:"transitions,omitempty"`
}

func (MaintenanceReport) TableName() string {
	return "maintenance_reports"
}

func (m *MaintenanceReport) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

// Editable reports whether the checklist payload may still be changed.
func (m *MaintenanceReport) Editable() bool {
	return m.Status == ReportDraft
}

// ReportTransition is one audit trail entry of a lifecycle action.
type ReportTransition struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"reportId"`

	FromStatus ReportStatus `gorm:"size:20;not null" json:"fromStatus"`
	ToStatus   ReportStatus `gorm:"size:20;not null" json:"toStatus"`
	Action     string       `gorm:"size:50;not null" json:"action"`

	ActorID   uuid.UUID `gorm:"type:uuid" json:"actorId"`
	ActorName string    `gorm:"size:100" json:"actorName,omitempty"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`

	TransitionedAt time.Time `gorm:"not null;index" json:"transitionedAt"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (ReportTransition) TableName() string {
	return "report_transitions"
}

func (t *ReportTransition) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
