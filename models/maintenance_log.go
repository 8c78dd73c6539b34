// models/maintenance_log.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus is the lifecycle state of a CM job order.
type JobStatus string

const (
	JobPending    JobStatus = "PENDING"
	JobInProgress JobStatus = "IN_PROGRESS"
	JobCompleted  JobStatus = "COMPLETED"
	JobCancelled  JobStatus = "CANCELLED"
)

// JobPriority ranks a CM job order.
type JobPriority string

const (
	PriorityLow      JobPriority = "LOW"
	PriorityMedium   JobPriority = "MEDIUM"
	PriorityHigh     JobPriority = "HIGH"
	PriorityCritical JobPriority = "CRITICAL"
)

func (p JobPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// JobAction is one allowed job order action.
type JobAction struct {
	Action string    `json:"action"`
	Label  string    `json:"label"`
	To     JobStatus `json:"to"`
}

var jobActions = map[JobStatus][]JobAction{
	JobPending: {
		{Action: "start", Label: "Start work", To: JobInProgress},
		{Action: "cancel", Label: "Cancel", To: JobCancelled},
	},
	JobInProgress: {
		{Action: "complete", Label: "Complete", To: JobCompleted},
		{Action: "cancel", Label: "Cancel", To: JobCancelled},
	},
	JobCancelled: {
		{Action: "reopen", Label: "Reopen", To: JobPending},
	},
}

// CanTransition resolves an action against the current status.
// COMPLETED is terminal; CANCELLED can only be reopened.
func (s JobStatus) CanTransition(action string) (JobStatus, bool) {
	for _, a := range jobActions[s] {
		if a.Action == action {
			return a.To, true
		}
	}
	return "", false
}

// Transition resolves an action or fails with ErrInvalidTransition.
func (s JobStatus) Transition(action string) (JobStatus, error) {
	to, ok := s.CanTransition(action)
	if !ok {
		return "", fmt.Errorf("%w: action '%s' not allowed from status '%s'", ErrInvalidTransition, action, s)
	}
	return to, nil
}

// AvailableActions lists the actions allowed from the current status.
func (s JobStatus) AvailableActions() []JobAction {
	return jobActions[s]
}

func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobInProgress, JobCompleted, JobCancelled:
		return true
	}
	return false
}

// FormatJobNo builds the running job order number for one month, e.g.
// JOB-202602-001.
func FormatJobNo(t time.Time, seq int) string {
	return fmt.Sprintf("JOB-%s-%03d", t.Format("200601"), seq)
}

// JobNoPrefix is the LIKE prefix for all job numbers of one month.
func JobNoPrefix(t time.Time) string {
	return fmt.Sprintf("JOB-%s-", t.Format("200601"))
}

// MaintenanceLog is one corrective maintenance job order.
type MaintenanceLog struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobNo string    `gorm:"size:20;uniqueIndex;not null" json:"jobNo"`

	Location    string `gorm:"size:200;not null" json:"location"`
	Subject     string `gorm:"size:200;not null" json:"subject"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	ReportedBy  string `gorm:"size:100;not null" json:"reportedBy"`

	Priority JobPriority `gorm:"size:20;not null;default:'MEDIUM'" json:"priority"`
	PhotoUrl string      `gorm:"size:500" json:"photoUrl,omitempty"`

	Status      JobStatus  `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CreatedBy uuid.UUID `gorm:"type:uuid;index" json:"createdBy"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

func (MaintenanceLog) TableName() string {
	return "maintenance_logs"
}

func (m *MaintenanceLog) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
