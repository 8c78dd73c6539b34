// models/job_template.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobTemplate is the persisted row behind one PM form template. The
// schema and document layout for a code live in the application; this
// row carries the display metadata and lets operators disable a form
// without a deploy.
type JobTemplate struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name string    `gorm:"size:100;not null" json:"name"`

	EquipmentType string `gorm:"size:50;not null" json:"equipmentType"`
	CycleLabel    string `gorm:"size:50" json:"cycleLabel"`
	IntervalDays  int    `gorm:"default:0" json:"intervalDays"`

	FormNumber    string `gorm:"size:50" json:"formNumber"`
	FormRevision  string `gorm:"size:20" json:"formRevision"`
	EffectiveDate string `gorm:"size:20" json:"effectiveDate"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (JobTemplate) TableName() string {
	return "job_templates"
}

func (t *JobTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
