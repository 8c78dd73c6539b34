// models/station.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Station is one BTS station, with an optional GeoJSON polygon used to
// verify that maintenance work was reported from inside the station
// area.
type Station struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code string    `gorm:"size:10;uniqueIndex;not null" json:"code"`
	Name string    `gorm:"size:100;not null" json:"name"`
	Line string    `gorm:"size:50" json:"line,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Boundary holds a GeoJSON polygon of the station area.
	Boundary datatypes.JSON `gorm:"type:jsonb" json:"boundary,omitempty"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Station) TableName() string {
	return "stations"
}

func (s *Station) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
