package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/rchotikawat/BTS-MaintenanceApp/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "10012026_create_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.JobTemplate{}, &models.Station{},
					&models.MaintenanceLog{}, &models.MaintenanceReport{}, &models.ReportTransition{})
			},
		},
		{
			ID: "10012026_report_list_indexes",
			Migrate: func(tx *gorm.DB) error {
				// Composite indexes backing the report list filters.
				if err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_reports_template_status
					ON maintenance_reports (job_template_code, status)`).Error; err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_reports_report_date
					ON maintenance_reports (report_date)`).Error
			},
		},
		{
			ID: "10012026_job_no_sequence_guard",
			Migrate: func(tx *gorm.DB) error {
				// The unique index on job_no is created by AutoMigrate;
				// this prefix index speeds up the per-month MAX() scan
				// when allocating the next running number.
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_logs_job_no_prefix
					ON maintenance_logs (job_no text_pattern_ops)`).Error
			},
		},
		{
			ID: "24012026_report_staff_arrays",
			Migrate: func(tx *gorm.DB) error {
				// GIN indexes for the text[] filter columns.
				if err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_reports_station_codes
					ON maintenance_reports USING GIN (station_codes)`).Error; err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_reports_equipment_codes
					ON maintenance_reports USING GIN (equipment_codes)`).Error
			},
		},
	})
	return m.Migrate()
}
