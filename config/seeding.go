package config

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rchotikawat/BTS-MaintenanceApp/models"
	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

// RunAllSeeding runs all seeding operations in the correct order
func RunAllSeeding() error {
	log.Println("=== Starting Database Seeding ===")

	log.Println("\n[1/5] Seeding Form Templates...")
	if err := SeedJobTemplates(); err != nil {
		return err
	}

	log.Println("\n[2/5] Seeding Stations...")
	if err := SeedStations(); err != nil {
		return err
	}

	log.Println("\n[3/5] Seeding Default Users...")
	if err := SeedUsers(); err != nil {
		return err
	}

	log.Println("\n[4/5] Seeding Sample Job Orders...")
	if err := SeedSampleJobs(); err != nil {
		return err
	}

	log.Println("\n[5/5] Seeding Sample Reports...")
	if err := SeedSampleReports(); err != nil {
		return err
	}

	log.Println("\n=== Database Seeding Complete ===")
	return nil
}

// SeedJobTemplates mirrors the registered checklist templates into the
// job_templates table so operators can toggle them without a deploy.
func SeedJobTemplates() error {
	for _, t := range checklist.All() {
		var existing models.JobTemplate
		err := DB.Where("code = ?", t.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row := models.JobTemplate{
			Code:          t.Code,
			Name:          t.Name,
			EquipmentType: t.EquipmentType,
			CycleLabel:    t.CycleLabel,
			IntervalDays:  t.IntervalDays,
			FormNumber:    t.FormNumber,
			FormRevision:  t.FormRevision,
			EffectiveDate: t.EffectiveDate,
			IsActive:      true,
		}
		if err := DB.Create(&row).Error; err != nil {
			return err
		}
		log.Printf("✅ Created form template %s", t.Code)
	}
	return nil
}

// SeedStations creates a handful of BTS Sukhumvit line stations with
// rough boundary polygons for the location check.
func SeedStations() error {
	stations := []models.Station{
		{Code: "N8", Name: "Mo Chit", Line: "Sukhumvit", Latitude: 13.802559, Longitude: 100.553785,
			Boundary: []byte(`{"type":"Polygon","coordinates":[[[100.5528,13.8018],[100.5548,13.8018],[100.5548,13.8034],[100.5528,13.8034],[100.5528,13.8018]]]}`)},
		{Code: "N7", Name: "Saphan Khwai", Line: "Sukhumvit", Latitude: 13.793834, Longitude: 100.549693,
			Boundary: []byte(`{"type":"Polygon","coordinates":[[[100.5487,13.7930],[100.5507,13.7930],[100.5507,13.7946],[100.5487,13.7946],[100.5487,13.7930]]]}`)},
		{Code: "CEN", Name: "Siam", Line: "Sukhumvit", Latitude: 13.745578, Longitude: 100.534263,
			Boundary: []byte(`{"type":"Polygon","coordinates":[[[100.5333,13.7448],[100.5353,13.7448],[100.5353,13.7464],[100.5333,13.7464],[100.5333,13.7448]]]}`)},
		{Code: "E9", Name: "On Nut", Line: "Sukhumvit", Latitude: 13.705550, Longitude: 100.601111,
			Boundary: []byte(`{"type":"Polygon","coordinates":[[[100.6001,13.7047],[100.6021,13.7047],[100.6021,13.7063],[100.6001,13.7063],[100.6001,13.7047]]]}`)},
	}
	for _, s := range stations {
		var existing models.Station
		err := DB.Where("code = ?", s.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		s.IsActive = true
		if err := DB.Create(&s).Error; err != nil {
			return err
		}
		log.Printf("✅ Created station %s (%s)", s.Code, s.Name)
	}
	return nil
}

// SeedUsers creates one user per role. The default password should be
// changed on first login.
func SeedUsers() error {
	defaultPassword := "Welcome@123"
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	usersToSeed := []models.User{
		{Name: "System Admin", Email: "admin@bts-maintenance.local", Phone: "0800000001", Role: models.RoleAdmin},
		{Name: "Shift Supervisor", Email: "supervisor@bts-maintenance.local", Phone: "0800000002", Role: models.RoleSupervisor},
		{Name: "Wayside Technician", Email: "technician@bts-maintenance.local", Phone: "0800000003", Role: models.RoleTechnician},
	}
	for _, u := range usersToSeed {
		var existing models.User
		err := DB.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		u.PasswordHash = string(passwordHash)
		u.IsActive = true
		if err := DB.Create(&u).Error; err != nil {
			return err
		}
		log.Printf("✅ Created user %s (%s)", u.Email, u.Role)
	}
	return nil
}

// SeedSampleJobs creates three example CM job orders for the current
// month, matching the job number format the handlers allocate.
func SeedSampleJobs() error {
	var count int64
	if err := DB.Model(&models.MaintenanceLog{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var technician models.User
	if err := DB.Where("role = ?", models.RoleTechnician).First(&technician).Error; err != nil {
		return err
	}

	now := time.Now()
	jobs := []models.MaintenanceLog{
		{
			JobNo: models.FormatJobNo(now, 1), Location: "N8 Mo Chit, Trackside North",
			Subject: "Point machine V101 slow to lock", Description: "Reverse movement takes over 8 seconds.",
			ReportedBy: "CCR", Priority: models.PriorityHigh, Status: models.JobPending,
		},
		{
			JobNo: models.FormatJobNo(now, 2), Location: "CEN Siam, Platform 3",
			Subject: "EMP cover cracked", Description: "Plunger cover broken at platform 3 north end.",
			ReportedBy: "Station staff", Priority: models.PriorityMedium, Status: models.JobPending,
		},
		{
			JobNo: models.FormatJobNo(now, 3), Location: "E9 On Nut, Equipment Room",
			Subject: "MOXA TAP LAN1 LED dark", Description: "No link on LAN1 after last night's storm.",
			ReportedBy: "Signalling engineer", Priority: models.PriorityCritical, Status: models.JobPending,
		},
	}
	for _, j := range jobs {
		j.CreatedBy = technician.ID
		if err := DB.Create(&j).Error; err != nil {
			return err
		}
		log.Printf("✅ Created job order %s", j.JobNo)
	}
	return nil
}

// SeedSampleReports creates one empty draft report per template so the
// mobile client has something to open on a fresh database.
func SeedSampleReports() error {
	var count int64
	if err := DB.Model(&models.MaintenanceReport{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var technician models.User
	if err := DB.Where("role = ?", models.RoleTechnician).First(&technician).Error; err != nil {
		return err
	}

	now := time.Now()
	for i, t := range checklist.All() {
		payload, err := checklist.Initialize(t.Code)
		if err != nil {
			return err
		}
		raw, err := checklist.Encode(payload)
		if err != nil {
			return err
		}
		stats := payload.Stats()
		report := models.MaintenanceReport{
			JobTemplateCode: t.Code,
			WorkOrderNo:     models.FormatJobNo(now, 900+i),
			ReportDate:      now,
			ReportTimeStart: "01:30",
			StationName:     "Mo Chit",
			LocationArea:    "Trackside North",
			LeaderName:      technician.Name,
			CoordinatePerson: "CCR",
			Status:          models.ReportDraft,
			ChecklistData:   raw,
			TotalCheckItems: stats.TotalCheckItems,
			PassCount:       stats.PassCount,
			FailCount:       stats.FailCount,
			HasIssues:       stats.HasIssues,
			StationCodes:    []string{"N8"},
			CreatedBy:       technician.ID,
		}
		if err := DB.Create(&report).Error; err != nil {
			return err
		}
		log.Printf("✅ Created draft report for %s", t.Code)
	}
	return nil
}
