// handlers/dashboard.go
package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/rchotikawat/BTS-MaintenanceApp/config"
	"github.com/rchotikawat/BTS-MaintenanceApp/models"
)

// GetReportStats returns the PM dashboard counters: reports per status,
// reports per template, and how many open reports carry failed items.
func GetReportStats(w http.ResponseWriter, r *http.Request) {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	type templateCount struct {
		TemplateCode string `json:"templateCode"`
		Count        int64  `json:"count"`
	}

	base := func() *gorm.DB {
		return config.DB.Model(&models.MaintenanceReport{}).Where("deleted_at IS NULL")
	}

	var byStatus []statusCount
	if err := base().
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var byTemplate []templateCount
	if err := base().
		Select("job_template_code AS template_code, COUNT(*) as count").
		Group("job_template_code").
		Scan(&byTemplate).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var withIssues int64
	if err := base().
		Where("has_issues = ? AND status <> ?", true, models.ReportApproved).
		Count(&withIssues).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var pendingReview int64
	if err := base().
		Where("status = ?", models.ReportSubmitted).
		Count(&pendingReview).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"byStatus":      byStatus,
		"byTemplate":    byTemplate,
		"withIssues":    withIssues,
		"pendingReview": pendingReview,
	})
}
