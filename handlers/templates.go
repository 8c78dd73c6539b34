// handlers/templates.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/rchotikawat/BTS-MaintenanceApp/config"
	"github.com/rchotikawat/BTS-MaintenanceApp/models"
	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

type templateOut struct {
	checklist.Template
	IsActive bool `json:"isActive"`
}

// ListTemplates returns every registered PM form, with the activation
// flag from the database row.
func ListTemplates(w http.ResponseWriter, r *http.Request) {
	var rows []models.JobTemplate
	if err := config.DB.Find(&rows).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	active := make(map[string]bool, len(rows))
	for _, row := range rows {
		active[row.Code] = row.IsActive
	}

	out := make([]templateOut, 0, len(checklist.All()))
	for _, t := range checklist.All() {
		out = append(out, templateOut{Template: t, IsActive: active[t.Code]})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GetTemplate returns one template's metadata.
func GetTemplate(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	t, err := checklist.Lookup(code)
	if err != nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	var row models.JobTemplate
	isActive := false
	if err := config.DB.Where("code = ?", code).First(&row).Error; err == nil {
		isActive = row.IsActive
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templateOut{Template: t, IsActive: isActive})
}

// GetTemplateSchema returns an initialized empty checklist payload for
// the template, which the mobile client uses as the form skeleton.
func GetTemplateSchema(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	payload, err := checklist.Initialize(code)
	if err != nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	raw, err := checklist.Encode(payload)
	if err != nil {
		http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// SetTemplateActive toggles a template without a deploy. Admin only.
func SetTemplateActive(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var req struct {
		IsActive bool `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res := config.DB.Model(&models.JobTemplate{}).
		Where("code = ?", code).
		Update("is_active", req.IsActive)
	if res.Error != nil {
		http.Error(w, "DB error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
