// handlers/stations.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/rchotikawat/BTS-MaintenanceApp/config"
	"github.com/rchotikawat/BTS-MaintenanceApp/models"
	"github.com/rchotikawat/BTS-MaintenanceApp/utils"
)

// ListStations returns all active stations ordered by code.
func ListStations(w http.ResponseWriter, r *http.Request) {
	var stations []models.Station
	db := config.DB.Where("is_active = ?", true)
	if line := r.URL.Query().Get("line"); line != "" {
		db = db.Where("line = ?", line)
	}
	if err := db.Order("code asc").Find(&stations).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": len(stations),
		"data":  stations,
	})
}

type verifyLocationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VerifyLocation checks whether the given coordinate lies inside the
// station boundary polygon. Stations without a boundary fall back to
// accepting any coordinate, with "verified": false in the response.
func VerifyLocation(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	var station models.Station
	if err := config.DB.Where("code = ? AND is_active = ?", code, true).First(&station).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "station not found", http.StatusNotFound)
		} else {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	var req verifyLocationReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	geom, err := utils.ParseBoundary(station.Boundary)
	if err != nil {
		http.Error(w, "station boundary is invalid: "+err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"stationCode": station.Code,
		"stationName": station.Name,
		"verified":    false,
		"inside":      false,
	}
	if geom == nil {
		// No fence configured for this station.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
		return
	}

	inside, err := utils.PointInBoundary(utils.Coordinate{Lat: req.Lat, Lng: req.Lng}, geom)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	resp["verified"] = true
	resp["inside"] = inside
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
