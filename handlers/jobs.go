// handlers/jobs.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/rchotikawat/BTS-MaintenanceApp/config"
	"github.com/rchotikawat/BTS-MaintenanceApp/middleware"
	"github.com/rchotikawat/BTS-MaintenanceApp/models"
)

const jobNoMaxRetries = 5

// nextJobNo reads the highest running number for the month and returns
// the next one. Raced inserts are caught by the unique index on job_no
// and retried by the caller.
func nextJobNo(db *gorm.DB, now time.Time) (string, error) {
	prefix := models.JobNoPrefix(now)
	// Compare the numeric suffix, not the string: JOB-202602-1000
	// sorts before JOB-202602-999.
	var maxSeq int
	err := db.Model(&models.MaintenanceLog{}).
		Where("job_no LIKE ?", prefix+"%").
		Select("COALESCE(MAX(CAST(SUBSTRING(job_no FROM ?) AS integer)), 0)", len(prefix)+1).
		Scan(&maxSeq).Error
	if err != nil {
		return "", err
	}
	return models.FormatJobNo(now, maxSeq+1), nil
}

type jobReq struct {
	Location    string `json:"location"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	ReportedBy  string `json:"reportedBy"`
	Priority    string `json:"priority"`
	PhotoUrl    string `json:"photoUrl"`
}

func (req *jobReq) validate() error {
	if req.Subject == "" {
		return errors.New("subject is required")
	}
	if req.Location == "" {
		return errors.New("location is required")
	}
	if req.ReportedBy == "" {
		return errors.New("reportedBy is required")
	}
	if req.Priority != "" && !models.JobPriority(req.Priority).Valid() {
		return fmt.Errorf("unknown priority %q", req.Priority)
	}
	return nil
}

// CreateJob opens a new CM job order with the next running job number
// for the current month.
func CreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Priority == "" {
		req.Priority = string(models.PriorityMedium)
	}

	job := models.MaintenanceLog{
		Location:    req.Location,
		Subject:     req.Subject,
		Description: req.Description,
		ReportedBy:  req.ReportedBy,
		Priority:    models.JobPriority(req.Priority),
		PhotoUrl:    req.PhotoUrl,
		Status:      models.JobPending,
	}
	if uid, err := uuid.Parse(middleware.GetUserID(r)); err == nil {
		job.CreatedBy = uid
	}

	now := time.Now()
	var lastErr error
	for attempt := 0; attempt < jobNoMaxRetries; attempt++ {
		jobNo, err := nextJobNo(config.DB, now)
		if err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		job.ID = uuid.Nil
		job.JobNo = jobNo
		lastErr = config.DB.Create(&job).Error
		if lastErr == nil {
			log.Printf("✅ Created job order %s", job.JobNo)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(job)
			return
		}
		if !strings.Contains(lastErr.Error(), "duplicate key") {
			http.Error(w, "DB error: "+lastErr.Error(), http.StatusInternalServerError)
			return
		}
		// Another writer took the number; re-read and retry.
	}
	http.Error(w, "could not allocate job number: "+lastErr.Error(), http.StatusConflict)
}

// ListJobs applies the job order filters.
func ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, limit := 1, 20
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	db := config.DB.Model(&models.MaintenanceLog{}).Where("deleted_at IS NULL")
	if s := q.Get("status"); s != "" {
		if !models.JobStatus(s).Valid() {
			http.Error(w, "unknown status "+s, http.StatusBadRequest)
			return
		}
		db = db.Where("status = ?", s)
	}
	if p := q.Get("priority"); p != "" {
		db = db.Where("priority = ?", p)
	}
	if sc := q.Get("stationCode"); sc != "" {
		// Job orders carry a free text location; the station code is
		// matched as a token inside it.
		db = db.Where("location ILIKE ?", "%"+sc+"%")
	}
	if m := q.Get("month"); m != "" {
		// month is YYYY-MM; job numbers embed YYYYMM
		db = db.Where("job_no LIKE ?", "JOB-"+strings.ReplaceAll(m, "-", "")+"-%")
	}
	if s := q.Get("search"); s != "" {
		like := "%" + s + "%"
		db = db.Where("job_no ILIKE ? OR subject ILIKE ? OR location ILIKE ?", like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		http.Error(w, "DB count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var jobs []models.MaintenanceLog
	if err := db.Order("job_no DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&jobs).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  jobs,
	})
}

func loadJob(w http.ResponseWriter, r *http.Request) (*models.MaintenanceLog, bool) {
	id := mux.Vars(r)["id"]
	var job models.MaintenanceLog
	if err := config.DB.Where("id = ? AND deleted_at IS NULL", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "job order not found", http.StatusNotFound)
		} else {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return &job, true
}

// GetJob returns one job order with its available actions.
func GetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := loadJob(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job":     job,
		"actions": job.Status.AvailableActions(),
	})
}

// UpdateJob edits the describing fields. Closed job orders stay as
// they were completed.
func UpdateJob(w http.ResponseWriter, r *http.Request) {
	job, ok := loadJob(w, r)
	if !ok {
		return
	}
	if job.Status == models.JobCompleted {
		http.Error(w, "completed job orders cannot be edited", http.StatusConflict)
		return
	}

	var req jobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job.Location = req.Location
	job.Subject = req.Subject
	job.Description = req.Description
	job.ReportedBy = req.ReportedBy
	if req.Priority != "" {
		job.Priority = models.JobPriority(req.Priority)
	}
	job.PhotoUrl = req.PhotoUrl

	if err := config.DB.Save(job).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job)
}

type jobStatusReq struct {
	Action string `json:"action"`
}

// TransitionJob performs one job order action. Completing stamps
// CompletedAt; reopening clears it.
func TransitionJob(w http.ResponseWriter, r *http.Request) {
	job, ok := loadJob(w, r)
	if !ok {
		return
	}

	var req jobStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	to, err := job.Status.Transition(req.Action)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	from := job.Status
	job.Status = to
	switch req.Action {
	case "complete":
		now := time.Now()
		job.CompletedAt = &now
	case "reopen":
		job.CompletedAt = nil
	}

	if err := config.DB.Save(job).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Job %s: %s → %s (%s)", job.JobNo, from, to, req.Action)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"job":     job,
		"actions": job.Status.AvailableActions(),
	})
}

// DeleteJob soft deletes a pending job order.
func DeleteJob(w http.ResponseWriter, r *http.Request) {
	job, ok := loadJob(w, r)
	if !ok {
		return
	}
	if job.Status != models.JobPending && job.Status != models.JobCancelled {
		http.Error(w, "only pending or cancelled job orders can be deleted", http.StatusConflict)
		return
	}
	now := time.Now()
	if err := config.DB.Model(job).Update("deleted_at", &now).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetJobStats returns per-status and per-priority counts for the
// dashboard.
func GetJobStats(w http.ResponseWriter, r *http.Request) {
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	type priorityCount struct {
		Priority string `json:"priority"`
		Count    int64  `json:"count"`
	}

	var byStatus []statusCount
	if err := config.DB.Model(&models.MaintenanceLog{}).
		Where("deleted_at IS NULL").
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var byPriority []priorityCount
	if err := config.DB.Model(&models.MaintenanceLog{}).
		Where("deleted_at IS NULL AND status NOT IN ?", []models.JobStatus{models.JobCompleted, models.JobCancelled}).
		Select("priority, COUNT(*) as count").
		Group("priority").
		Scan(&byPriority).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"byStatus":       byStatus,
		"openByPriority": byPriority,
	})
}
