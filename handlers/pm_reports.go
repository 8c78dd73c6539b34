// handlers/pm_reports.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/rchotikawat/BTS-MaintenanceApp/config"
	"github.com/rchotikawat/BTS-MaintenanceApp/middleware"
	"github.com/rchotikawat/BTS-MaintenanceApp/models"
	"github.com/rchotikawat/BTS-MaintenanceApp/pkg/checklist"
)

// reportEnvelope is the writable envelope subset. Pointers so PUT can
// patch single fields.
type reportEnvelope struct {
	WorkOrderNo      *string   `json:"workOrderNo,omitempty"`
	WorkOrderNo2     *string   `json:"workOrderNo2,omitempty"`
	ReportDate       *string   `json:"reportDate,omitempty"`
	ReportTimeStart  *string   `json:"reportTimeStart,omitempty"`
	ReportTimeEnd    *string   `json:"reportTimeEnd,omitempty"`
	StationName      *string   `json:"stationName,omitempty"`
	LocationArea     *string   `json:"locationArea,omitempty"`
	LeaderName       *string   `json:"leaderName,omitempty"`
	ApostleName      *string   `json:"apostleName,omitempty"`
	CoordinatePerson *string   `json:"coordinatePerson,omitempty"`
	TprNo            *string   `json:"tprNo,omitempty"`
	TeamNameList     *string   `json:"teamNameList,omitempty"`
	WorkDescription  *string   `json:"workDescription,omitempty"`
	StationCodes     *[]string `json:"stationCodes,omitempty"`
	EquipmentCodes   *[]string `json:"equipmentCodes,omitempty"`
	StaffNames       *[]string `json:"staffNames,omitempty"`
}

func (e *reportEnvelope) apply(m *models.MaintenanceReport) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&m.WorkOrderNo, e.WorkOrderNo)
	set(&m.WorkOrderNo2, e.WorkOrderNo2)
	set(&m.ReportTimeStart, e.ReportTimeStart)
	set(&m.ReportTimeEnd, e.ReportTimeEnd)
	set(&m.StationName, e.StationName)
	set(&m.LocationArea, e.LocationArea)
	set(&m.LeaderName, e.LeaderName)
	set(&m.ApostleName, e.ApostleName)
	set(&m.CoordinatePerson, e.CoordinatePerson)
	set(&m.TprNo, e.TprNo)
	set(&m.TeamNameList, e.TeamNameList)
	set(&m.WorkDescription, e.WorkDescription)
	if e.ReportDate != nil {
		d, err := time.Parse("2006-01-02", *e.ReportDate)
		if err != nil {
			return errors.New("reportDate must be YYYY-MM-DD")
		}
		m.ReportDate = d
	}
	if e.StationCodes != nil {
		m.StationCodes = *e.StationCodes
	}
	if e.EquipmentCodes != nil {
		m.EquipmentCodes = *e.EquipmentCodes
	}
	if e.StaffNames != nil {
		m.StaffNames = *e.StaffNames
	}
	return nil
}

// payloadOp is one incremental checklist edit applied server side, so
// the schema rules hold no matter what the client sends.
type payloadOp struct {
	Op          string   `json:"op"`
	DeviceCode  string   `json:"deviceCode,omitempty"`
	StationCode string   `json:"stationCode,omitempty"`
	Index       int      `json:"index"`
	Section     string   `json:"section,omitempty"`
	ItemNo      int      `json:"itemNo,omitempty"`
	Result      string   `json:"result,omitempty"`
	Remark      string   `json:"remark,omitempty"`
	Indicator   string   `json:"indicator,omitempty"`
	Color       string   `json:"color,omitempty"`
	Block       string   `json:"block,omitempty"`
	Field       string   `json:"field,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	ContactNo   int      `json:"contactNo,omitempty"`
	Before      *float64 `json:"before,omitempty"`
	After       *float64 `json:"after,omitempty"`
	Present     *bool    `json:"present,omitempty"`
}

func applyOp(payload checklist.Payload, op payloadOp) error {
	switch p := payload.(type) {
	case *checklist.PointMachinePayload:
		switch op.Op {
		case "addDevice":
			return p.AddDevice(op.DeviceCode)
		case "removeDevice":
			return p.RemoveDevice(op.Index)
		case "setItem":
			return p.SetItemResult(op.Index, op.ItemNo, checklist.CheckResult(op.Result), op.Remark)
		case "setMeasurement":
			return p.SetMeasurement(op.Index, op.Block, op.Field, op.Value)
		case "setSpringForce":
			return p.SetSpringForce(op.Index, op.ContactNo, op.Before, op.After)
		}
	case *checklist.MoxaTapPayload:
		switch op.Op {
		case "addDevice":
			return p.AddDevice(op.DeviceCode, op.StationCode)
		case "removeDevice":
			return p.RemoveDevice(op.Index)
		case "setItem":
			return p.SetItemResult(op.Index, op.ItemNo, checklist.CheckResult(op.Result), op.Remark)
		case "setLed":
			return p.SetLedStatus(op.Index, op.Indicator, checklist.LedColor(op.Color))
		}
	case *checklist.EmpPayload:
		switch op.Op {
		case "setItem":
			return p.SetItemResult(op.Section, op.Index, op.ItemNo, checklist.CheckResult(op.Result), op.Remark)
		case "setSurgePresent":
			if op.Present == nil {
				return errors.New("setSurgePresent requires present")
			}
			p.SetSurgePresent(*op.Present)
			return nil
		}
	}
	return errors.New("unknown op " + op.Op + " for this template")
}

// writeViolations emits the 422 validation body.
func writeViolations(w http.ResponseWriter, vs []checklist.Violation) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":      "validation failed",
		"violations": vs,
	})
}

func writePayloadErr(w http.ResponseWriter, err error) {
	var ve *checklist.ValidationError
	switch {
	case errors.As(err, &ve):
		writeViolations(w, ve.Violations)
	case errors.Is(err, checklist.ErrUnknownTemplate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, checklist.ErrIndexOutOfRange),
		errors.Is(err, checklist.ErrItemNotFound),
		errors.Is(err, checklist.ErrUnknownSection),
		errors.Is(err, checklist.ErrUnknownField),
		errors.Is(err, checklist.ErrDeviceLimit):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, checklist.ErrDuplicateDevice):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func loadReport(w http.ResponseWriter, r *http.Request) (*models.MaintenanceReport, bool) {
	id := mux.Vars(r)["id"]
	var report models.MaintenanceReport
	if err := config.DB.Where("id = ? AND deleted_at IS NULL", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
		} else {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return &report, true
}

type createReportReq struct {
	JobTemplateCode string          `json:"jobTemplateCode"`
	Envelope        reportEnvelope  `json:"envelope"`
	ChecklistData   json.RawMessage `json:"checklistData,omitempty"`
}

// CreateReport opens a new draft. The checklist payload is optional;
// when absent the template's empty skeleton is stored.
func CreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var tmpl models.JobTemplate
	if err := config.DB.Where("code = ?", req.JobTemplateCode).First(&tmpl).Error; err != nil {
		http.Error(w, "unknown template "+req.JobTemplateCode, http.StatusBadRequest)
		return
	}
	if !tmpl.IsActive {
		http.Error(w, "template "+req.JobTemplateCode+" is disabled", http.StatusForbidden)
		return
	}

	payload, err := checklist.Decode(req.JobTemplateCode, req.ChecklistData)
	if err != nil {
		writePayloadErr(w, err)
		return
	}
	raw, err := checklist.Encode(payload)
	if err != nil {
		http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	stats := payload.Stats()

	report := models.MaintenanceReport{
		JobTemplateCode: req.JobTemplateCode,
		ReportDate:      time.Now(),
		Status:          models.ReportDraft,
		ChecklistData:   raw,
		TotalCheckItems: stats.TotalCheckItems,
		PassCount:       stats.PassCount,
		FailCount:       stats.FailCount,
		HasIssues:       stats.HasIssues,
		Version:         1,
	}
	if err := req.Envelope.apply(&report); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if uid, err := uuid.Parse(middleware.GetUserID(r)); err == nil {
		report.CreatedBy = uid
	}

	if err := config.DB.Create(&report).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("✅ Created %s report %s (%s)", report.JobTemplateCode, report.ID, report.WorkOrderNo)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(report)
}

// ListReports applies the list filters and returns a page of reports
// without their checklist payloads.
func ListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, limit := 1, 20
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(q.Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	db := config.DB.Model(&models.MaintenanceReport{}).Where("deleted_at IS NULL")
	if s := q.Get("status"); s != "" {
		if !models.ReportStatus(s).Valid() {
			http.Error(w, "unknown status "+s, http.StatusBadRequest)
			return
		}
		db = db.Where("status = ?", s)
	}
	if c := q.Get("templateCode"); c != "" {
		db = db.Where("job_template_code = ?", c)
	}
	if s := q.Get("search"); s != "" {
		like := "%" + s + "%"
		db = db.Where("work_order_no ILIKE ? OR station_name ILIKE ? OR leader_name ILIKE ?", like, like, like)
	}
	if d := q.Get("dateFrom"); d != "" {
		db = db.Where("report_date >= ?", d)
	}
	if d := q.Get("dateTo"); d != "" {
		db = db.Where("report_date <= ?", d)
	}
	if h := q.Get("hasIssues"); h != "" {
		db = db.Where("has_issues = ?", h == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		http.Error(w, "DB count error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var reports []models.MaintenanceReport
	if err := db.Omit("checklist_data").
		Order("report_date DESC, created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&reports).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total": total,
		"page":  page,
		"limit": limit,
		"data":  reports,
	})
}

// GetReport returns the full report including the checklist payload and
// the actions allowed from its current status.
func GetReport(w http.ResponseWriter, r *http.Request) {
	report, ok := loadReport(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"report":  report,
		"actions": report.Status.AvailableActions(),
	})
}

type updateReportReq struct {
	Version       int             `json:"version"`
	Envelope      reportEnvelope  `json:"envelope"`
	ChecklistData json.RawMessage `json:"checklistData,omitempty"`
	Ops           []payloadOp     `json:"ops,omitempty"`
}

// UpdateReport patches a draft: envelope fields, a replacement payload,
// or incremental payload ops. Drafts only; the version must match.
func UpdateReport(w http.ResponseWriter, r *http.Request) {
	report, ok := loadReport(w, r)
	if !ok {
		return
	}
	if !report.Editable() {
		http.Error(w, "report is not in DRAFT status", http.StatusConflict)
		return
	}

	var req updateReportReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Version != report.Version {
		http.Error(w, models.ErrStaleVersion.Error()+": report has been modified", http.StatusConflict)
		return
	}
	if err := req.Envelope.apply(report); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw := []byte(report.ChecklistData)
	if len(req.ChecklistData) > 0 {
		raw = req.ChecklistData
	}
	payload, err := checklist.Decode(report.JobTemplateCode, raw)
	if err != nil {
		writePayloadErr(w, err)
		return
	}
	for _, op := range req.Ops {
		if err := applyOp(payload, op); err != nil {
			writePayloadErr(w, err)
			return
		}
	}

	encoded, err := checklist.Encode(payload)
	if err != nil {
		http.Error(w, "encode error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	stats := payload.Stats()
	report.ChecklistData = encoded
	report.TotalCheckItems = stats.TotalCheckItems
	report.PassCount = stats.PassCount
	report.FailCount = stats.FailCount
	report.HasIssues = stats.HasIssues
	report.Version++

	// Select("*") so counters dropping back to zero still persist.
	res := config.DB.Model(&models.MaintenanceReport{}).
		Where("id = ? AND version = ?", report.ID, req.Version).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(report)
	if res.Error != nil {
		http.Error(w, "DB error: "+res.Error.Error(), http.StatusInternalServerError)
		return
	}
	if res.RowsAffected == 0 {
		http.Error(w, models.ErrStaleVersion.Error()+": report has been modified", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// DeleteReport soft deletes a draft.
func DeleteReport(w http.ResponseWriter, r *http.Request) {
	report, ok := loadReport(w, r)
	if !ok {
		return
	}
	if !report.Editable() {
		http.Error(w, "only DRAFT reports can be deleted", http.StatusConflict)
		return
	}
	now := time.Now()
	if err := config.DB.Model(report).Update("deleted_at", &now).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type transitionReq struct {
	Version int    `json:"version"`
	Comment string `json:"comment,omitempty"`
}

// TransitionReport performs one lifecycle action inside a transaction
// and records it in the audit trail.
func TransitionReport(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, ok := loadReport(w, r)
		if !ok {
			return
		}

		var req transitionReq
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&req)
		}
		if req.Version != 0 && req.Version != report.Version {
			http.Error(w, models.ErrStaleVersion.Error()+": report has been modified", http.StatusConflict)
			return
		}

		to, err := report.Status.Transition(action)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		// Approvals are a supervisor call.
		if action == "approve" || action == "reject" {
			user := middleware.GetUser(r)
			if !user.CanApprove() {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}
		if action == "reject" && req.Comment == "" {
			http.Error(w, "reject requires a comment", http.StatusBadRequest)
			return
		}

		if action == "submit" {
			payload, err := checklist.Decode(report.JobTemplateCode, report.ChecklistData)
			if err != nil {
				writePayloadErr(w, err)
				return
			}
			if vs := payload.Validate(); len(vs) > 0 {
				if config.StrictSubmit() {
					writeViolations(w, vs)
					return
				}
				log.Printf("⚠️ Report %s submitted with %d violations (strict submit disabled)", report.ID, len(vs))
			}
			stats := payload.Stats()
			report.TotalCheckItems = stats.TotalCheckItems
			report.PassCount = stats.PassCount
			report.FailCount = stats.FailCount
			report.HasIssues = stats.HasIssues
		}

		now := time.Now()
		from := report.Status
		report.Status = to
		switch action {
		case "submit":
			report.SubmittedAt = &now
		case "approve":
			report.ApprovedAt = &now
		case "reject":
			report.RejectedAt = &now
			report.RejectReason = req.Comment
		case "reopen":
			report.SubmittedAt = nil
			report.RejectedAt = nil
			report.RejectReason = ""
		}
		report.Version++

		tx := config.DB.Begin()
		defer func() {
			if rec := recover(); rec != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(report).Error; err != nil {
			tx.Rollback()
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		claims := middleware.GetClaims(r)
		transition := models.ReportTransition{
			ReportID:       report.ID,
			FromStatus:     from,
			ToStatus:       to,
			Action:         action,
			Comment:        req.Comment,
			TransitionedAt: now,
		}
		if claims != nil {
			if uid, err := uuid.Parse(claims.UserID); err == nil {
				transition.ActorID = uid
			}
			transition.ActorName = claims.Name
		}
		if err := tx.Create(&transition).Error; err != nil {
			tx.Rollback()
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if err := tx.Commit().Error; err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		log.Printf("✅ Report %s: %s → %s (%s)", report.ID, from, to, action)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"report":  report,
			"actions": report.Status.AvailableActions(),
		})
	}
}

// GetReportTransitions returns the audit trail of a report.
func GetReportTransitions(w http.ResponseWriter, r *http.Request) {
	report, ok := loadReport(w, r)
	if !ok {
		return
	}
	var transitions []models.ReportTransition
	if err := config.DB.Where("report_id = ?", report.ID).
		Order("transitioned_at asc").
		Find(&transitions).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transitions)
}
