package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"preauth-tracker/internal/adapter/export"
	"preauth-tracker/internal/adapter/middleware"
	"preauth-tracker/internal/domain/record"
	"preauth-tracker/internal/usecase/authz"
	recordUC "preauth-tracker/internal/usecase/record"
	"preauth-tracker/internal/usecase/stats"
)

type RecordHandler struct {
	uc    *recordUC.Usecase
	stats *stats.Usecase
}

func NewRecordHandler(uc *recordUC.Usecase, st *stats.Usecase) *RecordHandler {
	return &RecordHandler{uc: uc, stats: st}
}

type recordReq struct {
	PatientName     string          `json:"patient_name"     validate:"max=200"`
	PatientDOB      string          `json:"patient_dob"      validate:"omitempty,datetime=2006-01-02"`
	PatientPhone    string          `json:"patient_phone"    validate:"max=32"`
	MemberID        string          `json:"member_id"        validate:"max=64"`
	InsuranceName   string          `json:"insurance_name"   validate:"max=200"`
	InsurancePhone  string          `json:"insurance_phone"  validate:"max=32"`
	GroupNumber     string          `json:"group_number"     validate:"max=64"`
	ProviderName    string          `json:"provider_name"    validate:"max=200"`
	Facility        string          `json:"facility"         validate:"max=200"`
	DateOfService   string          `json:"date_of_service"  validate:"omitempty,datetime=2006-01-02"`
	ProcedureCodes  string          `json:"procedure_codes"`
	DiagnosisCodes  string          `json:"diagnosis_codes"`
	VisitType       string          `json:"visit_type"       validate:"max=64"`
	DateRequested   string          `json:"date_requested"   validate:"omitempty,datetime=2006-01-02"`
	AuthNumber      string          `json:"auth_number"      validate:"max=64"`
	ReferenceNumber string          `json:"reference_number" validate:"max=64"`
	FollowUpDate    string          `json:"follow_up_date"   validate:"omitempty,datetime=2006-01-02"`
	LastWorkedDate  string          `json:"last_worked_date" validate:"omitempty,datetime=2006-01-02"`
	AssignedTo      string          `json:"assigned_to"      validate:"max=100"`
	Notes           string          `json:"notes"`
	Checklist       json.RawMessage `json:"checklist"`
	Status          string          `json:"status"           validate:"omitempty,recordstatus"`
}

func (r recordReq) fields() record.Fields {
	return record.Fields{
		PatientName:     r.PatientName,
		PatientDOB:      r.PatientDOB,
		PatientPhone:    r.PatientPhone,
		MemberID:        r.MemberID,
		InsuranceName:   r.InsuranceName,
		InsurancePhone:  r.InsurancePhone,
		GroupNumber:     r.GroupNumber,
		ProviderName:    r.ProviderName,
		Facility:        r.Facility,
		DateOfService:   r.DateOfService,
		ProcedureCodes:  r.ProcedureCodes,
		DiagnosisCodes:  r.DiagnosisCodes,
		VisitType:       r.VisitType,
		DateRequested:   r.DateRequested,
		AuthNumber:      r.AuthNumber,
		ReferenceNumber: r.ReferenceNumber,
		FollowUpDate:    r.FollowUpDate,
		LastWorkedDate:  r.LastWorkedDate,
		AssignedTo:      r.AssignedTo,
		Notes:           r.Notes,
		Checklist:       checklistText(r.Checklist),
		Status:          record.Status(r.Status),
	}
}

// checklistText accepts either an already-serialized string or a raw JSON value and
// returns the text to store. Nothing is validated.
func checklistText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

type createRecordResp struct {
	ID uint64 `json:"id"`
}

func (h *RecordHandler) List(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordHandler) ListDeleted(c echo.Context) error {
	out, err := h.uc.ListTrashed(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordHandler) Stats(c echo.Context) error {
	out, err := h.stats.RecordStats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordHandler) Export(c echo.Context) error {
	format, err := export.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Reason: "invalid_format"})
	}
	rows, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, rows); err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+format.Filename(time.Now())+`"`)
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *RecordHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	rec, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecordHandler) Create(c echo.Context) error {
	caller := middleware.IdentityFrom(c)
	if caller == nil {
		return fail(c, authz.ErrUnauthorized)
	}
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}

	id, err := h.uc.Create(c.Request().Context(), req.fields(), caller.ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, createRecordResp{ID: id})
}

func (h *RecordHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}

	if err := h.uc.Update(c.Request().Context(), id, req.fields()); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "record updated"})
}

func (h *RecordHandler) SoftDelete(c echo.Context) error {
	return h.lifecycle(c, h.uc.SoftDelete, "record moved to trash")
}

func (h *RecordHandler) Restore(c echo.Context) error {
	return h.lifecycle(c, h.uc.Restore, "record restored")
}

func (h *RecordHandler) Purge(c echo.Context) error {
	return h.lifecycle(c, h.uc.Purge, "record permanently deleted")
}

func (h *RecordHandler) lifecycle(c echo.Context, op func(ctx context.Context, id uint64) error, msg string) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	if err := op(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": msg})
}
