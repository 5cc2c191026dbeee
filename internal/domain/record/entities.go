package record

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrNotTrashed        = errors.New("record is not in trash")
	ErrInvalidTransition = errors.New("invalid lifecycle transition")
)

type Status string

const (
	StatusPending     Status = "Pending"
	StatusApproved    Status = "Approved"
	StatusDenied      Status = "Denied"
	StatusNotRequired Status = "Not Required"
	StatusFollowUp    Status = "Follow Up"
	StatusCancelled   Status = "Cancelled"
	StatusNotCovered  Status = "Not Covered"
)

// Statuses lists every status in display order. Stats buckets are keyed on it.
var Statuses = []Status{
	StatusPending,
	StatusApproved,
	StatusDenied,
	StatusNotRequired,
	StatusFollowUp,
	StatusCancelled,
	StatusNotCovered,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Fields are the editable, descriptive columns of a record. Update overwrites all of them.
type Fields struct {
	PatientName     string `gorm:"column:patient_name;size:200" json:"patient_name"`
	PatientDOB      string `gorm:"column:patient_dob;size:10" json:"patient_dob"`
	PatientPhone    string `gorm:"column:patient_phone;size:32" json:"patient_phone"`
	MemberID        string `gorm:"column:member_id;size:64" json:"member_id"`
	InsuranceName   string `gorm:"column:insurance_name;size:200" json:"insurance_name"`
	InsurancePhone  string `gorm:"column:insurance_phone;size:32" json:"insurance_phone"`
	GroupNumber     string `gorm:"column:group_number;size:64" json:"group_number"`
	ProviderName    string `gorm:"column:provider_name;size:200" json:"provider_name"`
	Facility        string `gorm:"column:facility;size:200" json:"facility"`
	DateOfService   string `gorm:"column:date_of_service;size:10" json:"date_of_service"`
	ProcedureCodes  string `gorm:"column:procedure_codes;type:text" json:"procedure_codes"`
	DiagnosisCodes  string `gorm:"column:diagnosis_codes;type:text" json:"diagnosis_codes"`
	VisitType       string `gorm:"column:visit_type;size:64" json:"visit_type"`
	DateRequested   string `gorm:"column:date_requested;size:10;index" json:"date_requested"`
	AuthNumber      string `gorm:"column:auth_number;size:64" json:"auth_number"`
	ReferenceNumber string `gorm:"column:reference_number;size:64" json:"reference_number"`
	FollowUpDate    string `gorm:"column:follow_up_date;size:10" json:"follow_up_date"`
	LastWorkedDate  string `gorm:"column:last_worked_date;size:10" json:"last_worked_date"`
	AssignedTo      string `gorm:"column:assigned_to;size:100" json:"assigned_to"`
	Notes           string `gorm:"column:notes;type:text" json:"notes"`
	// Checklist is stored verbatim; only the UI interprets its key->bool shape.
	Checklist string `gorm:"column:checklist;type:text" json:"checklist"`
	Status    Status `gorm:"column:status;size:32;not null;default:'Pending';index" json:"status"`
}

// Table: authorization_records
type Record struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Fields
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
	OwnerUserID uint64    `gorm:"column:owner_user_id;not null;index" json:"owner_user_id"`
	CreatedAt   time.Time `gorm:"column:created_at;index;autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Record) TableName() string { return "authorization_records" }

func (r *Record) State() State { return StateOf(r.IsDeleted) }
