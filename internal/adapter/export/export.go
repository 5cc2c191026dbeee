// Package export renders active authorization records as downloadable sheets.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"preauth-tracker/internal/domain/record"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Filename(at time.Time) string {
	return "authorizations-" + at.Format("20060102") + "." + string(f)
}

const sheetName = "Authorizations"

// Header is the column order shared by both formats.
var Header = []string{
	"ID", "Status", "Patient Name", "Patient DOB", "Patient Phone", "Member ID",
	"Insurance", "Insurance Phone", "Group Number", "Provider", "Facility",
	"Date of Service", "Procedure Codes", "Diagnosis Codes", "Visit Type",
	"Date Requested", "Auth Number", "Reference Number", "Follow Up Date",
	"Last Worked", "Assigned To", "Notes", "Created At", "Updated At",
}

func row(r record.Record) []string {
	return []string{
		strconv.FormatUint(r.ID, 10), string(r.Status), r.PatientName, r.PatientDOB,
		r.PatientPhone, r.MemberID, r.InsuranceName, r.InsurancePhone, r.GroupNumber,
		r.ProviderName, r.Facility, r.DateOfService, r.ProcedureCodes, r.DiagnosisCodes,
		r.VisitType, r.DateRequested, r.AuthNumber, r.ReferenceNumber, r.FollowUpDate,
		r.LastWorkedDate, r.AssignedTo, r.Notes,
		r.CreatedAt.UTC().Format(time.RFC3339), r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Write renders records in the given format.
func Write(w io.Writer, f Format, records []record.Record) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

func WriteCSV(w io.Writer, records []record.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, records []record.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", toCells(Header)); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(row(r))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func toCells(vals []string) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
