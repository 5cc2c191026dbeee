package gormdb

import (
	"context"
	"errors"
	"time"

	recordDomain "preauth-tracker/internal/domain/record"

	"gorm.io/gorm"
)

// editableColumns is every column Update overwrites. Identity and lifecycle columns
// (id, is_deleted, owner_user_id, created_at) are deliberately absent.
var editableColumns = []string{
	"patient_name", "patient_dob", "patient_phone", "member_id",
	"insurance_name", "insurance_phone", "group_number",
	"provider_name", "facility", "date_of_service",
	"procedure_codes", "diagnosis_codes", "visit_type",
	"date_requested", "auth_number", "reference_number",
	"follow_up_date", "last_worked_date", "assigned_to",
	"notes", "checklist", "status", "updated_at",
}

type RecordRepository struct{ db *gorm.DB }

func NewRecordRepository(db *gorm.DB) *RecordRepository { return &RecordRepository{db: db} }

func (r *RecordRepository) Create(ctx context.Context, rec *recordDomain.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *RecordRepository) GetByID(ctx context.Context, id uint64) (*recordDomain.Record, error) {
	var out recordDomain.Record
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recordDomain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *RecordRepository) UpdateFields(ctx context.Context, id uint64, f recordDomain.Fields, at time.Time) (bool, error) {
	row := recordDomain.Record{Fields: f, UpdatedAt: at}
	// Select forces zero values (empty strings) to be written: full overwrite, not a patch.
	res := r.db.WithContext(ctx).Model(&recordDomain.Record{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Select(editableColumns).
		Updates(&row)
	return res.RowsAffected > 0, res.Error
}

func (r *RecordRepository) SetState(ctx context.Context, id uint64, from, to recordDomain.State, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&recordDomain.Record{}).
		Where("id = ? AND is_deleted = ?", id, from.IsDeleted()).
		Updates(map[string]any{"is_deleted": to.IsDeleted(), "updated_at": at})
	return res.RowsAffected > 0, res.Error
}

func (r *RecordRepository) Purge(ctx context.Context, id uint64) (bool, error) {
	// the trashed-state guard lives in the statement itself
	res := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, true).
		Delete(&recordDomain.Record{})
	return res.RowsAffected > 0, res.Error
}

func (r *RecordRepository) ListByState(ctx context.Context, s recordDomain.State) ([]recordDomain.Record, error) {
	out := []recordDomain.Record{}
	res := r.db.WithContext(ctx).
		Where("is_deleted = ?", s.IsDeleted()).
		Order("updated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *RecordRepository) CountByStatus(ctx context.Context) (map[recordDomain.Status]int64, error) {
	var rows []struct {
		Status recordDomain.Status
		N      int64
	}
	res := r.db.WithContext(ctx).Model(&recordDomain.Record{}).
		Select("status, COUNT(*) AS n").
		Where("is_deleted = ?", false).
		Group("status").
		Scan(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	out := make(map[recordDomain.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *RecordRepository) CountRequestedOn(ctx context.Context, day string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&recordDomain.Record{}).
		Where("is_deleted = ? AND date_requested = ?", false, day).
		Count(&n)
	return n, res.Error
}

func (r *RecordRepository) CountByOwnerSince(ctx context.Context, since []time.Time) (map[uint64][]int64, error) {
	if len(since) == 0 {
		return map[uint64][]int64{}, nil
	}
	sel := "owner_user_id"
	args := make([]any, 0, len(since))
	for i, t := range since {
		sel += ", SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END) AS " + bucketAlias(i)
		args = append(args, t)
	}

	rows, err := r.db.WithContext(ctx).Model(&recordDomain.Record{}).
		Select(sel, args...).
		Where("is_deleted = ?", false).
		Group("owner_user_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[uint64][]int64{}
	for rows.Next() {
		var owner uint64
		counts := make([]int64, len(since))
		dest := []any{&owner}
		for i := range counts {
			dest = append(dest, &counts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out[owner] = counts
	}
	return out, rows.Err()
}

func bucketAlias(i int) string { return "b" + string(rune('0'+i)) }
