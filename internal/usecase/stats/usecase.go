package stats

import (
	"context"
	"sort"
	"time"

	"preauth-tracker/internal/domain/record"
	"preauth-tracker/internal/domain/user"
)

const dateLayout = "2006-01-02"

// Usecase recomputes every aggregate on demand; nothing is cached.
type Usecase struct {
	records record.Repository
	users   user.Repository
	// now is read in the server's local time zone
	now func() time.Time
}

func NewUsecase(records record.Repository, users user.Repository) *Usecase {
	return &Usecase{records: records, users: users, now: time.Now}
}

func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

func (u *Usecase) RecordStats(ctx context.Context) (*RecordStats, error) {
	counts, err := u.records.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	today, err := u.records.CountRequestedOn(ctx, u.now().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	out := &RecordStats{
		Pending:     counts[record.StatusPending],
		Approved:    counts[record.StatusApproved],
		Denied:      counts[record.StatusDenied],
		NotRequired: counts[record.StatusNotRequired],
		FollowUp:    counts[record.StatusFollowUp],
		Cancelled:   counts[record.StatusCancelled],
		NotCovered:  counts[record.StatusNotCovered],
		Today:       today,
	}
	out.Total = out.Pending + out.Approved + out.Denied + out.NotRequired +
		out.FollowUp + out.Cancelled + out.NotCovered
	return out, nil
}

func (u *Usecase) EmployeeStats(ctx context.Context) ([]EmployeeStats, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, err
	}
	buckets, err := u.records.CountByOwnerSince(ctx, WindowsAt(u.now()).Bounds())
	if err != nil {
		return nil, err
	}

	out := make([]EmployeeStats, 0, len(users))
	for _, usr := range users {
		s := EmployeeStats{UserID: usr.ID, Username: usr.Username, Role: usr.Role}
		if c, ok := buckets[usr.ID]; ok && len(c) == 4 {
			s.Today, s.ThisWeek, s.ThisMonth, s.YearToDate = c[0], c[1], c[2], c[3]
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
