package stats

import "preauth-tracker/internal/domain/user"

type RecordStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Denied      int64 `json:"denied"`
	NotRequired int64 `json:"not_required"`
	FollowUp    int64 `json:"follow_up"`
	Cancelled   int64 `json:"cancelled"`
	NotCovered  int64 `json:"not_covered"`
	// Today counts active records whose date_requested is the server-local date.
	Today int64 `json:"today"`
}

type EmployeeStats struct {
	UserID     uint64    `json:"user_id"`
	Username   string    `json:"username"`
	Role       user.Role `json:"role"`
	Today      int64     `json:"today"`
	ThisWeek   int64     `json:"this_week"`
	ThisMonth  int64     `json:"this_month"`
	YearToDate int64     `json:"year_to_date"`
}
