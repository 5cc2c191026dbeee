package stats

import "time"

// Windows are the lower bounds of the rolling submission buckets, in the location of now.
type Windows struct {
	Day   time.Time
	Week  time.Time
	Month time.Time
	Year  time.Time
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfISOWeek returns local midnight of the Monday of t's ISO week. Bucketing by
// [monday, monday+7d) keeps ISO week number and ISO year consistent across the
// December/January boundary.
func startOfISOWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

func WindowsAt(now time.Time) Windows {
	y, m, _ := now.Date()
	return Windows{
		Day:   startOfDay(now),
		Week:  startOfISOWeek(now),
		Month: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
		Year:  time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location()),
	}
}

// Bounds returns the windows in UTC, in bucket order day, week, month, year.
func (w Windows) Bounds() []time.Time {
	return []time.Time{w.Day.UTC(), w.Week.UTC(), w.Month.UTC(), w.Year.UTC()}
}
