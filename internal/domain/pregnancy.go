package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	// DateLayout is the storage layout for calendar dates (due date, LMP, todo due).
	DateLayout = "2006-01-02"

	gestationDays = 280
	minWeek       = 1
	maxWeek       = 42
)

// TrimesterForWeek maps a gestational week to its trimester. Returns 0 for
// weeks outside 1..42.
func TrimesterForWeek(week int) int {
	switch {
	case week < minWeek || week > maxWeek:
		return 0
	case week <= 13:
		return 1
	case week <= 27:
		return 2
	default:
		return 3
	}
}

// WeekFromDueDate returns the gestational week at now, clamped to 1..42.
func WeekFromDueDate(dueDate, now time.Time) int {
	daysUntilDue := math.Floor(dueDate.Sub(now).Hours() / 24)
	week := 40 - int(math.Floor(daysUntilDue/7))
	if week < minWeek {
		return minWeek
	}
	if week > maxWeek {
		return maxWeek
	}
	return week
}

// DueDateFromLMP returns the estimated due date 280 days after the last
// menstrual period.
func DueDateFromLMP(lmp time.Time) time.Time {
	return lmp.AddDate(0, 0, gestationDays)
}

// ParseDate accepts a calendar date or a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

// ApplyDates recomputes due date, current week, and trimester from whichever
// of dueDate or lmp is set. dueDate wins when both are given.
func (p *Profile) ApplyDates(now time.Time) error {
	var due time.Time
	switch {
	case p.DueDate != "":
		d, err := ParseDate(p.DueDate)
		if err != nil {
			return err
		}
		due = d
	case p.LMP != "":
		lmp, err := ParseDate(p.LMP)
		if err != nil {
			return err
		}
		due = DueDateFromLMP(lmp)
	default:
		return nil
	}
	p.DueDate = due.Format(DateLayout)
	p.CurrentWeek = WeekFromDueDate(due, now)
	p.Trimester = TrimesterForWeek(p.CurrentWeek)
	return nil
}
