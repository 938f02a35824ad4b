package schedule

import (
	"time"

	"github.com/integraph/integraph/engine/core"
)

// Recurrence names how often a scheduled process runs.
type Recurrence string

const (
	RecurrenceOnce     Recurrence = "Once"
	RecurrenceInterval Recurrence = "Interval"
	RecurrenceDaily    Recurrence = "Daily"
	RecurrenceWeekly   Recurrence = "Weekly"
	RecurrenceMonthly  Recurrence = "Monthly"
	RecurrenceYearly   Recurrence = "Yearly"
)

func (r Recurrence) IsValid() bool {
	_, ok := recurrenceRules[r]
	return ok
}

// Schedule is the recurrence descriptor attached to a process. Exactly one
// schedule may exist per process.
type Schedule struct {
	ID              core.ID    `json:"id"               db:"id"`
	ProcessID       core.ID    `json:"process_id"       db:"process_id"`
	Recurrence      Recurrence `json:"recurrence"       db:"recurrence"`
	StartDate       time.Time  `json:"start_date"       db:"start_date"`
	Enabled         bool       `json:"enabled"          db:"enabled"`
	IntervalMinutes int        `json:"interval_minutes" db:"interval_minutes"`
	DayOfWeek       int        `json:"day_of_week"      db:"day_of_week"`
	DayOfMonth      int        `json:"day_of_month"     db:"day_of_month"`
	Month           int        `json:"month"            db:"month"`
	Hour            int        `json:"hour"             db:"hour"`
	Minute          int        `json:"minute"           db:"minute"`
}

// rule validates the recurrence-specific numeric fields of a candidate.
type rule func(*Schedule) error

// recurrenceRules maps each recurrence kind to its bounds checks. Adding a
// kind means adding one entry here.
var recurrenceRules = map[Recurrence][]rule{
	RecurrenceOnce:     {timeOfDay},
	RecurrenceInterval: {intervalPositive, timeOfDay},
	RecurrenceDaily:    {timeOfDay},
	RecurrenceWeekly:   {weekday, timeOfDay},
	RecurrenceMonthly:  {monthday, timeOfDay},
	RecurrenceYearly:   {month, monthday, timeOfDay},
}

func intervalPositive(s *Schedule) error {
	if s.IntervalMinutes <= 0 {
		return core.Invalidf("schedule", "interval_minutes must be greater than zero, got %d", s.IntervalMinutes)
	}
	return nil
}

func weekday(s *Schedule) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return core.Invalidf("schedule", "day_of_week must be between 0 and 6, got %d", s.DayOfWeek)
	}
	return nil
}

func monthday(s *Schedule) error {
	if s.DayOfMonth < 1 || s.DayOfMonth > 31 {
		return core.Invalidf("schedule", "day_of_month must be between 1 and 31, got %d", s.DayOfMonth)
	}
	return nil
}

func month(s *Schedule) error {
	if s.Month < 1 || s.Month > 12 {
		return core.Invalidf("schedule", "month must be between 1 and 12, got %d", s.Month)
	}
	return nil
}

func timeOfDay(s *Schedule) error {
	if s.Hour < 0 || s.Hour > 23 {
		return core.Invalidf("schedule", "hour must be between 0 and 23, got %d", s.Hour)
	}
	if s.Minute < 0 || s.Minute > 59 {
		return core.Invalidf("schedule", "minute must be between 0 and 59, got %d", s.Minute)
	}
	return nil
}

// Validate checks the field rules that do not require repository access.
func (s *Schedule) Validate() error {
	if s.ProcessID.IsZero() {
		return core.Invalidf("schedule", "process_id is required")
	}
	rules, ok := recurrenceRules[s.Recurrence]
	if !ok {
		return core.Invalidf("schedule", "unknown recurrence %q", s.Recurrence)
	}
	for _, check := range rules {
		if err := check(s); err != nil {
			return err
		}
	}
	return nil
}
