package reconcile

import (
	"fmt"
	"time"
)

// PeriodLayout is the canonical wire/storage format for a business date.
const PeriodLayout = "2006-01-02"

// ReportingPeriod identifies one calendar day of cashier activity.
// It is passed explicitly into every query and command so historical
// reconciliation never depends on the ambient clock.
type ReportingPeriod struct {
	day time.Time
}

// ParsePeriod parses a "YYYY-MM-DD" string into a ReportingPeriod.
func ParsePeriod(s string) (ReportingPeriod, error) {
	t, err := time.Parse(PeriodLayout, s)
	if err != nil {
		return ReportingPeriod{}, fmt.Errorf("invalid reporting period %q: %w", s, err)
	}
	return ReportingPeriod{day: t}, nil
}

// PeriodOf truncates an instant to its calendar day in the instant's location.
func PeriodOf(t time.Time) ReportingPeriod {
	y, m, d := t.Date()
	return ReportingPeriod{day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day. Only composition roots and HTTP
// handlers should call this; services receive the period as an argument.
func Today() ReportingPeriod {
	return PeriodOf(time.Now())
}

func (p ReportingPeriod) String() string {
	return p.day.Format(PeriodLayout)
}

func (p ReportingPeriod) IsZero() bool {
	return p.day.IsZero()
}

// Time returns midnight UTC of the period's day.
func (p ReportingPeriod) Time() time.Time {
	return p.day
}
