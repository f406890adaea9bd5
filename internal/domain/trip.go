package domain

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type DateRange struct {
	From time.Time
	To   time.Time
}

// Nights returns the number of nights between From and To.
func (r DateRange) Nights() int {
	return int(r.To.Sub(r.From).Hours() / 24)
}

// Days returns the inclusive number of calendar days covered by the range.
func (r DateRange) Days() int {
	return r.Nights() + 1
}

// String formats the range as "YYYY-MM-DD → YYYY-MM-DD".
func (r DateRange) String() string {
	return r.From.Format(dateLayout) + " → " + r.To.Format(dateLayout)
}

// TripParameters is what the user enters on the destination screen.
type TripParameters struct {
	Destination string
	DateRange   DateRange
	Travelers   int
}

// Validate checks the parameters and returns a *ValidationError for the
// first problem found.
func (p TripParameters) Validate() error {
	if strings.TrimSpace(p.Destination) == "" {
		return &ValidationError{Field: "destination", Message: "is required"}
	}
	if p.DateRange.From.IsZero() || p.DateRange.To.IsZero() {
		return &ValidationError{Field: "dates", Message: "both start and end dates are required"}
	}
	if p.DateRange.To.Before(p.DateRange.From) {
		return &ValidationError{
			Field:   "dates",
			Message: "end date " + p.DateRange.To.Format(dateLayout) + " is before start date " + p.DateRange.From.Format(dateLayout),
		}
	}
	if p.Travelers < 1 {
		return &ValidationError{Field: "travelers", Message: "must be at least 1"}
	}
	return nil
}

// Normalized returns a copy with the destination trimmed.
func (p TripParameters) Normalized() TripParameters {
	p.Destination = strings.TrimSpace(p.Destination)
	return p
}

// TripRecord is a registered trip as held by the persistence service.
type TripRecord struct {
	ID                  string
	Destination         string
	DateRange           DateRange
	Travelers           int
	BudgetTier          BudgetTier
	CompletedActivities CompletionState
	UserEmail           *string
	ShareToken          string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Params returns the trip parameters the record was created from.
func (r *TripRecord) Params() TripParameters {
	return TripParameters{
		Destination: r.Destination,
		DateRange:   r.DateRange,
		Travelers:   r.Travelers,
	}
}
