package app

import "github.com/alexanderramin/itinera/internal/domain"

// TripRegistration is the outcome of a successful RegisterTrip call.
type TripRegistration struct {
	TripID     string
	ShareToken string
	ShareURL   string
}

// ProgressAck acknowledges a remote progress write.
type ProgressAck struct {
	ProgressPercentage int
}

// ProgressReport is a trip's progress as served by the persistence API.
type ProgressReport struct {
	TripID              string
	Destination         string
	BudgetTier          domain.BudgetTier
	CompletedActivities domain.CompletionState
	ProgressPercentage  int
}

type CatalogImportResult struct {
	Destinations int
	Plans        int
	Skipped      []string
}
