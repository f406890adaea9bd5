package domain

import "strings"

type BudgetTier string

const (
	TierBackpacker       BudgetTier = "backpacker"
	TierTravelEnthusiast BudgetTier = "travelEnthusiast"
	TierLuxury           BudgetTier = "luxury"
)

// BudgetTiers lists the tiers in display order.
var BudgetTiers = []BudgetTier{TierBackpacker, TierTravelEnthusiast, TierLuxury}

// Valid reports whether t is one of the known budget tiers.
func (t BudgetTier) Valid() bool {
	switch t {
	case TierBackpacker, TierTravelEnthusiast, TierLuxury:
		return true
	}
	return false
}

// Label returns the human-readable tier name.
func (t BudgetTier) Label() string {
	switch t {
	case TierBackpacker:
		return "Backpacker"
	case TierTravelEnthusiast:
		return "Travel Enthusiast"
	case TierLuxury:
		return "Luxury"
	default:
		return string(t)
	}
}

// Tagline returns the short description shown next to the tier name.
func (t BudgetTier) Tagline() string {
	switch t {
	case TierBackpacker:
		return "Adventure on a Budget"
	case TierTravelEnthusiast:
		return "Balanced Experience"
	case TierLuxury:
		return "Premium Experience"
	default:
		return ""
	}
}

// ParseBudgetTier accepts the wire values case-insensitively, plus the
// snake_case and kebab-case spellings of travelEnthusiast.
func ParseBudgetTier(s string) (BudgetTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "backpacker":
		return TierBackpacker, nil
	case "travelenthusiast", "travel_enthusiast", "travel-enthusiast":
		return TierTravelEnthusiast, nil
	case "luxury":
		return TierLuxury, nil
	}
	return "", &ValidationError{
		Field:   "budget",
		Message: "must be one of backpacker, travelEnthusiast, luxury (got " + quote(s) + ")",
	}
}

type ActivityType string

const (
	ActivityAccommodation ActivityType = "accommodation"
	ActivityTransport     ActivityType = "transport"
	ActivitySightseeing   ActivityType = "sightseeing"
	ActivityDining        ActivityType = "dining"
	ActivityGeneral       ActivityType = "activity"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
var ValidActivityTypes = map[string]bool{
	"accommodation": true, "transport": true, "sightseeing": true,
	"dining": true, "activity": true,
}

// FlowStage names the three screens of the planning flow.
type FlowStage string

const (
	StageDestination FlowStage = "destination"
	StageBudget      FlowStage = "budget"
	StageItinerary   FlowStage = "itinerary"
)

// SyncStatus describes how the local completion state relates to the remote copy.
type SyncStatus string

const (
	SyncLocalOnly SyncStatus = "local_only"
	SyncSynced    SyncStatus = "synced"
	SyncPending   SyncStatus = "pending"
	SyncDegraded  SyncStatus = "degraded"
)
