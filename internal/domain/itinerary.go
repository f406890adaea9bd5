package domain

import (
	"strings"
	"time"
)

type Activity struct {
	Time string
	Task string
	Type ActivityType
}

type Day struct {
	Day        int
	Title      string
	Activities []Activity
}

// ItineraryPlan is one budget tier's plan for a destination. The core treats
// it as read-only content.
type ItineraryPlan struct {
	TotalBudget   string
	Duration      string
	Accommodation string
	Transport     string
	Highlights    []string
	Days          []Day
}

// ActivityCount returns the number of activities across all days.
func (p *ItineraryPlan) ActivityCount() int {
	if p == nil {
		return 0
	}
	n := 0
	for _, d := range p.Days {
		n += len(d.Activities)
	}
	return n
}

// Contains reports whether key addresses an existing activity in the plan.
func (p *ItineraryPlan) Contains(key ActivityKey) bool {
	if p == nil || key.Day < 0 || key.Activity < 0 || key.Day >= len(p.Days) {
		return false
	}
	return key.Activity < len(p.Days[key.Day].Activities)
}

// ActivityAt returns the activity addressed by key.
func (p *ItineraryPlan) ActivityAt(key ActivityKey) (Activity, bool) {
	if !p.Contains(key) {
		return Activity{}, false
	}
	return p.Days[key.Day].Activities[key.Activity], true
}

// TravelPlans holds every tier's plan for one destination.
type TravelPlans struct {
	Destination string
	Plans       map[BudgetTier]*ItineraryPlan
}

// Plan returns the plan for tier, or nil.
func (t *TravelPlans) Plan(tier BudgetTier) *ItineraryPlan {
	if t == nil {
		return nil
	}
	return t.Plans[tier]
}

type Destination struct {
	ID        string
	Name      string
	Country   string
	Popular   bool
	ImageURL  *string
	CreatedAt time.Time
}

// SameDestination compares destination names case-insensitively, the way the
// catalog looks them up.
func SameDestination(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
