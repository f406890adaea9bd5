package contract

import "github.com/alexanderramin/itinera/internal/domain"

// BudgetPlan is the JSON form of one tier's itinerary plan.
type BudgetPlan struct {
	TotalBudget   string   `json:"total_budget"`
	Duration      string   `json:"duration"`
	Accommodation string   `json:"accommodation"`
	Transport     string   `json:"transport"`
	Highlights    []string `json:"highlights"`
	Itinerary     []Day    `json:"itinerary"`
}

type Day struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time string `json:"time"`
	Task string `json:"task"`
	Type string `json:"type"`
}

// TravelPlansResponse is returned by GET /api/destinations/{name}/plans.
// Tiers without content are omitted.
type TravelPlansResponse struct {
	Destination string                `json:"destination"`
	Plans       map[string]BudgetPlan `json:"plans"`
}

func FromPlan(p *domain.ItineraryPlan) BudgetPlan {
	out := BudgetPlan{
		TotalBudget:   p.TotalBudget,
		Duration:      p.Duration,
		Accommodation: p.Accommodation,
		Transport:     p.Transport,
		Highlights:    append([]string{}, p.Highlights...),
		Itinerary:     make([]Day, 0, len(p.Days)),
	}
	for _, d := range p.Days {
		day := Day{Day: d.Day, Title: d.Title, Activities: make([]Activity, 0, len(d.Activities))}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, Activity{Time: a.Time, Task: a.Task, Type: string(a.Type)})
		}
		out.Itinerary = append(out.Itinerary, day)
	}
	return out
}

func (b BudgetPlan) ToDomain() *domain.ItineraryPlan {
	p := &domain.ItineraryPlan{
		TotalBudget:   b.TotalBudget,
		Duration:      b.Duration,
		Accommodation: b.Accommodation,
		Transport:     b.Transport,
		Highlights:    b.Highlights,
		Days:          make([]domain.Day, 0, len(b.Itinerary)),
	}
	for _, d := range b.Itinerary {
		day := domain.Day{Day: d.Day, Title: d.Title, Activities: make([]domain.Activity, 0, len(d.Activities))}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, domain.Activity{Time: a.Time, Task: a.Task, Type: domain.ActivityType(a.Type)})
		}
		p.Days = append(p.Days, day)
	}
	return p
}

func FromTravelPlans(tp *domain.TravelPlans) TravelPlansResponse {
	out := TravelPlansResponse{Destination: tp.Destination, Plans: map[string]BudgetPlan{}}
	for tier, plan := range tp.Plans {
		if plan != nil {
			out.Plans[string(tier)] = FromPlan(plan)
		}
	}
	return out
}

// ToDomain converts the response, skipping tiers the client does not know.
func (r TravelPlansResponse) ToDomain() *domain.TravelPlans {
	out := &domain.TravelPlans{Destination: r.Destination, Plans: map[domain.BudgetTier]*domain.ItineraryPlan{}}
	for raw, plan := range r.Plans {
		tier := domain.BudgetTier(raw)
		if !tier.Valid() {
			continue
		}
		out.Plans[tier] = plan.ToDomain()
	}
	return out
}
