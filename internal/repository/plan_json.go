package repository

import (
	"encoding/json"

	"github.com/alexanderramin/itinera/internal/domain"
)

// planDoc is the stored JSON shape of an itinerary plan.
type planDoc struct {
	TotalBudget   string   `json:"total_budget"`
	Duration      string   `json:"duration"`
	Accommodation string   `json:"accommodation"`
	Transport     string   `json:"transport"`
	Highlights    []string `json:"highlights"`
	Itinerary     []dayDoc `json:"itinerary"`
}

type dayDoc struct {
	Day        int           `json:"day"`
	Title      string        `json:"title"`
	Activities []activityDoc `json:"activities"`
}

type activityDoc struct {
	Time string `json:"time"`
	Task string `json:"task"`
	Type string `json:"type"`
}

func encodePlan(p *domain.ItineraryPlan) (string, error) {
	doc := planDoc{
		TotalBudget:   p.TotalBudget,
		Duration:      p.Duration,
		Accommodation: p.Accommodation,
		Transport:     p.Transport,
		Highlights:    p.Highlights,
		Itinerary:     make([]dayDoc, 0, len(p.Days)),
	}
	for _, d := range p.Days {
		dd := dayDoc{Day: d.Day, Title: d.Title, Activities: make([]activityDoc, 0, len(d.Activities))}
		for _, a := range d.Activities {
			dd.Activities = append(dd.Activities, activityDoc{Time: a.Time, Task: a.Task, Type: string(a.Type)})
		}
		doc.Itinerary = append(doc.Itinerary, dd)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodePlan(raw string) (*domain.ItineraryPlan, error) {
	var doc planDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, err
	}
	p := &domain.ItineraryPlan{
		TotalBudget:   doc.TotalBudget,
		Duration:      doc.Duration,
		Accommodation: doc.Accommodation,
		Transport:     doc.Transport,
		Highlights:    doc.Highlights,
		Days:          make([]domain.Day, 0, len(doc.Itinerary)),
	}
	for _, dd := range doc.Itinerary {
		d := domain.Day{Day: dd.Day, Title: dd.Title, Activities: make([]domain.Activity, 0, len(dd.Activities))}
		for _, a := range dd.Activities {
			d.Activities = append(d.Activities, domain.Activity{Time: a.Time, Task: a.Task, Type: domain.ActivityType(a.Type)})
		}
		p.Days = append(p.Days, d)
	}
	return p, nil
}
