package contract

import (
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

type Destination struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Popular   bool    `json:"popular"`
	ImageURL  *string `json:"image_url,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

func FromDestination(d *domain.Destination) Destination {
	out := Destination{
		ID:       d.ID,
		Name:     d.Name,
		Country:  d.Country,
		Popular:  d.Popular,
		ImageURL: d.ImageURL,
	}
	if !d.CreatedAt.IsZero() {
		out.CreatedAt = d.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func (d Destination) ToDomain() *domain.Destination {
	out := &domain.Destination{
		ID:       d.ID,
		Name:     d.Name,
		Country:  d.Country,
		Popular:  d.Popular,
		ImageURL: d.ImageURL,
	}
	if t, err := time.Parse(time.RFC3339, d.CreatedAt); err == nil {
		out.CreatedAt = t
	}
	return out
}

// StatusResponse is returned by GET /api/.
type StatusResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// SeedResponse is returned by POST /api/seed-database.
type SeedResponse struct {
	Message      string `json:"message"`
	Destinations int    `json:"destinations"`
	Plans        int    `json:"plans"`
}
