package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
)

// DateLayout is the wire format of trip dates.
const DateLayout = "2006-01-02"

// CreateTripRequest is the body of POST /api/trips.
type CreateTripRequest struct {
	Destination    string  `json:"destination"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Travelers      int     `json:"travelers"`
	SelectedBudget string  `json:"selected_budget"`
	UserEmail      *string `json:"user_email,omitempty"`
}

// NewCreateTripRequest builds the request for params and tier.
func NewCreateTripRequest(params domain.TripParameters, tier domain.BudgetTier) CreateTripRequest {
	return CreateTripRequest{
		Destination:    params.Destination,
		StartDate:      params.DateRange.From.Format(DateLayout),
		EndDate:        params.DateRange.To.Format(DateLayout),
		Travelers:      params.Travelers,
		SelectedBudget: string(tier),
	}
}

// Parse validates the request and returns the trip parameters and tier.
func (r CreateTripRequest) Parse() (domain.TripParameters, domain.BudgetTier, error) {
	from, err := time.Parse(DateLayout, strings.TrimSpace(r.StartDate))
	if err != nil {
		return domain.TripParameters{}, "", &domain.ValidationError{Field: "start_date", Message: fmt.Sprintf("expected YYYY-MM-DD, got %q", r.StartDate)}
	}
	to, err := time.Parse(DateLayout, strings.TrimSpace(r.EndDate))
	if err != nil {
		return domain.TripParameters{}, "", &domain.ValidationError{Field: "end_date", Message: fmt.Sprintf("expected YYYY-MM-DD, got %q", r.EndDate)}
	}
	params := domain.TripParameters{
		Destination: r.Destination,
		DateRange:   domain.DateRange{From: from, To: to},
		Travelers:   r.Travelers,
	}.Normalized()
	if err := params.Validate(); err != nil {
		return domain.TripParameters{}, "", err
	}
	tier, err := domain.ParseBudgetTier(r.SelectedBudget)
	if err != nil {
		return domain.TripParameters{}, "", err
	}
	return params, tier, nil
}

// CreateTripResponse is returned by POST /api/trips.
type CreateTripResponse struct {
	TripID     string `json:"tripId"`
	Message    string `json:"message"`
	ShareURL   string `json:"shareUrl"`
	ShareToken string `json:"shareToken"`
}

// ProgressResponse is returned by GET /api/trips/{id}/progress.
type ProgressResponse struct {
	TripID              string          `json:"trip_id"`
	Destination         string          `json:"destination"`
	SelectedBudget      string          `json:"selected_budget"`
	CompletedActivities map[string]bool `json:"completed_activities"`
	ProgressPercentage  int             `json:"progress_percentage"`
}

// ProgressUpdateRequest is the body of PUT /api/trips/{id}/progress.
type ProgressUpdateRequest struct {
	CompletedActivities map[string]bool `json:"completed_activities"`
}

// ProgressUpdateResponse is returned by PUT /api/trips/{id}/progress.
type ProgressUpdateResponse struct {
	Message            string `json:"message"`
	ProgressPercentage int    `json:"progressPercentage"`
}

// Trip is the full trip record, as returned for a share token.
type Trip struct {
	ID                  string          `json:"id"`
	Destination         string          `json:"destination"`
	StartDate           string          `json:"start_date"`
	EndDate             string          `json:"end_date"`
	Travelers           int             `json:"travelers"`
	SelectedBudget      string          `json:"selected_budget"`
	CompletedActivities map[string]bool `json:"completed_activities"`
	UserEmail           *string         `json:"user_email,omitempty"`
	ShareToken          string          `json:"share_token"`
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

func FromTrip(t *domain.TripRecord) Trip {
	return Trip{
		ID:                  t.ID,
		Destination:         t.Destination,
		StartDate:           t.DateRange.From.Format(DateLayout),
		EndDate:             t.DateRange.To.Format(DateLayout),
		Travelers:           t.Travelers,
		SelectedBudget:      string(t.BudgetTier),
		CompletedActivities: t.CompletedActivities.WireMap(),
		UserEmail:           t.UserEmail,
		ShareToken:          t.ShareToken,
		CreatedAt:           t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToDomain converts the wire record. Unparseable dates become zero times.
func (t Trip) ToDomain() *domain.TripRecord {
	out := &domain.TripRecord{
		ID:                  t.ID,
		Destination:         t.Destination,
		Travelers:           t.Travelers,
		BudgetTier:          domain.BudgetTier(t.SelectedBudget),
		CompletedActivities: domain.CompletionStateFromWire(t.CompletedActivities),
		UserEmail:           t.UserEmail,
		ShareToken:          t.ShareToken,
	}
	out.DateRange.From, _ = time.Parse(DateLayout, t.StartDate)
	out.DateRange.To, _ = time.Parse(DateLayout, t.EndDate)
	out.CreatedAt, _ = time.Parse(time.RFC3339, t.CreatedAt)
	out.UpdatedAt, _ = time.Parse(time.RFC3339, t.UpdatedAt)
	return out
}

// ShareURL is the path a share token is published under.
func ShareURL(token string) string {
	return "/trips/" + token
}
