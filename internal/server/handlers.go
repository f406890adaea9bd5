package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/repository"
)

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, contract.StatusResponse{Message: "Itinera API is running", Version: Version})
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	popular := false
	if raw := r.URL.Query().Get("popular"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("popular: invalid boolean %q", raw))
			return
		}
		popular = v
	}
	dests, err := s.catalog.ListDestinations(r.Context(), popular)
	if err != nil {
		s.fail(w, r, err, "Failed to fetch destinations")
		return
	}
	out := make([]contract.Destination, 0, len(dests))
	for _, d := range dests {
		out = append(out, contract.FromDestination(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	plans, err := s.catalog.GetTravelPlans(r.Context(), name)
	if err == nil && len(plans.Plans) == 0 {
		err = repository.ErrNotFound
	}
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "Travel plans not found for "+name)
			return
		}
		s.fail(w, r, err, "Failed to fetch travel plans")
		return
	}
	writeJSON(w, http.StatusOK, contract.FromTravelPlans(plans))
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}
	params, tier, err := req.Parse()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	trip, err := s.trips.CreateTrip(r.Context(), params, tier, req.UserEmail)
	if err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.fail(w, r, err, "Failed to create trip")
		return
	}
	writeJSON(w, http.StatusOK, contract.CreateTripResponse{
		TripID:     trip.ID,
		Message:    "Trip saved successfully",
		ShareURL:   contract.ShareURL(trip.ShareToken),
		ShareToken: trip.ShareToken,
	})
}

func (s *Server) handleTripGet(w http.ResponseWriter, r *http.Request) {
	first, second := r.PathValue("first"), r.PathValue("second")
	switch {
	case first == "shared":
		s.handleShared(w, r, second)
	case second == "progress":
		s.handleGetProgress(w, r, first)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request, tripID string) {
	report, err := s.trips.GetProgress(r.Context(), tripID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "Trip not found")
			return
		}
		s.fail(w, r, err, "Failed to fetch trip progress")
		return
	}
	writeJSON(w, http.StatusOK, contract.ProgressResponse{
		TripID:              report.TripID,
		Destination:         report.Destination,
		SelectedBudget:      string(report.BudgetTier),
		CompletedActivities: report.CompletedActivities.WireMap(),
		ProgressPercentage:  report.ProgressPercentage,
	})
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req contract.ProgressUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ack, err := s.trips.UpdateProgress(r.Context(), r.PathValue("id"), domain.CompletionStateFromWire(req.CompletedActivities))
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "Trip not found")
			return
		}
		s.fail(w, r, err, "Failed to update trip progress")
		return
	}
	writeJSON(w, http.StatusOK, contract.ProgressUpdateResponse{
		Message:            "Progress updated successfully",
		ProgressPercentage: ack.ProgressPercentage,
	})
}

func (s *Server) handleShared(w http.ResponseWriter, r *http.Request, token string) {
	trip, err := s.trips.GetShared(r.Context(), token)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "Shared trip not found")
			return
		}
		s.fail(w, r, err, "Failed to fetch shared trip")
		return
	}
	writeJSON(w, http.StatusOK, contract.FromTrip(trip))
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := s.catalog.Seed(r.Context())
	if err != nil {
		s.fail(w, r, err, "Failed to seed database")
		return
	}
	writeJSON(w, http.StatusOK, contract.SeedResponse{
		Message:      "Database seeded successfully",
		Destinations: result.Destinations,
		Plans:        result.Plans,
	})
}

// fail logs the cause and answers 500 with a fixed detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, detail string) {
	s.logger.ErrorContext(r.Context(), detail, "path", r.URL.Path, "error", err.Error())
	writeError(w, http.StatusInternalServerError, detail)
}

func isNotFound(err error) bool {
	return errors.Is(err, app.ErrNotFound) || errors.Is(err, repository.ErrNotFound)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload exceeds limit")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, contract.ErrorResponse{Detail: detail})
}
