package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/itinera/internal/contract"
	"github.com/alexanderramin/itinera/internal/domain"
)

var clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateCatalogSchema checks the catalog for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCatalogSchema(schema *CatalogSchema) []error {
	var errs []error

	names := make(map[string]bool)
	if len(schema.Destinations) == 0 {
		errs = append(errs, fmt.Errorf("destinations: at least one destination is required"))
	}
	for i, d := range schema.Destinations {
		prefix := fmt.Sprintf("destinations[%d]", i)
		key := nameKey(d.Name)
		if key == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		if names[key] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate destination %q", prefix, d.Name))
		}
		names[key] = true
	}

	seen := make(map[string]bool)
	for i, ps := range schema.Plans {
		prefix := fmt.Sprintf("plans[%d]", i)
		key := nameKey(ps.Destination)
		switch {
		case key == "":
			errs = append(errs, fmt.Errorf("%s.destination is required", prefix))
		case !names[key]:
			errs = append(errs, fmt.Errorf("%s.destination: %q not found in destinations", prefix, ps.Destination))
		case seen[key]:
			errs = append(errs, fmt.Errorf("%s.destination: duplicate plan set for %q", prefix, ps.Destination))
		}
		seen[key] = true

		if len(ps.Tiers) == 0 {
			errs = append(errs, fmt.Errorf("%s.tiers: at least one tier is required", prefix))
		}
		for raw, plan := range ps.Tiers {
			tierPrefix := fmt.Sprintf("%s.tiers.%s", prefix, raw)
			if !domain.BudgetTier(raw).Valid() {
				errs = append(errs, fmt.Errorf("%s: invalid tier %q", tierPrefix, raw))
				continue
			}
			errs = append(errs, validatePlan(tierPrefix, plan)...)
		}
	}

	return errs
}

func validatePlan(prefix string, p contract.BudgetPlan) []error {
	var errs []error

	if strings.TrimSpace(p.TotalBudget) == "" {
		errs = append(errs, fmt.Errorf("%s.total_budget is required", prefix))
	}
	if len(p.Itinerary) == 0 {
		errs = append(errs, fmt.Errorf("%s.itinerary: at least one day is required", prefix))
	}
	for d, day := range p.Itinerary {
		dayPrefix := fmt.Sprintf("%s.itinerary[%d]", prefix, d)
		if day.Day != d+1 {
			errs = append(errs, fmt.Errorf("%s.day: expected %d, got %d", dayPrefix, d+1, day.Day))
		}
		if strings.TrimSpace(day.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", dayPrefix))
		}
		for a, act := range day.Activities {
			actPrefix := fmt.Sprintf("%s.activities[%d]", dayPrefix, a)
			if !clockTime.MatchString(act.Time) {
				errs = append(errs, fmt.Errorf("%s.time: invalid time %q (expected HH:MM)", actPrefix, act.Time))
			}
			if strings.TrimSpace(act.Task) == "" {
				errs = append(errs, fmt.Errorf("%s.task is required", actPrefix))
			}
			if !domain.ValidActivityTypes[act.Type] {
				errs = append(errs, fmt.Errorf("%s.type: invalid value %q", actPrefix, act.Type))
			}
		}
	}

	return errs
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
