package importer

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/google/uuid"
)

// TierPlan is one converted plan ready for persistence.
type TierPlan struct {
	DestinationName string
	Tier            domain.BudgetTier
	Plan            *domain.ItineraryPlan
}

// GeneratedCatalog is the domain form of a catalog schema.
type GeneratedCatalog struct {
	Destinations []*domain.Destination
	Plans        []TierPlan
}

// Convert transforms a validated CatalogSchema into domain objects ready for
// persistence. Call ValidateCatalogSchema first; Convert assumes the schema
// is valid. Plans are ordered by destination then tier display order.
func Convert(schema *CatalogSchema) *GeneratedCatalog {
	now := time.Now().UTC()
	out := &GeneratedCatalog{}

	for _, d := range schema.Destinations {
		out.Destinations = append(out.Destinations, &domain.Destination{
			ID:        uuid.New().String(),
			Name:      strings.TrimSpace(d.Name),
			Country:   strings.TrimSpace(d.Country),
			Popular:   d.Popular,
			ImageURL:  d.ImageURL,
			CreatedAt: now,
		})
	}

	for _, ps := range schema.Plans {
		for _, tier := range domain.BudgetTiers {
			plan, ok := ps.Tiers[string(tier)]
			if !ok {
				continue
			}
			out.Plans = append(out.Plans, TierPlan{
				DestinationName: strings.TrimSpace(ps.Destination),
				Tier:            tier,
				Plan:            plan.ToDomain(),
			})
		}
	}
	sort.SliceStable(out.Plans, func(i, j int) bool {
		return strings.ToLower(out.Plans[i].DestinationName) < strings.ToLower(out.Plans[j].DestinationName)
	})

	return out
}
