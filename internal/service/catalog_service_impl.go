package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/itinera/internal/app"
	"github.com/alexanderramin/itinera/internal/db"
	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/alexanderramin/itinera/internal/importer"
	"github.com/alexanderramin/itinera/internal/repository"
)

type catalogService struct {
	destinations repository.DestinationRepo
	plans        repository.TravelPlanRepo
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewCatalogService(
	destinations repository.DestinationRepo,
	plans repository.TravelPlanRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		destinations: destinations,
		plans:        plans,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Seed(ctx context.Context) (*app.CatalogImportResult, error) {
	schema, err := importer.SeedSchema()
	if err != nil {
		return nil, fmt.Errorf("loading seed catalog: %w", err)
	}
	return s.importSchema(ctx, "seed_catalog", schema)
}

func (s *catalogService) ImportFile(ctx context.Context, path string) (*app.CatalogImportResult, error) {
	schema, err := importer.LoadCatalogSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog file: %w", err)
	}
	return s.importSchema(ctx, "import_catalog", schema)
}

func (s *catalogService) ImportSchema(ctx context.Context, schema *importer.CatalogSchema) (*app.CatalogImportResult, error) {
	return s.importSchema(ctx, "import_catalog", schema)
}

// importSchema persists the catalog atomically. Destinations that already
// exist (by case-insensitive name) keep their id and are reported as skipped;
// their plans are still upserted.
func (s *catalogService) importSchema(ctx context.Context, name string, schema *importer.CatalogSchema) (result *app.CatalogImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if result != nil {
			fields["destinations"] = result.Destinations
			fields["plans"] = result.Plans
			fields["skipped"] = len(result.Skipped)
		}
		observe(ctx, s.observer, name, startedAt, err, fields)
	}()

	if errs := importer.ValidateCatalogSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	generated := importer.Convert(schema)

	result = &app.CatalogImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txDestinations := repository.NewSQLiteDestinationRepo(tx)
		txPlans := repository.NewSQLiteTravelPlanRepo(tx)

		ids := make(map[string]string, len(generated.Destinations))
		for _, d := range generated.Destinations {
			existing, err := txDestinations.GetByName(ctx, d.Name)
			switch {
			case err == nil:
				ids[strings.ToLower(d.Name)] = existing.ID
				result.Skipped = append(result.Skipped, existing.Name)
				continue
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}
			if err := txDestinations.Create(ctx, d); err != nil {
				return fmt.Errorf("creating destination %q: %w", d.Name, err)
			}
			ids[strings.ToLower(d.Name)] = d.ID
			result.Destinations++
		}

		for _, p := range generated.Plans {
			id, ok := ids[strings.ToLower(p.DestinationName)]
			if !ok {
				return fmt.Errorf("plan for unknown destination %q", p.DestinationName)
			}
			if err := txPlans.Upsert(ctx, id, p.Tier, p.Plan); err != nil {
				return fmt.Errorf("storing %s plan for %q: %w", p.Tier, p.DestinationName, err)
			}
			result.Plans++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *catalogService) GetTravelPlans(ctx context.Context, destination string) (*domain.TravelPlans, error) {
	return s.plans.GetByDestinationName(ctx, destination)
}

func (s *catalogService) ListDestinations(ctx context.Context, popularOnly bool) ([]*domain.Destination, error) {
	return s.destinations.List(ctx, popularOnly)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// CatalogPlanProvider serves plans from the local SQLite catalog. It is the
// app.PlanProvider used offline and by the HTTP server.
type CatalogPlanProvider struct {
	catalog CatalogService
}

var _ app.PlanProvider = (*CatalogPlanProvider)(nil)

func NewCatalogPlanProvider(catalog CatalogService) *CatalogPlanProvider {
	return &CatalogPlanProvider{catalog: catalog}
}

func (p *CatalogPlanProvider) FetchItineraryPlan(ctx context.Context, destination string, tier domain.BudgetTier) (*domain.ItineraryPlan, error) {
	plans, err := p.catalog.GetTravelPlans(ctx, destination)
	if err != nil {
		return nil, catalogError(err)
	}
	plan := plans.Plan(tier)
	if plan == nil {
		return nil, fmt.Errorf("%s plan for %q: %w", tier, destination, app.ErrNotFound)
	}
	return plan, nil
}

func (p *CatalogPlanProvider) ListDestinations(ctx context.Context, popularOnly bool) ([]*domain.Destination, error) {
	dests, err := p.catalog.ListDestinations(ctx, popularOnly)
	if err != nil {
		return nil, catalogError(err)
	}
	return dests, nil
}

// catalogError maps repository failures onto the collaborator taxonomy.
func catalogError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", app.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", app.ErrUnavailable, err)
}
