package importer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/itinera/internal/contract"
)

// CatalogSchema is the top-level JSON structure for catalog import.
type CatalogSchema struct {
	Destinations []DestinationImport `json:"destinations"`
	Plans        []PlanSetImport     `json:"plans,omitempty"`
}

// DestinationImport defines one destination in the import file.
type DestinationImport struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Popular  bool    `json:"popular"`
	ImageURL *string `json:"image_url,omitempty"`
}

// PlanSetImport holds the tier plans for one destination, keyed by tier wire
// value. Destination must name an entry of Destinations.
type PlanSetImport struct {
	Destination string                         `json:"destination"`
	Tiers       map[string]contract.BudgetPlan `json:"tiers"`
}

//go:embed seed/catalog.json
var seedCatalog []byte

// SeedSchema returns the built-in catalog shipped with the binary.
func SeedSchema() (*CatalogSchema, error) {
	return ParseCatalogSchema(seedCatalog)
}

// LoadCatalogSchema reads and parses a catalog import JSON file.
func LoadCatalogSchema(path string) (*CatalogSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalogSchema(data)
}

func ParseCatalogSchema(data []byte) (*CatalogSchema, error) {
	var schema CatalogSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &schema, nil
}
