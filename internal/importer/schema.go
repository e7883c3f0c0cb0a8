package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlanSchema is the top-level JSON structure for plan import and export.
type PlanSchema struct {
	Plan  PlanImport   `json:"plan"`
	Items []ItemImport `json:"items"`
}

// PlanImport defines the plan-level fields in the import file.
type PlanImport struct {
	ShortID   string `json:"short_id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
}

// ItemImport defines a plan item in the import file. Refs are file-local
// identifiers; real IDs are assigned during conversion.
type ItemImport struct {
	Ref          string              `json:"ref"`
	Title        string              `json:"title"`
	SortOrder    *int                `json:"sort_order,omitempty"`
	DurationDays *int                `json:"duration_days,omitempty"`
	StartDate    *string             `json:"start_date,omitempty"`
	Pinned       *bool               `json:"pinned,omitempty"`
	Predecessors []PredecessorImport `json:"predecessors,omitempty"`
}

// PredecessorImport defines one dependency edge of an item.
type PredecessorImport struct {
	Ref     string `json:"ref"`
	Type    string `json:"type,omitempty"` // defaults to FS
	LagDays *int   `json:"lag_days,omitempty"`
}

// LoadPlanSchema reads and parses a plan import JSON file.
func LoadPlanSchema(path string) (*PlanSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema PlanSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// WritePlanSchema serializes a schema as indented JSON.
func WritePlanSchema(schema *PlanSchema, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan schema: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
