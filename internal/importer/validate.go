package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/telos/internal/domain"
)

// ValidatePlanSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanSchema(schema *PlanSchema) []error {
	var errs []error

	errs = append(errs, validatePlan(&schema.Plan)...)

	itemRefs := make(map[string]bool)
	errs = append(errs, validateItems(schema.Items, itemRefs)...)
	errs = append(errs, validatePredecessors(schema.Items, itemRefs)...)

	return errs
}

func validatePlan(p *PlanImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("plan.name is required"))
	}
	if p.ShortID != "" {
		probe := domain.Plan{ShortID: p.ShortID}
		if err := probe.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("plan.short_id: %w", err))
		}
	}
	if p.StartDate == "" {
		errs = append(errs, fmt.Errorf("plan.start_date is required"))
	} else if _, err := time.Parse("2006-01-02", p.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("plan.start_date: invalid date format %q (expected YYYY-MM-DD)", p.StartDate))
	}

	return errs
}

func validateItems(items []ItemImport, itemRefs map[string]bool) []error {
	var errs []error

	for i, it := range items {
		prefix := fmt.Sprintf("items[%d]", i)

		if it.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if itemRefs[it.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, it.Ref))
		} else {
			itemRefs[it.Ref] = true
		}

		if it.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if it.DurationDays != nil && *it.DurationDays < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_days must be >= 0, got %d", prefix, *it.DurationDays))
		}
		errs = append(errs, validateOptionalDate(prefix+".start_date", it.StartDate)...)

		if it.Pinned != nil && *it.Pinned && (it.StartDate == nil || *it.StartDate == "") {
			errs = append(errs, fmt.Errorf("%s: pinned item requires a start_date", prefix))
		}
	}

	return errs
}

func validatePredecessors(items []ItemImport, itemRefs map[string]bool) []error {
	var errs []error

	for i, it := range items {
		seen := make(map[string]bool)
		for j, p := range it.Predecessors {
			prefix := fmt.Sprintf("items[%d].predecessors[%d]", i, j)

			if p.Ref == "" {
				errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
				continue
			}
			if !itemRefs[p.Ref] {
				errs = append(errs, fmt.Errorf("%s.ref: ref %q not found in items", prefix, p.Ref))
			}
			if p.Ref == it.Ref {
				errs = append(errs, fmt.Errorf("%s: self-dependency (item %q depends on itself)", prefix, it.Ref))
			}
			if seen[p.Ref] {
				errs = append(errs, fmt.Errorf("%s: duplicate predecessor %q for item %q", prefix, p.Ref, it.Ref))
			}
			seen[p.Ref] = true

			if p.Type != "" {
				if _, err := domain.ParseDependencyType(p.Type); err != nil {
					errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
				}
			}
		}
	}

	errs = append(errs, detectCycles(items)...)

	return errs
}

func detectCycles(items []ItemImport) []error {
	// Adjacency from predecessor to dependent
	adj := make(map[string][]string)
	nodes := make(map[string]bool)
	for _, it := range items {
		for _, p := range it.Predecessors {
			if p.Ref == "" || p.Ref == it.Ref {
				continue
			}
			adj[p.Ref] = append(adj[p.Ref], it.Ref)
			nodes[p.Ref] = true
			nodes[it.Ref] = true
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, neighbor := range adj[node] {
			if color[neighbor] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", node, neighbor))
				return true
			}
			if color[neighbor] == white {
				if visit(neighbor) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}

	return errs
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil || *dateStr == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
