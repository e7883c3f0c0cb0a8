package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolvePlanID turns user input (short ID, full UUID, or UUID prefix) into
// a plan ID.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan is required (use --plan)")
	}

	plans, err := app.Plans.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}
	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItemID matches input against item titles (case-insensitive), full
// IDs, then ID prefixes within one plan.
func resolveItemID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("item is required")
	}

	items, err := app.Items.ListByPlan(ctx, planID)
	if err != nil {
		return "", err
	}

	for _, it := range items {
		if strings.EqualFold(it.Title, input) {
			return it.ID, nil
		}
	}
	for _, it := range items {
		if it.ID == input {
			return it.ID, nil
		}
	}

	var matches []string
	for _, it := range items {
		if strings.HasPrefix(it.ID, input) {
			matches = append(matches, it.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("item not found in plan: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveItemIDs resolves a list of item references, preserving order.
func resolveItemIDs(ctx context.Context, app *App, planID string, inputs []string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		id, err := resolveItemID(ctx, app, planID, in)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
