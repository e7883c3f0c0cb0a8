package domain

import (
	"fmt"
	"strings"
)

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanPaused   PlanStatus = "paused"
	PlanDone     PlanStatus = "done"
	PlanArchived PlanStatus = "archived"
)

// DependencyType selects the date rule a predecessor edge applies.
type DependencyType string

const (
	FinishToStart  DependencyType = "FS"
	StartToStart   DependencyType = "SS"
	FinishToFinish DependencyType = "FF"
	StartToFinish  DependencyType = "SF"
)

// ValidDependencyTypes is the canonical set of accepted dependency type strings.
var ValidDependencyTypes = map[string]bool{
	"FS": true, "SS": true, "FF": true, "SF": true,
}

// ParseDependencyType normalizes and validates a dependency type string.
func ParseDependencyType(s string) (DependencyType, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if !ValidDependencyTypes[upper] {
		return "", fmt.Errorf("invalid dependency type %q (expected FS, SS, FF or SF)", s)
	}
	return DependencyType(upper), nil
}
