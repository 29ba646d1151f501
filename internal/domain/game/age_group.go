package game

import (
	"strconv"
	"strings"
)

// ageGroupMinimums maps named age groups to their minimum age
var ageGroupMinimums = map[string]int{
	"preschool":    3,
	"early_reader": 4,
	"middle_grade": 8,
	"young_adult":  12,
}

// ResolveMinimumAge resolves an age group to its minimum age. Named groups
// are looked up first; otherwise the value is parsed as an "N-M" numeric
// range and the lower bound returned. Unresolvable groups report ok=false
// so callers can skip compatibility checks (permissive default).
func ResolveMinimumAge(groupNameOrRange string) (int, bool) {
	name := strings.ToLower(strings.TrimSpace(groupNameOrRange))
	if name == "" {
		return 0, false
	}

	if min, ok := ageGroupMinimums[name]; ok {
		return min, true
	}

	parts := strings.SplitN(name, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}

	low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, false
	}

	return low, true
}
