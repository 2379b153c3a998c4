package gamification

import (
	"sort"
	"strings"
)

// muscleGroupOrder is the canonical display order for muscle groups.
var muscleGroupOrder = []string{
	"Chest",
	"Back",
	"Shoulders",
	"Biceps",
	"Triceps",
	"Forearms",
	"Quads",
	"Hamstrings",
	"Glutes",
	"Calves",
	"Core",
	"Full Body",
}

func muscleGroupIndex(name string) int {
	for i, g := range muscleGroupOrder {
		if g == name {
			return i
		}
	}
	return -1
}

// SortMuscleGroups orders items by the canonical muscle-group order. Unknown
// groups sort after known ones, alphabetically.
func SortMuscleGroups[T any](items []T, group func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := muscleGroupIndex(group(items[i])), muscleGroupIndex(group(items[j]))
		switch {
		case a == -1 && b == -1:
			return strings.Compare(group(items[i]), group(items[j])) < 0
		case a == -1:
			return false
		case b == -1:
			return true
		default:
			return a < b
		}
	})
}
