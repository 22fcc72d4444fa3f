package domain

import "strings"

// Habit represents a habit fetched from the habit service.
// Habits are ephemeral: they are fetched per run for matching purposes only.
type Habit struct {
	// ID is the habit service's identifier, used for the completion call.
	ID string

	// Name is the human-readable habit name.
	Name string
}

// NormalizeName canonicalises a task or habit name for matching.
// Matching is case-insensitive with surrounding whitespace ignored.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// HabitIndex maps normalized names to habits for task matching.
type HabitIndex struct {
	byName map[string]Habit
}

// BuildHabitIndex builds an index over the given habits.
//
// When several habits share a normalized name the first one wins; the
// returned slice holds the normalized names that collided so callers can
// warn about them. The upstream services leave this situation undefined,
// so the behaviour here is first-wins and documented rather than inferred.
func BuildHabitIndex(habits []Habit) (*HabitIndex, []string) {
	idx := &HabitIndex{byName: make(map[string]Habit, len(habits))}

	var collisions []string
	for _, h := range habits {
		key := NormalizeName(h.Name)
		if key == "" {
			continue
		}
		if _, exists := idx.byName[key]; exists {
			collisions = append(collisions, key)
			continue
		}
		idx.byName[key] = h
	}

	return idx, collisions
}

// Match returns the habit whose normalized name equals the task name's
// normalized form.
func (i *HabitIndex) Match(taskName string) (Habit, bool) {
	h, ok := i.byName[NormalizeName(taskName)]
	return h, ok
}

// Len returns the number of distinct normalized names in the index.
func (i *HabitIndex) Len() int {
	return len(i.byName)
}
