package catalog

import "sort"

// LocationFilter selects which lesson locations the derived view keeps.
type LocationFilter int

const (
	// FilterAll keeps every lesson.
	FilterAll LocationFilter = iota
	// FilterOnline keeps lessons held remotely.
	FilterOnline
	// FilterInPerson keeps lessons not held remotely.
	FilterInPerson
)

// SortKey selects the ordering applied to the derived view.
type SortKey int

const (
	// SortNone leaves the input order unchanged.
	SortNone SortKey = iota
	// SortSubject orders lexicographically by subject, ascending.
	SortSubject
	// SortPriceAsc orders by price, cheapest first.
	SortPriceAsc
	// SortPriceDesc orders by price, most expensive first.
	SortPriceDesc
	// SortSpacesDesc orders by remaining spaces, fullest availability first.
	SortSpacesDesc
)

// FilterByLocation derives the visible lesson list for a location filter.
// FilterAll is the identity; FilterOnline and FilterInPerson partition the
// input into disjoint, exhaustive subsets.
func FilterByLocation(lessons []Lesson, filter LocationFilter) []Lesson {
	if filter == FilterAll {
		return lessons
	}
	filtered := make([]Lesson, 0, len(lessons))
	for _, lesson := range lessons {
		switch filter {
		case FilterOnline:
			if lesson.Online() {
				filtered = append(filtered, lesson)
			}
		case FilterInPerson:
			if !lesson.Online() {
				filtered = append(filtered, lesson)
			}
		}
	}
	return filtered
}

// Sort returns a new ordered copy of lessons; the input slice is never
// mutated. SortNone returns a copy in the original order.
func Sort(lessons []Lesson, key SortKey) []Lesson {
	sorted := make([]Lesson, len(lessons))
	copy(sorted, lessons)
	switch key {
	case SortSubject:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Subject < sorted[j].Subject
		})
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortSpacesDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Spaces > sorted[j].Spaces
		})
	}
	return sorted
}
