package catalog

import (
	"testing"
)

func sampleLessons() []Lesson {
	return []Lesson{
		{ID: "l-1", Subject: "Piano", Location: "Online", Price: 30, Spaces: 5},
		{ID: "l-2", Subject: "Guitar", Location: "London", Price: 25, Spaces: 3},
		{ID: "l-3", Subject: "Violin", Location: "online", Price: 40, Spaces: 1},
		{ID: "l-4", Subject: "Drums", Location: "Manchester", Price: 20, Spaces: 8},
	}
}

func TestFilterByLocationIdentity(t *testing.T) {
	t.Parallel()

	lessons := sampleLessons()
	got := FilterByLocation(lessons, FilterAll)
	if len(got) != len(lessons) {
		t.Fatalf("FilterAll returned %d lessons, want %d", len(got), len(lessons))
	}
}

func TestFilterByLocationPartitions(t *testing.T) {
	t.Parallel()

	lessons := sampleLessons()
	online := FilterByLocation(lessons, FilterOnline)
	inPerson := FilterByLocation(lessons, FilterInPerson)

	if len(online)+len(inPerson) != len(lessons) {
		t.Fatalf("partition not exhaustive: %d + %d != %d", len(online), len(inPerson), len(lessons))
	}

	seen := map[string]int{}
	for _, lesson := range online {
		if !lesson.Online() {
			t.Fatalf("lesson %q in online partition has location %q", lesson.ID, lesson.Location)
		}
		seen[lesson.ID]++
	}
	for _, lesson := range inPerson {
		if lesson.Online() {
			t.Fatalf("lesson %q in in-person partition has location %q", lesson.ID, lesson.Location)
		}
		seen[lesson.ID]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("lesson %q appears %d times across partitions", id, count)
		}
	}
}

func TestSortBySubject(t *testing.T) {
	t.Parallel()

	sorted := Sort(sampleLessons(), SortSubject)
	want := []string{"Drums", "Guitar", "Piano", "Violin"}
	for i, subject := range want {
		if sorted[i].Subject != subject {
			t.Fatalf("sorted[%d].Subject = %q, want %q", i, sorted[i].Subject, subject)
		}
	}
}

func TestSortByPriceDescReversesPriceAsc(t *testing.T) {
	t.Parallel()

	lessons := sampleLessons() // no price ties
	asc := Sort(lessons, SortPriceAsc)
	desc := Sort(lessons, SortPriceDesc)

	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("asc[%d] = %q, want mirror of desc %q", i, asc[i].ID, desc[len(desc)-1-i].ID)
		}
	}
}

func TestSortBySpacesDesc(t *testing.T) {
	t.Parallel()

	sorted := Sort(sampleLessons(), SortSpacesDesc)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Spaces < sorted[i].Spaces {
			t.Fatalf("spaces out of order at %d: %d < %d", i, sorted[i-1].Spaces, sorted[i].Spaces)
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	lessons := sampleLessons()
	original := make([]Lesson, len(lessons))
	copy(original, lessons)

	_ = Sort(lessons, SortPriceAsc)

	for i := range lessons {
		if lessons[i].ID != original[i].ID {
			t.Fatalf("input mutated at %d: %q != %q", i, lessons[i].ID, original[i].ID)
		}
	}
}

func TestSortNoneKeepsInputOrder(t *testing.T) {
	t.Parallel()

	lessons := sampleLessons()
	sorted := Sort(lessons, SortNone)
	for i := range lessons {
		if sorted[i].ID != lessons[i].ID {
			t.Fatalf("order changed at %d: %q != %q", i, sorted[i].ID, lessons[i].ID)
		}
	}
}
