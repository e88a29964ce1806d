// Package catalog holds the lesson domain model and the pure view
// derivations (location filtering, sorting, subject classification) applied
// to it.
package catalog

import (
	"strings"
	"time"
)

// Lesson is a bookable lesson as supplied by the backend. It is read-only
// to the storefront engine; the lesson list is replaced wholesale on every
// successful fetch.
type Lesson struct {
	ID       string     `json:"id"`
	Subject  string     `json:"subject"`
	Location string     `json:"location"`
	Price    float64    `json:"price"`
	Spaces   int        `json:"spaces"`
	Date     *time.Time `json:"date,omitempty"`
}

// Online reports whether the lesson is held remotely. Any location other
// than a case-insensitive "online" counts as in-person.
func (l Lesson) Online() bool {
	return strings.EqualFold(strings.TrimSpace(l.Location), "online")
}

// Category groups lesson subjects for presentation. It carries no state
// implications.
type Category string

const (
	CategoryPiano     Category = "piano"
	CategoryGuitar    Category = "guitar"
	CategoryVocal     Category = "vocal"
	CategoryDrum      Category = "drum"
	CategoryViolin    Category = "violin"
	CategoryTheory    Category = "theory"
	CategorySaxophone Category = "saxophone"
	CategoryBass      Category = "bass"
	CategoryMusic     Category = "music"
)

// classificationTable maps subject keywords to categories. Order matters:
// the first keyword contained in the subject wins.
var classificationTable = []struct {
	keyword  string
	category Category
}{
	{"piano", CategoryPiano},
	{"guitar", CategoryGuitar},
	{"vocal", CategoryVocal},
	{"drum", CategoryDrum},
	{"violin", CategoryViolin},
	{"theory", CategoryTheory},
	{"saxophone", CategorySaxophone},
	{"bass", CategoryBass},
}

// Classify matches a lesson subject against the keyword table,
// case-insensitively and by substring, falling back to the generic music
// category.
func Classify(subject string) Category {
	lowered := strings.ToLower(subject)
	for _, row := range classificationTable {
		if strings.Contains(lowered, row.keyword) {
			return row.category
		}
	}
	return CategoryMusic
}

// Icon returns the display icon class for the category.
func (c Category) Icon() string {
	switch c {
	case CategoryPiano:
		return "fas fa-piano"
	case CategoryGuitar, CategoryBass:
		return "fas fa-guitar"
	case CategoryVocal:
		return "fas fa-microphone"
	case CategoryDrum:
		return "fas fa-drum"
	case CategoryViolin:
		return "fas fa-violin"
	case CategoryTheory:
		return "fas fa-book-open"
	case CategorySaxophone:
		return "fas fa-saxophone"
	default:
		return "fas fa-music"
	}
}
