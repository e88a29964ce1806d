// Package cart implements the storefront cart engine: the single source of
// truth for cart entries, their quantity bounds against lesson capacity,
// and the persisted cart mirror.
package cart

import (
	"context"
	"errors"
	"log"

	"github.com/paulkamani9/overtune/internal/catalog"
	"github.com/paulkamani9/overtune/internal/storage"
)

// Entry is one cart line: a lesson and how many of its spaces are claimed.
// Every entry satisfies 1 <= Quantity <= Lesson.Spaces.
type Entry struct {
	Lesson   catalog.Lesson `json:"lesson"`
	Quantity int            `json:"quantity"`
}

// Store persists the serialized cart between visits. Saves overwrite the
// whole entry list.
type Store interface {
	SaveCart(ctx context.Context, entries []Entry) error
	LoadCart(ctx context.Context) ([]Entry, error)
}

// Engine owns the cart entries. Every mutating operation persists the full
// cart afterwards; persistence failures are logged and swallowed, never
// rolled back. The engine is not safe for concurrent use; callers serialize
// access.
type Engine struct {
	entries []Entry
	store   Store
}

// NewEngine creates a cart engine. A nil store leaves the cart in-memory
// only.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Restore loads the persisted cart. A missing or unreadable record restores
// an empty cart. Entries with a blank lesson ID or a quantity outside the
// lesson's capacity are dropped.
func (e *Engine) Restore(ctx context.Context) {
	e.entries = nil
	if e.store == nil {
		return
	}
	loaded, err := e.store.LoadCart(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("restore cart: %v", err)
		}
		return
	}
	for _, entry := range loaded {
		if entry.Lesson.ID == "" || entry.Quantity < 1 || entry.Quantity > entry.Lesson.Spaces {
			continue
		}
		e.entries = append(e.entries, entry)
	}
}

// Add puts one space of the lesson in the cart. An existing entry gains one
// only while it stays within the lesson's capacity; at the ceiling the call
// is a silent no-op. A lesson with no spaces left is rejected outright.
// Reports whether the cart changed.
func (e *Engine) Add(ctx context.Context, lesson catalog.Lesson) bool {
	if lesson.ID == "" || lesson.Spaces < 1 {
		return false
	}
	for i := range e.entries {
		if e.entries[i].Lesson.ID != lesson.ID {
			continue
		}
		if e.entries[i].Quantity >= lesson.Spaces {
			return false
		}
		e.entries[i].Quantity++
		e.persist(ctx)
		return true
	}
	e.entries = append(e.entries, Entry{Lesson: lesson, Quantity: 1})
	e.persist(ctx)
	return true
}

// SetQuantity adjusts an entry's quantity by delta. A result of zero or
// below removes the entry; a result above the lesson's capacity leaves the
// quantity unchanged. Reports whether the cart changed.
func (e *Engine) SetQuantity(ctx context.Context, lessonID string, delta int) bool {
	for i := range e.entries {
		if e.entries[i].Lesson.ID != lessonID {
			continue
		}
		next := e.entries[i].Quantity + delta
		if next <= 0 {
			return e.Remove(ctx, lessonID)
		}
		if next > e.entries[i].Lesson.Spaces {
			return false
		}
		e.entries[i].Quantity = next
		e.persist(ctx)
		return true
	}
	return false
}

// Remove drops the entry for the lesson ID. Reports whether an entry was
// removed.
func (e *Engine) Remove(ctx context.Context, lessonID string) bool {
	for i := range e.entries {
		if e.entries[i].Lesson.ID != lessonID {
			continue
		}
		e.entries = append(e.entries[:i], e.entries[i+1:]...)
		e.persist(ctx)
		return true
	}
	return false
}

// Clear drops all entries.
func (e *Engine) Clear(ctx context.Context) {
	if len(e.entries) == 0 {
		return
	}
	e.entries = nil
	e.persist(ctx)
}

// Total is the sum of price times quantity over all entries; zero for an
// empty cart.
func (e *Engine) Total() float64 {
	var total float64
	for _, entry := range e.entries {
		total += entry.Lesson.Price * float64(entry.Quantity)
	}
	return total
}

// Entries returns a copy of the current cart lines.
func (e *Engine) Entries() []Entry {
	entries := make([]Entry, len(e.entries))
	copy(entries, e.entries)
	return entries
}

// Len is the number of cart lines.
func (e *Engine) Len() int {
	return len(e.entries)
}

func (e *Engine) persist(ctx context.Context) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveCart(ctx, e.entries); err != nil {
		log.Printf("save cart: %v", err)
	}
}
