package app

import (
	"context"
	"log"
	"strings"
)

// RefreshLessons replaces the catalog with a fresh full fetch. On failure
// the prior list is kept and the error returned. The loading flag clears
// when the fetch completes, success or not.
func (a *App) RefreshLessons(ctx context.Context) error {
	a.mu.Lock()
	a.catalogSeq++
	seq := a.catalogSeq
	a.loading = true
	a.mu.Unlock()

	lessons, err := a.catalogGateway.Lessons(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		return err
	}
	if seq != a.catalogSeq {
		// A newer request superseded this one; drop the stale response.
		return nil
	}
	a.lessons = lessons
	return nil
}

// SetSearchQuery records the typed query and schedules the debounced
// search. A newer keystroke cancels the pending one, so only the most
// recent query after the quiesce window triggers a fetch.
func (a *App) SetSearchQuery(ctx context.Context, query string) {
	a.mu.Lock()
	a.searchQuery = query
	a.mu.Unlock()

	a.debouncer.Schedule(func() {
		if err := a.runSearch(ctx, query); err != nil {
			log.Printf("search lessons: %v", err)
		}
	})
}

// Search runs a query immediately, bypassing the debounce window. Any
// pending debounced search is cancelled first.
func (a *App) Search(ctx context.Context, query string) error {
	a.debouncer.Cancel()
	a.mu.Lock()
	a.searchQuery = query
	a.mu.Unlock()
	return a.runSearch(ctx, query)
}

// SearchQuery returns the current typed query.
func (a *App) SearchQuery() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.searchQuery
}

// runSearch issues the backend search for query, or falls back to a full
// fetch when the query is blank. Stale responses are dropped by sequence
// tag.
func (a *App) runSearch(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return a.RefreshLessons(ctx)
	}

	a.mu.Lock()
	a.catalogSeq++
	seq := a.catalogSeq
	a.loading = true
	a.mu.Unlock()

	lessons, err := a.catalogGateway.Search(ctx, query)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		return err
	}
	if seq != a.catalogSeq {
		return nil
	}
	a.lessons = lessons
	return nil
}

// VoiceSearchSupported reports whether the speech capability is available.
func (a *App) VoiceSearchSupported() bool {
	return a.recognizer.Supported()
}

// StartVoiceSearch begins listening for a spoken query. The final
// transcript is consumed exactly like a typed query, bypassing the
// debounce window. Without speech support the call reports unavailable and
// manual search remains the only path.
func (a *App) StartVoiceSearch(ctx context.Context) error {
	return a.recognizer.Start(
		func(transcript string) {
			if err := a.Search(ctx, transcript); err != nil {
				log.Printf("voice search: %v", err)
			}
		},
		func(err error) {
			log.Printf("speech recognition: %v", err)
		},
	)
}

// StopVoiceSearch stops any active listening session.
func (a *App) StopVoiceSearch() {
	a.recognizer.Stop()
}
