// Package app hosts the storefront state container: the single set of
// mutation entry points through which catalog, cart, session, and view
// state change together. A mutex serializes state application so every
// asynchronous continuation runs to completion before the next one.
package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/paulkamani9/overtune/internal/backend"
	"github.com/paulkamani9/overtune/internal/cart"
	"github.com/paulkamani9/overtune/internal/catalog"
	"github.com/paulkamani9/overtune/internal/search"
	"github.com/paulkamani9/overtune/internal/session"
	"github.com/paulkamani9/overtune/internal/storage"
)

// CatalogGateway loads the lesson list, whole or filtered by a backend
// search. A successful result always replaces the current list.
type CatalogGateway interface {
	Lessons(ctx context.Context) ([]catalog.Lesson, error)
	Search(ctx context.Context, query string) ([]catalog.Lesson, error)
}

// OrderGateway submits orders and loads user-scoped order history.
type OrderGateway interface {
	Orders(ctx context.Context, token string) ([]backend.Order, error)
	SubmitOrder(ctx context.Context, token string, order backend.OrderRequest) error
}

// PreferenceStore persists display preferences between visits.
type PreferenceStore interface {
	SaveTheme(ctx context.Context, theme string) error
	LoadTheme(ctx context.Context) (string, error)
}

// CheckoutForm carries the buyer details submitted with an order. Profile
// fields pre-filled from a session are trusted as-is.
type CheckoutForm struct {
	Name  string
	Phone string
}

// Options wires the app's collaborators.
type Options struct {
	Catalog          CatalogGateway
	Orders           OrderGateway
	Session          *session.Controller
	Cart             *cart.Engine
	Preferences      PreferenceStore
	Recognizer       search.Recognizer
	DebounceInterval time.Duration
}

// App is the storefront state container.
type App struct {
	mu sync.Mutex

	catalogGateway CatalogGateway
	orderGateway   OrderGateway
	session        *session.Controller
	cart           *cart.Engine
	prefs          PreferenceStore
	debouncer      *search.Debouncer
	recognizer     search.Recognizer

	lessons     []catalog.Lesson
	orders      []backend.Order
	filter      catalog.LocationFilter
	sortKey     catalog.SortKey
	searchQuery string

	// catalogSeq tags list-replacing requests; a response whose tag is no
	// longer current is discarded instead of clobbering fresher state.
	catalogSeq uint64

	overlay Overlay
	page    Page

	checkoutForm  CheckoutForm
	checkoutError string

	darkMode bool

	loading         bool
	authLoading     bool
	checkoutLoading bool
}

// New creates the app. Catalog, Orders, Session, and Cart are required;
// a nil Recognizer degrades voice search to unsupported.
func New(opts Options) *App {
	recognizer := opts.Recognizer
	if recognizer == nil {
		recognizer = search.Unavailable()
	}
	return &App{
		catalogGateway: opts.Catalog,
		orderGateway:   opts.Orders,
		session:        opts.Session,
		cart:           opts.Cart,
		prefs:          opts.Preferences,
		debouncer:      search.NewDebouncer(opts.DebounceInterval),
		recognizer:     recognizer,
	}
}

// Init restores persisted state and performs the initial fetches: cart and
// session from storage, theme preference, the lesson catalog, and the order
// history when a session was restored.
func (a *App) Init(ctx context.Context) {
	a.mu.Lock()
	a.cart.Restore(ctx)
	a.session.Restore(ctx)
	a.loadTheme(ctx)
	authenticated := a.session.Authenticated()
	a.mu.Unlock()

	if err := a.RefreshLessons(ctx); err != nil {
		log.Printf("initial lesson fetch: %v", err)
	}
	if authenticated {
		if err := a.RefreshOrders(ctx); err != nil {
			log.Printf("initial order fetch: %v", err)
		}
	}
}

// Lessons returns the raw catalog as last fetched.
func (a *App) Lessons() []catalog.Lesson {
	a.mu.Lock()
	defer a.mu.Unlock()
	lessons := make([]catalog.Lesson, len(a.lessons))
	copy(lessons, a.lessons)
	return lessons
}

// VisibleLessons derives the displayed list from the raw catalog, the
// location filter, and the sort key. Pure recomputation on every call.
func (a *App) VisibleLessons() []catalog.Lesson {
	a.mu.Lock()
	defer a.mu.Unlock()
	return catalog.Sort(catalog.FilterByLocation(a.lessons, a.filter), a.sortKey)
}

// SetLocationFilter narrows the derived view by location.
func (a *App) SetLocationFilter(filter catalog.LocationFilter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filter = filter
}

// SetSortKey re-orders the derived view.
func (a *App) SetSortKey(key catalog.SortKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sortKey = key
}

// Loading reports whether a catalog or order fetch is in flight.
func (a *App) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// DarkMode reports the active theme.
func (a *App) DarkMode() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.darkMode
}

// ToggleTheme flips between dark and light and persists the preference.
func (a *App) ToggleTheme(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.darkMode = !a.darkMode
	theme := "light"
	if a.darkMode {
		theme = "dark"
	}
	if a.prefs == nil {
		return
	}
	if err := a.prefs.SaveTheme(ctx, theme); err != nil {
		log.Printf("save theme: %v", err)
	}
}

// loadTheme reads the persisted preference; anything but "dark" is light.
// Caller holds the lock.
func (a *App) loadTheme(ctx context.Context) {
	a.darkMode = false
	if a.prefs == nil {
		return
	}
	theme, err := a.prefs.LoadTheme(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("load theme: %v", err)
		}
		return
	}
	a.darkMode = theme == "dark"
}

// AddToCart puts one space of the lesson in the cart and opens the cart
// overlay. An add blocked by the inventory ceiling still opens the overlay;
// the bound is visible in the UI, not reported as an error.
func (a *App) AddToCart(ctx context.Context, lesson catalog.Lesson) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cart.Add(ctx, lesson)
	a.overlay = OverlayCart
}

// UpdateQuantity adjusts a cart line by delta, within capacity bounds.
func (a *App) UpdateQuantity(ctx context.Context, lessonID string, delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cart.SetQuantity(ctx, lessonID, delta)
}

// RemoveFromCart drops a cart line.
func (a *App) RemoveFromCart(ctx context.Context, lessonID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cart.Remove(ctx, lessonID)
}

// CartEntries returns the current cart lines.
func (a *App) CartEntries() []cart.Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Entries()
}

// CartTotal is the cart sum in the catalog currency.
func (a *App) CartTotal() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cart.Total()
}
