// Package storefront implements the storefront CLI: it wires the durable
// store, the backend client, and the app state container, then renders the
// visible catalog and session state to the terminal.
package storefront

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/paulkamani9/overtune/internal/app"
	"github.com/paulkamani9/overtune/internal/backend"
	"github.com/paulkamani9/overtune/internal/cart"
	"github.com/paulkamani9/overtune/internal/catalog"
	"github.com/paulkamani9/overtune/internal/platform/config"
	"github.com/paulkamani9/overtune/internal/session"
	bboltstore "github.com/paulkamani9/overtune/internal/storage/bbolt"
)

// Config holds storefront command configuration. Environment variables
// provide the defaults; flags override them.
type Config struct {
	BackendURL  string        `env:"OVERTUNE_BACKEND_URL" envDefault:"http://localhost:3000"`
	StoragePath string        `env:"OVERTUNE_STORAGE_PATH" envDefault:"overtune.db"`
	HTTPTimeout time.Duration `env:"OVERTUNE_HTTP_TIMEOUT" envDefault:"30s"`

	Search   string
	Location catalog.LocationFilter
	Sort     catalog.SortKey
}

// ParseConfig parses environment variables and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	var location, sortKey string
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.StoragePath, "storage-path", cfg.StoragePath, "local storage file path")
	fs.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "backend request timeout")
	fs.StringVar(&cfg.Search, "search", "", "search query (default: full catalog)")
	fs.StringVar(&location, "location", "all", "location filter (all, online, in-person)")
	fs.StringVar(&sortKey, "sort", "none", "sort key (none, subject, price-asc, price-desc, spaces)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	cfg.Location, err = parseLocation(location)
	if err != nil {
		return Config{}, err
	}
	cfg.Sort, err = parseSort(sortKey)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the storefront command, writing the rendered catalog to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	store, err := bboltstore.Open(cfg.StoragePath)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return err
	}

	a := app.New(app.Options{
		Catalog:     client,
		Orders:      client,
		Session:     session.NewController(client, store),
		Cart:        cart.NewEngine(store),
		Preferences: store,
	})
	a.Init(ctx)

	a.SetLocationFilter(cfg.Location)
	a.SetSortKey(cfg.Sort)
	if cfg.Search != "" {
		if err := a.Search(ctx, cfg.Search); err != nil {
			return err
		}
	}

	return render(a, out)
}

func render(a *app.App, out io.Writer) error {
	if a.Authenticated() {
		profile := a.Profile()
		fmt.Fprintf(out, "Signed in as %s <%s>\n\n", profile.Name, profile.Email)
	}

	lessons := a.VisibleLessons()
	if len(lessons) == 0 {
		fmt.Fprintln(out, "No lessons found.")
		return nil
	}

	for _, lesson := range lessons {
		location := lesson.Location
		when := catalog.FormatDate(lesson.Date)
		if when != "" {
			location = fmt.Sprintf("%s, %s", location, when)
		}
		fmt.Fprintf(out, "%-12s %-24s %-40s %10s  %d spaces\n",
			catalog.Classify(lesson.Subject),
			lesson.Subject,
			location,
			catalog.FormatPrice(lesson.Price),
			lesson.Spaces,
		)
	}

	if entries := a.CartEntries(); len(entries) > 0 {
		fmt.Fprintf(out, "\nCart: %d item(s), total %s\n", len(entries), catalog.FormatPrice(a.CartTotal()))
	}
	return nil
}

func parseLocation(value string) (catalog.LocationFilter, error) {
	switch value {
	case "all":
		return catalog.FilterAll, nil
	case "online":
		return catalog.FilterOnline, nil
	case "in-person":
		return catalog.FilterInPerson, nil
	}
	return catalog.FilterAll, fmt.Errorf("unknown location filter %q (valid: all, online, in-person)", value)
}

func parseSort(value string) (catalog.SortKey, error) {
	switch value {
	case "none":
		return catalog.SortNone, nil
	case "subject":
		return catalog.SortSubject, nil
	case "price-asc":
		return catalog.SortPriceAsc, nil
	case "price-desc":
		return catalog.SortPriceDesc, nil
	case "spaces":
		return catalog.SortSpacesDesc, nil
	}
	return catalog.SortNone, fmt.Errorf("unknown sort key %q (valid: none, subject, price-asc, price-desc, spaces)", value)
}
