package app

import (
	"context"
	"fmt"

	"github.com/tqc04/basket/internal/cart"
	"github.com/tqc04/basket/internal/compare"
	"github.com/tqc04/basket/internal/config"
	"github.com/tqc04/basket/internal/favorites"
	"github.com/tqc04/basket/internal/notify"
	"github.com/tqc04/basket/internal/prefs"
	"github.com/tqc04/basket/internal/search"
	"github.com/tqc04/basket/internal/session"
	"github.com/tqc04/basket/internal/shopapi"
	"github.com/tqc04/basket/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/basket/prefs.toml
	APIBase    string // overrides the configured gateway endpoint
	UserID     string // overrides the configured account
}

// Run boots the storefront TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}
	if opts.UserID != "" {
		cfg.UserID = opts.UserID
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := shopapi.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	bus := notify.NewBus()
	sess := session.New()

	cartStore := cart.New(client, sess, bus)
	favStore := favorites.New(client, sess, bus)
	compareStore := compare.New(compare.NewFilePersister(cfg.StateDir), bus)
	suggester := search.NewSuggester(client)

	// Stores react to sign-in and sign-out on their own from here on.
	cartStore.WatchSession(ctx)
	favStore.WatchSession(ctx)

	if cfg.UserID != "" {
		// Login triggers the watchers, which load the cart and
		// favorites in the background before the first render.
		sess.Login(cfg.UserID)
	} else {
		go cartStore.Refresh(ctx)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Backend:   client,
		Cart:      cartStore,
		Favorites: favStore,
		Compare:   compareStore,
		Session:   sess,
		Bus:       bus,
		Suggester: suggester,
		LoginAs:   cfg.UserID,
		ThemeName: userPrefs.Theme,
		StartView: userPrefs.StartView,
		PageSize:  userPrefs.PageSize,
		PrefsPath: opts.PrefsPath,
	})
}
