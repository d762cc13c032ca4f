package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tqc04/basket/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env in the working directory feeds the BASKET_*
	// overrides, matching local development habits.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "override config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	apiBase := flag.String("api", "", "override gateway endpoint (optional)")
	userID := flag.String("user", "", "sign in as this account on startup (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		APIBase:    *apiBase,
		UserID:     *userID,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "basket: %v\n", err)
		return 1
	}
	return 0
}
