package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/mealbridge/donor-cli/internal/config"
	"github.com/mealbridge/donor-cli/internal/draft"
	"github.com/mealbridge/donor-cli/internal/foodposts"
	"github.com/mealbridge/donor-cli/internal/listing"
	"github.com/mealbridge/donor-cli/internal/storage"
	"github.com/mealbridge/donor-cli/internal/store"
	"github.com/mealbridge/donor-cli/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// profileSource adapts the local repository to the draft controller's
// prefill lookup. A read failure counts as no cached profile.
type profileSource struct {
	repo   *storage.Repository
	logger *slog.Logger
}

func (p profileSource) DonorProfile(ctx context.Context) (draft.Profile, bool) {
	stored, ok, err := p.repo.LoadProfile(ctx)
	if err != nil {
		p.logger.Warn("could not load cached profile", "err", err)
		return draft.Profile{}, false
	}
	if !ok {
		return draft.Profile{}, false
	}
	return draft.Profile{Name: stored.Name, Address: stored.Address}, true
}

func run() error {
	apiBaseURL := pflag.String("api-base-url", "", "platform origin (overrides MEALBRIDGE_API_BASE_URL)")
	session := pflag.String("session", "", "session cookie value (overrides MEALBRIDGE_SESSION)")
	dbPath := pflag.String("db", "", "path to the local cache database (overrides MEALBRIDGE_DB_PATH)")
	profileName := pflag.String("profile-name", "", "save this organization name for draft prefill and exit")
	profileAddress := pflag.String("profile-address", "", "save this pickup address for draft prefill and exit")
	pflag.Parse()

	logFile, err := os.OpenFile("donor-cli.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))

	if *apiBaseURL != "" {
		os.Setenv("MEALBRIDGE_API_BASE_URL", *apiBaseURL)
	}
	if *session != "" {
		os.Setenv("MEALBRIDGE_SESSION", *session)
	}
	if *dbPath != "" {
		os.Setenv("MEALBRIDGE_DB_PATH", *dbPath)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	ctx := context.Background()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.Init(ctx); err != nil {
		return err
	}

	if *profileName != "" || *profileAddress != "" {
		if err := repo.SaveProfile(ctx, storage.Profile{Name: *profileName, Address: *profileAddress}); err != nil {
			return err
		}
		fmt.Println("Profile saved.")
		return nil
	}

	client := foodposts.NewClient(cfg.APIBaseURL, cfg.Session, nil, logger)

	// The cached snapshot gives the list content before the first fetch lands.
	cached, err := repo.ListListings(ctx)
	if err != nil {
		logger.Warn("could not read cached listings", "err", err)
		cached = nil
	}
	now := time.Now()
	initial := make([]listing.View, 0, len(cached))
	for _, record := range cached {
		initial = append(initial, listing.Decode(record, now))
	}

	// The terminal surface asks y/n before dispatching the delete, so the
	// store-level confirmer just passes the already-taken decision through.
	confirm := store.ConfirmerFunc(func(string) bool { return true })
	listings := store.New(client, confirm, repo, time.Now, logger, initial)

	profiles := profileSource{repo: repo, logger: logger}
	newDraft := func() *draft.Controller {
		return draft.NewController(ctx, client, profiles, time.Now)
	}

	model := tui.NewModel(listings, newDraft)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
