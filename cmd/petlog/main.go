package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"pet-care-log/internal/adapters/apiclient"
	"pet-care-log/internal/adapters/local"
	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/calendar"
	"pet-care-log/internal/cli"
	"pet-care-log/internal/platform/config"
	"pet-care-log/internal/platform/httpclient"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/router"
)

var CLI struct {
	API   string `help:"Base URL of a petlog API server. When set, --db is ignored." env:"API_BASE_URL"`
	DB    string `help:"SQLite file for local mode." env:"SQLITE_PATH"`
	TZ    string `name:"tz" help:"IANA time zone used to group records by day." env:"TIMEZONE"`
	Yes   bool   `short:"y" help:"Do not prompt: confirm deletions and skip the startup consumption question."`
	State string `help:"File that remembers the selected pet." type:"path"`

	Calendar    cli.CalendarCmd    `cmd:"" help:"Show the month grid." default:"1"`
	Day         cli.DayCmd         `cmd:"" help:"Show everything recorded on a local day."`
	Feed        cli.FeedCmd        `cmd:"" help:"Manage feeding records."`
	Feedtype    cli.FeedTypeCmd    `cmd:"" name:"feedtype" help:"Manage feed types."`
	Schedule    cli.ScheduleCmd    `cmd:"" help:"Manage daily feeding times."`
	Maintenance cli.MaintenanceCmd `cmd:"" help:"Manage maintenance records."`
	Pet         cli.PetCmd         `cmd:"" help:"Manage pets."`
	Weight      cli.WeightCmd      `cmd:"" help:"Manage weight records."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("petlog"),
		kong.Description("Pet care log: feeding, weight and maintenance on a local-day calendar."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
	)

	if err := run(kctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot := logger.NewFromEnv()
	cfg, err := config.Load(boot)
	if err != nil {
		return err
	}
	cfg = withFlags(cfg)
	log := cfg.Logger().With(map[string]any{"component": "petlog"})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, loc, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var prompt cli.Prompter = cli.HuhPrompter{}
	var confirm calendar.Confirmer = prompt
	if CLI.Yes {
		prompt = nil
		confirm = calendar.AutoConfirm
	}

	session := calendar.NewSession(store, calendar.Options{
		Location:  loc,
		Confirmer: confirm,
		Logger:    log,
	})
	if err := session.Start(ctx); err != nil {
		return err
	}

	statePath := CLI.State
	if statePath == "" {
		statePath = cli.DefaultStatePath()
	}
	state, err := cli.LoadState(statePath)
	if err != nil {
		log.Warn("state file ignored", map[string]any{"path": statePath, "err": err})
		state = &cli.State{Path: statePath}
	}
	if state.SelectedPet != "" {
		session.SelectPet(state.SelectedPet)
	}

	appCtx := &cli.Context{
		Ctx:     ctx,
		Session: session,
		Out:     os.Stdout,
		Prompt:  prompt,
		State:   state,
	}

	// El comando reconcile hace su propia pregunta.
	if !strings.HasPrefix(kctx.Command(), "feed reconcile") {
		if err := cli.Reconcile(appCtx); err != nil {
			return err
		}
	}

	return kctx.Run(appCtx)
}

// withFlags aplica sobre cfg los flags que vinieron con valor.
func withFlags(cfg config.Config) config.Config {
	if v := strings.TrimSpace(CLI.API); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(CLI.DB); v != "" {
		cfg.DB.SQLitePath = v
	}
	if v := strings.TrimSpace(CLI.TZ); v != "" {
		cfg.TimeZone = v
	}
	return cfg
}

// openStore elige el backend: API remota si hay base URL, si no SQLite local.
func openStore(ctx context.Context, cfg config.Config, loc *time.Location, log logger.Logger) (calendar.Store, func(), error) {
	if cfg.API.BaseURL != "" {
		c, err := httpclient.New(cfg.API.BaseURL, cfg.API.Timeout, log)
		if err != nil {
			return nil, nil, err
		}
		return apiclient.New(c), func() {}, nil
	}

	path := cfg.DB.SQLitePath
	db, err := sqlstore.OpenSQLite(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := sqlstore.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	svc := router.NewServices(db, loc)
	return local.New(svc.Feeding, svc.Pets, svc.Maintenance), func() { _ = db.Close() }, nil
}
