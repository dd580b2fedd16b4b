package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/expense-tracker/api"
	"github.com/carson-networks/expense-tracker/internal/codec"
	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

func main() {
	app := &cli.App{
		Name:  "expense-tracker",
		Usage: "single-user expense ledger with a monthly budget",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file", EnvVars: []string{"TRACKER_CONFIG_FILE"}},
			&cli.StringFlag{Name: "db", Usage: "SQLite database path, overrides db_path"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:  "export",
				Usage: "write a snapshot document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "-", Usage: "file to write, - for stdout"},
				},
				Action: exportSnapshot,
			},
			{
				Name:      "import",
				Usage:     "restore a snapshot document",
				ArgsUsage: "<file>",
				Action:    importSnapshot,
			},
			{
				Name:  "summary",
				Usage: "print a monthly summary",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "month", Usage: "YYYY-MM, defaults to the current month"},
				},
				Action: printSummary,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations",
				Action: migrate,
			},
			{
				Name:  "reset",
				Usage: "delete every stored slot",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Usage: "confirm deleting all data"},
				},
				Action: reset,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("expense-tracker")
	}
}

type runtime struct {
	config   *config.Config
	logger   *logrus.Logger
	storage  *storage.Storage
	operator *operator.OperatorDelegator
	service  *service.Service
}

func loadConfig(c *cli.Context) (*config.Config, *logrus.Logger, error) {
	if path := c.String("config"); path != "" {
		if err := os.Setenv("TRACKER_CONFIG_FILE", path); err != nil {
			return nil, nil, err
		}
	}

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, nil, fmt.Errorf("config.ProcessEnvironmentVariables: %w", err)
	}
	if db := c.String("db"); db != "" {
		envConfig.DBPath = db
	}

	return envConfig, logging.SetupLogging(envConfig.LogLevel), nil
}

func start(c *cli.Context) (*runtime, error) {
	envConfig, logger, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		return nil, fmt.Errorf("storage.NewStorage: %w", err)
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.QueueSize)
	delegator.Start()

	return &runtime{
		config:   envConfig,
		logger:   logger,
		storage:  dbStorage,
		operator: delegator,
		service:  service.NewService(c.Context, dbStorage.Reader.Slots, delegator),
	}, nil
}

// close writes everything still queued and reports writes that failed.
func (r *runtime) close() error {
	r.operator.Stop()
	var errs []error
	for _, notice := range r.service.PersistenceNotices() {
		errs = append(errs, fmt.Errorf("save %s: %s", notice.Slot, notice.Message))
	}
	if err := r.storage.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func serve(c *cli.Context) error {
	r, err := start(c)
	if err != nil {
		return err
	}
	r.logger.Info("expense-tracker starting")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:  r.logger,
		Port:    r.config.HTTPPort,
		Service: r.service,
		DB:      r.storage.DB,
	}
	serveErr := httpRest.Serve(ctx)

	return errors.Join(serveErr, r.close())
}

func exportSnapshot(c *cli.Context) error {
	r, err := start(c)
	if err != nil {
		return err
	}
	defer r.close()

	var out io.Writer = c.App.Writer
	if path := c.String("output"); path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return codec.Encode(out, r.service.Snapshot.ExportSnapshot(c.Context))
}

func importSnapshot(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("import takes exactly one file", 2)
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	r, err := start(c)
	if err != nil {
		return err
	}

	plan, err := r.service.Snapshot.ImportSnapshot(c.Context, data)
	if err != nil {
		return errors.Join(err, r.close())
	}

	for _, key := range plan.Keys() {
		fmt.Fprintf(c.App.Writer, "restored %s\n", key)
	}
	for _, skipped := range plan.Skipped {
		fmt.Fprintf(c.App.Writer, "skipped %s: %s\n", skipped.Field, skipped.Reason)
	}
	return r.close()
}

func printSummary(c *cli.Context) error {
	r, err := start(c)
	if err != nil {
		return err
	}
	defer r.close()

	month := r.service.Budget.CurrentMonth()
	if raw := c.String("month"); raw != "" {
		month, err = ledger.ParseMonth(raw)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}

	s := r.service.Budget.GetMonthlySummary(c.Context, month)
	currency := r.service.Settings.GetSettings(c.Context).Currency
	w := c.App.Writer
	fmt.Fprintf(w, "%s (%s)\n", s.Month, currency)
	fmt.Fprintf(w, "  baseline      %s\n", s.Baseline)
	fmt.Fprintf(w, "  spent         %s (%.2f%%)\n", s.ExpenseTotal, s.UtilizationPercent)
	fmt.Fprintf(w, "  contributions %s\n", s.ContributionTotal)
	fmt.Fprintf(w, "  available     %s\n", s.Available)
	for _, share := range r.service.Budget.GetCategoryBreakdown(c.Context, month) {
		fmt.Fprintf(w, "  %-13s %s (%.2f%%)\n", share.Category, share.Amount, share.Percent)
	}
	return nil
}

func migrate(c *cli.Context) error {
	envConfig, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(envConfig.DBPath), 0o755); err != nil {
		return err
	}

	version, err := storage.RunMigrations(storage.DSN(envConfig.DBPath))
	if err != nil {
		return err
	}
	logrus.WithField("version", version).Info("Migration status")
	return nil
}

func reset(c *cli.Context) error {
	if !c.Bool("yes") {
		return cli.Exit("refusing to delete all data without --yes", 2)
	}

	r, err := start(c)
	if err != nil {
		return err
	}
	r.service.Snapshot.Reset(context.WithoutCancel(c.Context))
	return r.close()
}
