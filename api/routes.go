package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/baseline"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/notices"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/settings"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/snapshot"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/summary"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	DB      interface {
		PingContext(ctx context.Context) error
	}
}

// NewAPI registers every route on mux.
func (r *Rest) NewAPI(mux *http.ServeMux) huma.API {
	config := huma.DefaultConfig("Expense Tracker", "1.0.0")
	// Exported snapshots must keep the documented shape, so no $schema link.
	config.CreateHooks = nil
	api := humago.New(mux, config)
	api.UseMiddleware(logging.Middleware(r.Logger))

	status.NewHandler(r.DB).Register(api)

	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)

	summary.NewGetSummaryHandler(r.Service.Budget).Register(api)
	summary.NewGetBreakdownHandler(r.Service.Budget).Register(api)
	summary.NewGetAllocationsHandler(r.Service.Budget).Register(api)
	summary.NewGetTrendHandler(r.Service.Budget).Register(api)
	baseline.NewSetBudgetHandler(r.Service.Budget).Register(api)

	settings.NewHandler(r.Service.Settings).Register(api)
	settings.NewListCategoriesHandler(r.Service.Settings).Register(api)

	snapshot.NewHandler(r.Service.Snapshot).Register(api)
	notices.NewHandler(r.Service).Register(api)

	return api
}

// Serve blocks until ctx is cancelled, then shuts the server down.
func (r *Rest) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	r.NewAPI(mux)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
