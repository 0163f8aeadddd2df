package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	RowsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_rows_total",
			Help: "Source rows processed, by outcome",
		},
		[]string{"outcome"},
	)

	CategoriesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_import_categories_created_total",
			Help: "Categories created while resolving category paths",
		},
	)

	RemoteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_remote_requests_total",
			Help: "GraphQL requests sent to the remote catalog, by operation and result",
		},
		[]string{"operation", "result"},
	)
)

// Registry holds the importer collectors. It is separate from the default
// registry so that registering never panics on repeated use.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(RowsProcessed, CategoriesCreated, RemoteRequests)
}

// Serve exposes /metrics on the given port until ctx is done.
func Serve(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infof("📈 Serving metrics on :%s/metrics", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
