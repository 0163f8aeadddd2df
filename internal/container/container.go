package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"catalog/loader/internal/client"
	"catalog/loader/internal/config"
	"catalog/loader/internal/domain"
	"catalog/loader/internal/extract"
	"catalog/loader/internal/observability"
	"catalog/loader/internal/queue"
	"catalog/loader/internal/repository"
	"catalog/loader/internal/service"
	"catalog/loader/internal/sheet"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.CatalogClient
	Service *service.Service

	// Optional sinks, nil when disabled in the configuration.
	Reports repository.ReportRepository
	Queue   queue.Queue

	db    *pgxpool.Pool
	redis *redis.Client
}

// ImportOptions control a single import run.
type ImportOptions struct {
	File       string
	Sheet      string
	MaxRows    int
	PurgeFirst bool
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	catalogClient := client.NewSaleorClient(cfg.Saleor)
	container.Client = catalogClient
	container.Service = service.NewService(
		catalogClient,
		extract.NewExtractor(cfg.Import),
		cfg.Import.ProductType,
	)

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		container.db = db

		reports := repository.NewReportRepository(db)
		if err := reports.EnsureSchema(ctx); err != nil {
			container.Close()
			return nil, err
		}
		container.Reports = reports
		log.Info("✅ Connected to Postgres successfully")
	}

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		container.Queue = queue.NewRedisQueue(rdb)
		log.Info("✅ Connected to Redis successfully")
	}

	return container, nil
}

// RunImport reads the workbook and imports it, serving metrics meanwhile when configured.
// The report is returned even when the run is aborted.
func (c *Container) RunImport(ctx context.Context, opts ImportOptions) (*domain.ImportReport, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)

	if port := c.Config.Metrics.Port; port != "" {
		g.Go(func() error {
			if err := observability.Serve(gctx, port); err != nil {
				log.Errorf("❌ Metrics server stopped: %v", err)
			}
			return nil
		})
	}

	var report *domain.ImportReport
	g.Go(func() error {
		defer cancel()

		var err error
		report, err = c.runImport(gctx, opts)
		return err
	})

	err := g.Wait()
	return report, err
}

func (c *Container) runImport(ctx context.Context, opts ImportOptions) (*domain.ImportReport, error) {
	rows, err := sheet.ReadRows(opts.File, opts.Sheet)
	if err != nil {
		return nil, err
	}

	if opts.PurgeFirst {
		log.Info("🗑️ Purging all products before import")
		if _, err := c.Service.Purge(ctx); err != nil {
			return nil, err
		}
	}

	report, importErr := c.Service.Import(ctx, rows, opts.MaxRows)
	c.persist(context.WithoutCancel(ctx), report)

	return report, importErr
}

// persist hands the report to the enabled sinks. Sink failures are logged only.
func (c *Container) persist(ctx context.Context, report *domain.ImportReport) {
	if report == nil {
		return
	}

	if c.Reports != nil {
		if err := c.Reports.SaveReport(ctx, report); err != nil {
			log.Errorf("❌ Failed to save import report %s: %v", report.RunID, err)
		} else {
			log.Infof("💾 Saved import report %s", report.RunID)
		}
	}

	if c.Queue != nil {
		if _, err := queue.PublishFailures(ctx, c.Queue, report); err != nil {
			log.Errorf("❌ Failed to publish failed rows: %v", err)
		}
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}

	return nil
}
