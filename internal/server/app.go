// Package server wires the FitMint ledger together: it opens the configured
// storage backend, bootstraps the ledger, and runs the gRPC service, the
// read-only HTTP views and the background workers until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/dmitrijs2005/fitmint/internal/server/archive"
	"github.com/dmitrijs2005/fitmint/internal/server/config"
	"github.com/dmitrijs2005/fitmint/internal/server/engine"
	"github.com/dmitrijs2005/fitmint/internal/server/httpapi"
	"github.com/dmitrijs2005/fitmint/internal/server/ledger"
	"github.com/dmitrijs2005/fitmint/internal/server/metrics"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/dmitrijs2005/fitmint/internal/server/workers"

	gs "github.com/dmitrijs2005/fitmint/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	store     ledger.Store
	engine    *engine.Engine
	metrics   *metrics.Collector
	scheduler *workers.Scheduler
}

// openStore opens the ledger backend selected by the storage driver.
func openStore(ctx context.Context, c *config.Config) (ledger.Store, error) {
	switch c.StorageDriver {
	case config.DriverMemory:
		return ledger.NewMemoryStore()
	case config.DriverLevelDB:
		return ledger.OpenLevelDB(c.LevelDBPath)
	case config.DriverPostgres:
		return ledger.OpenPostgres(ctx, c.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}

// policyFromConfig translates config into engine reward rules.
func policyFromConfig(c *config.Config) engine.Policy {
	return engine.Policy{
		StepGoal:              c.StepGoal,
		ExerciseGoal:          c.ExerciseGoal,
		MaxDailySteps:         c.MaxDailySteps,
		MaxExerciseMinutes:    c.MaxExerciseMinutes,
		Cooldown:              c.Cooldown,
		StreakWindow:          c.StreakWindow,
		StreakBonusBps:        c.StreakBonusBps,
		MaxStreakBonusDays:    c.MaxStreakBonusDays,
		RequireUniqueIdentity: c.RequireUniqueIdentity,
		Expiry:                engine.ExpiryPolicy(c.ExpiryPolicy),
	}
}

func genesisFromConfig(c *config.Config) (models.Genesis, error) {
	treasury, err := models.ParseAmount(c.InitialTreasury)
	if err != nil {
		return models.Genesis{}, err
	}
	pool, err := models.ParseAmount(c.InitialDailyPool)
	if err != nil {
		return models.Genesis{}, err
	}
	return models.Genesis{Treasury: *treasury, DailyPool: *pool, Paused: c.StartPaused}, nil
}

// eventLog writes every committed event to the process log.
type eventLog struct {
	logger logging.Logger
}

func (l eventLog) Publish(ctx context.Context, e models.Event) {
	args := []any{"seq", e.Seq, "type", string(e.Type)}
	if e.Account != "" {
		args = append(args, "account", e.Account)
	}
	if e.ChallengeID != nil {
		args = append(args, "challenge_id", *e.ChallengeID)
	}
	if e.Amount != nil {
		args = append(args, "amount", e.Amount.Dec())
	}
	l.logger.Info(ctx, "ledger event", args...)
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.New(logging.Options{Level: c.LogLevel, File: c.LogFile, MaxSizeMB: 100, MaxBackups: 5})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	genesis, err := genesisFromConfig(c)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	collector := metrics.NewCollector()

	e := engine.New(store, c.OwnerAccount, policyFromConfig(c))
	e.SetLogger(logger)
	e.SetRecorder(collector)
	e.AddPublisher(collector)
	e.AddPublisher(eventLog{logger: logger.With("module", "events")})

	created, err := e.Bootstrap(ctx, genesis)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("bootstrap error: %w", err)
	}
	if !created {
		logger.Info(ctx, "ledger loaded", "driver", c.StorageDriver)
	}

	sched, err := workers.NewScheduler(logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if err := sched.Every("expiry-sweep", c.ExpirySweepInterval, true, workers.ExpirySweep(e, logger)); err != nil {
		_ = store.Close()
		return nil, err
	}

	if c.ArchiveEnabled {
		client, err := archive.NewS3Client(ctx, archive.S3Settings{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		archiver := archive.New(e, client, c.S3Bucket, c.S3Prefix, logger)
		archiver.OnArchived(collector.Archived)
		if err := sched.Every("event-archive", c.ArchiveInterval, false, workers.Archive(archiver, logger)); err != nil {
			_ = store.Close()
			return nil, err
		}
	}

	return &App{
		config:    c,
		logger:    logger,
		store:     store,
		engine:    e,
		metrics:   collector,
		scheduler: sched,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runComponent runs fn and cancels the whole app when it fails.
func (app *App) runComponent(ctx context.Context, cancelFunc context.CancelFunc, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		app.logger.Error(ctx, "component failed", "component", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.StorageDriver, "owner", app.config.OwnerAccount)

	app.initSignalHandler(cancelFunc)

	grpcServer := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.engine, app.config.SecretKey,
		app.config.RateLimitPerSecond, app.config.RateLimitBurst)
	httpServer := httpapi.New(app.config.EndpointAddrHTTP, app.engine, app.metrics.Handler(), app.logger)

	components := map[string]func(context.Context) error{
		"grpc":      grpcServer.Run,
		"http":      httpServer.Run,
		"scheduler": app.scheduler.Run,
	}

	var wg sync.WaitGroup
	for name, fn := range components {
		name, fn := name, fn
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.runComponent(ctx, cancelFunc, name, fn)
		}()
	}

	wg.Wait()

	if err := app.store.Close(); err != nil {
		app.logger.Error(context.Background(), "closing store", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
