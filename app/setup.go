package app

import (
	"fmt"
	"log"

	"github.com/lernovate/admin-api/api"
	"github.com/lernovate/admin-api/config"
	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/router"
	"github.com/lernovate/admin-api/services/cron"
	"github.com/lernovate/admin-api/storage"
	"github.com/lernovate/admin-api/utils/metrics"
)

// SetupAndRunServer loads configuration, opens the record store, starts the
// cron jobs and serves the API. Blocks until the server stops.
func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	store, fileStore, err := openStore(getEnv)
	if err != nil {
		return err
	}
	defer store.Close()

	repos := repository.New(store)

	var cronManager *cron.Manager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewManager(repos, fileStore)
		if err := cronManager.Start(); err != nil {
			// Scheduled jobs are not worth refusing to serve over.
			log.Printf("Warning: Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	app.Use(metrics.Middleware())

	router.SetupRoutes(app, repos, getEnv)

	return server.Run()
}

// openStore selects the record store backend. The second return value is
// non-nil only for the file backend; the snapshot cron job needs it.
func openStore(getEnv *config.EnvironmentVariable) (storage.RecordStore, *storage.FileStore, error) {
	switch getEnv.STORAGE_BACKEND {
	case config.StorageBackendFile:
		fileStore, err := storage.NewFileStore(getEnv.DATA_DIR)
		if err != nil {
			return nil, nil, err
		}
		return fileStore, fileStore, nil

	case config.StorageBackendRedis:
		redisStore, err := storage.NewRedisStore(getEnv.REDIS_URL, "")
		if err != nil {
			return nil, nil, err
		}
		return redisStore, nil, nil

	case config.StorageBackendNone:
		// Serves seed data read-only; every write returns 503.
		return storage.NewUnavailableStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", getEnv.STORAGE_BACKEND)
	}
}
