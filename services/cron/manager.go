// Package cron runs the platform's scheduled maintenance jobs.
package cron

import (
	"log"

	"github.com/lernovate/admin-api/repository"
	"github.com/lernovate/admin-api/storage"
	"github.com/robfig/cron/v3"
)

// Manager owns the scheduled jobs.
type Manager struct {
	cron      *cron.Cron
	repos     *repository.Repositories
	fileStore *storage.FileStore
}

// NewManager creates a manager. fileStore may be nil when the redis backend
// is active; the snapshot job is then skipped.
func NewManager(repos *repository.Repositories, fileStore *storage.FileStore) *Manager {
	return &Manager{
		cron:      cron.New(cron.WithSeconds()),
		repos:     repos,
		fileStore: fileStore,
	}
}

// Start registers and starts all jobs.
func (m *Manager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop drains running jobs and stops the scheduler.
func (m *Manager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *Manager) registerJobs() error {
	// Hourly: aggregate platform statistics into the settings collection.
	_, err := m.cron.AddFunc("0 0 * * * *", func() {
		log.Println("cron: aggregate_platform_stats")
		m.AggregatePlatformStats()
	})
	if err != nil {
		return err
	}

	// Daily at 2 AM: snapshot the data directory.
	if m.fileStore != nil {
		_, err = m.cron.AddFunc("0 0 2 * * *", func() {
			log.Println("cron: snapshot_data_dir")
			m.SnapshotDataDir()
		})
		if err != nil {
			return err
		}
	}

	log.Println("All cron jobs registered successfully")
	return nil
}
