package cron

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/lernovate/admin-api/model"
)

// AggregatePlatformStats counts users, courses and institutions and writes
// the totals into the settings collection so the analytics panel can show
// them without rescanning on every page load.
func (m *Manager) AggregatePlatformStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	institutions, err := m.repos.Institutions.List(ctx)
	if err != nil {
		log.Printf("cron: aggregate stats: %v", err)
		return
	}
	courses, err := m.repos.Courses.List(ctx)
	if err != nil {
		log.Printf("cron: aggregate stats: %v", err)
		return
	}
	users, err := m.repos.Users.List(ctx)
	if err != nil {
		log.Printf("cron: aggregate stats: %v", err)
		return
	}

	totalEnrollment := 0
	for _, course := range courses {
		totalEnrollment += course.EnrollmentCount
	}

	stats := map[string]int{
		"stats.total_institutions": len(institutions),
		"stats.total_courses":      len(courses),
		"stats.total_users":        len(users),
		"stats.total_enrollment":   totalEnrollment,
	}

	for key, value := range stats {
		_, err := m.repos.Settings.Upsert(ctx, model.Setting{
			Key:         key,
			Value:       fmt.Sprintf("%d", value),
			Description: "Aggregated hourly",
			Category:    "stats",
		})
		if err != nil {
			log.Printf("cron: aggregate stats: write %s: %v", key, err)
		}
	}
}

// SnapshotDataDir copies the collection files into a dated backup directory
// under the data dir. Skipped when auto_backup is switched off.
func (m *Manager) SnapshotDataDir() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	setting, err := m.repos.Settings.Get(ctx, "auto_backup")
	if err == nil && setting.Value == "false" {
		return
	}

	dst := filepath.Join(m.fileStore.Dir(), "backups", time.Now().UTC().Format("2006-01-02"))
	if err := m.fileStore.Snapshot(ctx, dst); err != nil {
		log.Printf("cron: snapshot: %v", err)
		return
	}
	log.Printf("cron: snapshot written to %s", dst)
}
