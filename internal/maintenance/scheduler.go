// Package maintenance runs periodic SQLite housekeeping.
package maintenance

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"libraryapi/internal/database"
)

// Scheduler periodically compacts and re-analyzes the database.
type Scheduler struct {
	db   *database.Database
	cron *cron.Cron

	mu        sync.RWMutex
	entryID   cron.EntryID
	isRunning bool
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(db *database.Database) *Scheduler {
	return &Scheduler{
		db:   db,
		cron: cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the maintenance job. Safe to call once.
func (s *Scheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(schedule, s.runMaintenance)
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Maintenance scheduler: started with schedule '%s'", schedule)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running job.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Printf("Maintenance scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next maintenance run will occur.
func (s *Scheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunNow triggers an immediate maintenance pass.
func (s *Scheduler) RunNow() {
	s.runMaintenance()
}

func (s *Scheduler) runMaintenance() {
	start := time.Now()
	log.Printf("Maintenance: starting database housekeeping")

	for _, stmt := range []string{"PRAGMA optimize", "ANALYZE", "VACUUM"} {
		if err := s.db.DB.Exec(stmt).Error; err != nil {
			log.Printf("Maintenance: %s failed: %v", stmt, err)
			return
		}
	}

	log.Printf("Maintenance: completed in %v", time.Since(start).Round(time.Millisecond))
}
