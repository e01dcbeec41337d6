package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/recipebook/backend/internal/storage"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ImageReferenceRepository lists the image paths still referenced by recipes
type ImageReferenceRepository interface {
	ListImagePaths(ctx context.Context) ([]string, error)
}

// UploadStore is the part of the image storage the cleaner needs
type UploadStore interface {
	List() ([]storage.FileInfo, error)
	Delete(name string) error
}

// UploadCleaner periodically removes uploaded images that no recipe references,
// such as images of deleted recipes.
//
// Files younger than minAge are kept: an image is written before its recipe row.
type UploadCleaner struct {
	repo     ImageReferenceRepository
	store    UploadStore
	schedule cron.Schedule
	minAge   time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewUploadCleaner creates a cleaner running on the standard 5-field cron expression cronExpr
func NewUploadCleaner(repo ImageReferenceRepository, store UploadStore, cronExpr string, minAge time.Duration, logger *zap.Logger) (*UploadCleaner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}
	if schedule.Next(time.Now()).IsZero() {
		return nil, fmt.Errorf("cron expression %q never fires", cronExpr)
	}

	return &UploadCleaner{
		repo:     repo,
		store:    store,
		schedule: schedule,
		minAge:   minAge,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}, nil
}

// Start runs the cleaner in the background until Stop is called
func (c *UploadCleaner) Start() {
	c.logger.Info("Upload cleaner started")
	c.wg.Add(1)
	go c.run()
}

// Stop stops the cleaner and waits for a running sweep to finish
func (c *UploadCleaner) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Upload cleaner stopped")
}

func (c *UploadCleaner) run() {
	defer c.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-c.stopChan
		cancel()
	}()

	for {
		now := c.now()
		next := c.schedule.Next(now)
		if next.IsZero() {
			c.logger.Warn("Upload cleaner has no further runs scheduled")
			return
		}
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-timer.C:
			if _, err := c.Sweep(ctx); err != nil {
				c.logger.Error("Upload sweep failed", zap.Error(err))
			}
		case <-c.stopChan:
			timer.Stop()
			return
		}
	}
}

// Sweep deletes unreferenced uploads once and returns how many files were removed
func (c *UploadCleaner) Sweep(ctx context.Context) (int, error) {
	paths, err := c.repo.ListImagePaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list referenced images: %w", err)
	}

	referenced := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		if name := storage.NameFromPublicPath(path); name != "" {
			referenced[name] = struct{}{}
		}
	}

	files, err := c.store.List()
	if err != nil {
		return 0, fmt.Errorf("failed to list uploads: %w", err)
	}

	cutoff := c.now().Add(-c.minAge)
	removed := 0
	for _, file := range files {
		if _, ok := referenced[file.Name]; ok {
			continue
		}
		if file.ModTime.After(cutoff) {
			continue
		}
		if err := c.store.Delete(file.Name); err != nil {
			c.logger.Warn("Failed to remove orphaned upload", zap.String("file", file.Name), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		c.logger.Info("Removed orphaned uploads", zap.Int("count", removed))
	}
	return removed, nil
}
