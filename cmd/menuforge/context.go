package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"menuforge/internal/backup"
	"menuforge/internal/config"
	"menuforge/internal/generate"
	"menuforge/internal/logging"
	"menuforge/internal/notifications"
	"menuforge/internal/services/llm"
	"menuforge/internal/session"
	"menuforge/internal/snapshot"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// workspace bundles the long-lived resources one CLI invocation operates on.
// The live record is seeded from the newest snapshot so state carries across
// invocations.
type workspace struct {
	cfg       *config.Config
	logger    *slog.Logger
	lock      *flock.Flock
	snapshots *snapshot.Store
	backups   *backup.Manager
	store     *session.Store
	notifier  notifications.Service
}

func (c *commandContext) openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another menuforge process holds the session lock at %s", cfg.LockPath())
	}

	snapshots, err := snapshot.Open(cfg.SnapshotDBPath())
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	backups := backup.NewManager(snapshots, cfg.Workflow.BackupRetention, logger)
	initial, err := backups.RestoreLatest(ctx)
	if err != nil {
		logger.Warn("latest snapshot could not be restored, starting fresh", logging.Error(err))
		initial = nil
	}

	store := session.NewStore(session.Options{
		Snapshotter:       backups,
		Logger:            logger,
		ApprovalThreshold: cfg.Workflow.ApprovalThreshold,
		Initial:           initial,
	})

	return &workspace{
		cfg:       cfg,
		logger:    logger,
		lock:      lock,
		snapshots: snapshots,
		backups:   backups,
		store:     store,
		notifier:  notifications.NewService(cfg),
	}, nil
}

func (w *workspace) Close() error {
	var firstErr error
	if w.snapshots != nil {
		if err := w.snapshots.Close(); err != nil {
			firstErr = err
		}
	}
	if w.lock != nil {
		if err := w.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// withWorkspace opens the workspace, runs fn, and releases resources.
func (c *commandContext) withWorkspace(ctx context.Context, fn func(*workspace) error) error {
	ws, err := c.openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(ws)
}

// orchestrator wires a generation orchestrator over the workspace.
func (w *workspace) orchestrator(progress generate.ProgressFunc) *generate.Orchestrator {
	client := llm.NewClient(llm.Config{
		APIKey:         w.cfg.Generation.APIKey,
		BaseURL:        w.cfg.Generation.BaseURL,
		TimeoutSeconds: w.cfg.Generation.TimeoutSeconds,
		MaxTokens:      w.cfg.Generation.MaxTokens,
		Temperature:    w.cfg.Generation.Temperature,
	})
	gen := generate.NewClient(client, generate.Options{
		PrimaryModel:    w.cfg.Generation.PrimaryModel,
		SecondaryModel:  w.cfg.Generation.SecondaryModel,
		RequestInterval: time.Duration(w.cfg.Generation.RequestIntervalMS) * time.Millisecond,
		Logger:          w.logger,
	})
	var notifier generate.Notifier
	if w.cfg.Notifications.Generation {
		notifier = w.notifier
	}
	return generate.NewOrchestrator(gen, w.store, generate.OrchestratorOptions{
		Notifier: notifier,
		Logger:   w.logger,
		Progress: progress,
	})
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
