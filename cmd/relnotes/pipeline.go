package main

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/jorge-barreto/relnotes/internal/clickup"
	"github.com/jorge-barreto/relnotes/internal/config"
	"github.com/jorge-barreto/relnotes/internal/genai"
	"github.com/jorge-barreto/relnotes/internal/ident"
	"github.com/jorge-barreto/relnotes/internal/logging"
	"github.com/jorge-barreto/relnotes/internal/release"
	"github.com/jorge-barreto/relnotes/internal/runlog"
	"github.com/jorge-barreto/relnotes/internal/transform"
	"github.com/jorge-barreto/relnotes/internal/ux"
)

// env is what every service-backed command needs.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func setup(cmd *cli.Command) (*env, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)

	logger, err := logging.New(cmd.Bool("verbose"))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) newRun(command, input string, rec release.Record) *runlog.Run {
	run := runlog.New(command, input)
	run.Release = rec.Release
	run.Identifier = ident.ForRecord(rec)
	run.Provider = e.cfg.Generator.Provider
	run.Model = e.cfg.Generator.Model
	return run
}

func (e *env) generator() (genai.Generator, error) {
	g := e.cfg.Generator
	return genai.New(genai.Options{
		Provider:          g.Provider,
		Model:             g.Model,
		APIKey:            g.APIKey,
		BaseURL:           g.BaseURL,
		Temperature:       *g.Temperature,
		MaxTokens:         g.MaxTokens,
		RequestsPerMinute: g.RequestsPerMinute,
		Timeout:           time.Duration(g.Timeout) * time.Second,
	})
}

// transform runs the batch and records its outcome on run. Entry failures
// never surface here; only a generator that cannot be built does.
func (e *env) transform(ctx context.Context, run *runlog.Run, rec release.Record) (release.Record, error) {
	gen, err := e.generator()
	if err != nil {
		return release.Record{}, err
	}
	pd := e.cfg.PromptDefaults
	tr := &transform.Transformer{
		Generator: gen,
		Logger:    e.logger.Named("transform").With(zap.String("run_id", run.ID)),
		Product:   e.cfg.Product,
		Defaults:  transform.PromptDefaults{Platform: pd.Platform, Plan: pd.Plan, Channel: pd.Channel},
	}

	e.logger.Debug("transforming release",
		zap.String("run_id", run.ID),
		zap.String("release", rec.Release),
		zap.Int("features", len(rec.NewFeatures)),
		zap.Int("improvements", len(rec.Improvements)),
		zap.String("provider", run.Provider),
		zap.String("model", run.Model),
	)
	out, rep := tr.Batch(ctx, rec, ux.BatchProgress{})
	run.Record(rep)
	return out, nil
}

func (e *env) publish(ctx context.Context, name, content string) (*clickup.Page, error) {
	cu := e.cfg.ClickUp
	client, err := clickup.New(e.logger, clickup.Config{
		Token:        cu.Token,
		WorkspaceID:  cu.WorkspaceID,
		DocID:        cu.DocID,
		ParentPageID: cu.ParentPageID,
		BaseURL:      cu.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	ux.Creating(name)
	page, err := client.CreatePage(ctx, name, content)
	if err != nil {
		return nil, err
	}
	ux.PageCreated(page.ID, client.PageURL(page.ID))
	return page, nil
}

// saveRun writes the run record. A failure here is only a warning.
func (e *env) saveRun(run *runlog.Run) string {
	path, err := run.Save(e.cfg.ArtifactsDir)
	if err != nil {
		ux.Warn("failed to save run record: %v", err)
		return ""
	}
	e.logger.Debug("run record saved", zap.String("path", path))
	return path
}
