// Package content loads authored scenario packs from YAML files into the
// scenario store at startup.
package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
	"github.com/mystira/mystira-server/internal/services/scenario"
)

// scenarioDoc is the YAML wire shape of an authored scenario pack
type scenarioDoc struct {
	ID           string     `yaml:"id"`
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	MinimumAge   int        `yaml:"minimum_age"`
	CoverImageID string     `yaml:"cover_image_id"`
	CoreAxes     []string   `yaml:"core_axes"`
	Scenes       []sceneDoc `yaml:"scenes"`
}

type sceneDoc struct {
	ID       string      `yaml:"id"`
	Title    string      `yaml:"title"`
	Type     string      `yaml:"type"`
	MediaID  string      `yaml:"media_id"`
	Branches []branchDoc `yaml:"branches"`
}

type branchDoc struct {
	ChoiceText    string            `yaml:"choice_text"`
	NextSceneID   string            `yaml:"next_scene_id"`
	Echo          *echoDoc          `yaml:"echo"`
	CompassChange *compassChangeDoc `yaml:"compass_change"`
}

type echoDoc struct {
	Type        string  `yaml:"type"`
	Description string  `yaml:"description"`
	Strength    float64 `yaml:"strength"`
}

type compassChangeDoc struct {
	Axis  string  `yaml:"axis"`
	Delta float64 `yaml:"delta"`
}

// Loader reads scenario packs from disk and stores them through the
// scenario service
type Loader struct {
	scenarios scenario.Service
	logger    *zap.Logger
}

// LoaderConfig holds configuration for the loader
type LoaderConfig struct {
	ScenarioService scenario.Service // Required
	Logger          *zap.Logger      // Optional, will use a no-op logger if nil
}

// NewLoader creates a new content loader
func NewLoader(cfg *LoaderConfig) *Loader {
	if cfg.ScenarioService == nil {
		panic("scenario service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		scenarios: cfg.ScenarioService,
		logger:    logger,
	}
}

// LoadDir loads every *.yaml/*.yml pack in the directory. Packs that fail
// validation or already exist are logged and skipped; only I/O failures
// abort the load. Returns the number of packs stored.
func (l *Loader) LoadDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read content directory %s: %w", dir, err)
	}

	var loaded atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		g.Go(func() error {
			ok, err := l.loadFile(ctx, path)
			if err != nil {
				return err
			}
			if ok {
				loaded.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(loaded.Load()), err
	}

	return int(loaded.Load()), nil
}

// loadFile parses and stores one pack; reports whether it was stored
func (l *Loader) loadFile(ctx context.Context, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read pack %s: %w", path, err)
	}

	var doc scenarioDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		l.logger.Warn("skipping malformed scenario pack",
			zap.String("path", path),
			zap.Error(err))
		return false, nil
	}

	if _, err := l.scenarios.CreateScenario(ctx, doc.toDomain()); err != nil {
		if apperrors.IsAlreadyExists(err) {
			l.logger.Debug("scenario pack already loaded",
				zap.String("path", path),
				zap.String("scenario_id", doc.ID))
			return false, nil
		}
		if apperrors.IsValidation(err) {
			l.logger.Warn("skipping invalid scenario pack",
				zap.String("path", path),
				zap.Error(err))
			return false, nil
		}
		return false, fmt.Errorf("failed to store pack %s: %w", path, err)
	}

	l.logger.Info("loaded scenario pack",
		zap.String("path", path),
		zap.String("scenario_id", doc.ID),
		zap.String("title", doc.Title))

	return true, nil
}

func (d *scenarioDoc) toDomain() *game.Scenario {
	scenario := &game.Scenario{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		MinimumAge:   d.MinimumAge,
		CoverImageID: d.CoverImageID,
		CoreAxes:     d.CoreAxes,
		Scenes:       make([]game.Scene, 0, len(d.Scenes)),
	}

	for _, scene := range d.Scenes {
		branches := make([]game.Branch, 0, len(scene.Branches))
		for _, branch := range scene.Branches {
			b := game.Branch{
				ChoiceText:  branch.ChoiceText,
				NextSceneID: branch.NextSceneID,
			}
			if branch.Echo != nil {
				b.Echo = &game.EchoEvent{
					Type:        branch.Echo.Type,
					Description: branch.Echo.Description,
					Strength:    branch.Echo.Strength,
				}
			}
			if branch.CompassChange != nil {
				b.CompassChange = &game.CompassChange{
					Axis:  branch.CompassChange.Axis,
					Delta: branch.CompassChange.Delta,
				}
			}
			branches = append(branches, b)
		}

		scenario.Scenes = append(scenario.Scenes, game.Scene{
			ID:       scene.ID,
			Title:    scene.Title,
			Type:     game.SceneType(scene.Type),
			MediaID:  scene.MediaID,
			Branches: branches,
		})
	}

	return scenario
}
