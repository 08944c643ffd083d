/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: pipeline.go
Description: Pipeline orchestrator for the Sayuri BFIR toolkit. Runs the
configured stages sequentially with per-run identifiers and structured
logging. Upstream analysis stages (PDF extraction, embedding, field
discovery and mapping) run as external commands; document building and
pattern generation are built-in stages.
*/

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/sayuri-bfir/pkg/interfaces"
	"github.com/kleascm/sayuri-bfir/pkg/logging"
)

// Config holds the pipeline configuration
type Config struct {
	WorkDir            string // working directory for external stages
	EnhancedFieldsPath string // input: enhanced field definitions JSON
	DocumentPath       string // intermediate: BFIR document JSON
	PatternPath        string // output: generated pattern file
	FormatName         string
	FormatVersion      string
	FormatDescription  string
	Endianness         string
	Strict             bool          // reject unknown binary structure types
	StageTimeout       time.Duration // per external stage; zero means no limit
}

// Validate checks the pipeline configuration
func (c *Config) Validate() error {
	if c.EnhancedFieldsPath == "" {
		return fmt.Errorf("enhanced fields path is required")
	}
	if c.DocumentPath == "" {
		return fmt.Errorf("document output path is required")
	}
	if c.PatternPath == "" {
		return fmt.Errorf("pattern output path is required")
	}
	if c.FormatName == "" {
		return fmt.Errorf("format name is required")
	}
	return nil
}

// Pipeline runs an ordered list of stages for one conversion run
type Pipeline struct {
	config *Config
	logger *logging.Logger
	runID  string
	stages []interfaces.Stage
}

// New creates a pipeline with a fresh run identifier
func New(config *Config, logger *logging.Logger) (*Pipeline, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	return &Pipeline{
		config: config,
		logger: logger,
		runID:  uuid.New().String(),
	}, nil
}

// RunID returns the unique identifier of this pipeline run
func (p *Pipeline) RunID() string {
	return p.runID
}

// AddStage appends a stage to the run
func (p *Pipeline) AddStage(s interfaces.Stage) {
	p.stages = append(p.stages, s)
}

// Run executes all stages in order. The first failing stage aborts the run;
// completed stages are not rolled back.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.logger.Info("Stage run starting", map[string]interface{}{
		"run_id": p.runID,
		"stages": len(p.stages),
	})

	for i, stage := range p.stages {
		stageStart := time.Now()
		p.logger.Info("Stage starting", map[string]interface{}{
			"run_id": p.runID,
			"stage":  stage.Name(),
			"index":  i + 1,
			"total":  len(p.stages),
		})

		if err := stage.Run(ctx); err != nil {
			p.logger.Error("Stage failed", map[string]interface{}{
				"run_id":   p.runID,
				"stage":    stage.Name(),
				"duration": time.Since(stageStart),
				"error":    err.Error(),
			})
			return fmt.Errorf("stage %q failed: %w", stage.Name(), err)
		}

		p.logger.Info("Stage completed", map[string]interface{}{
			"run_id":   p.runID,
			"stage":    stage.Name(),
			"duration": time.Since(stageStart),
		})
	}

	p.logger.Info("Stage run completed", map[string]interface{}{
		"run_id":   p.runID,
		"duration": time.Since(start),
	})
	return nil
}
