/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stages.go
Description: Stage implementations for the conversion pipeline. External
analysis tools run as subprocess stages with timeouts; the document build
and pattern generation stages are in-process and share the bfir and hexpat
packages with the CLI.
*/

package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
	"github.com/kleascm/sayuri-bfir/pkg/hexpat"
	"github.com/kleascm/sayuri-bfir/pkg/logging"
)

// CommandStage runs an external pipeline tool as a subprocess. Used for the
// upstream analysis steps this toolkit orchestrates but does not implement:
// PDF extraction, embedding generation, field discovery and mapping.
type CommandStage struct {
	name    string
	argv    []string
	dir     string
	timeout time.Duration
	logger  *logging.Logger
}

// NewCommandStage creates a subprocess stage
func NewCommandStage(name string, argv []string, dir string, timeout time.Duration, logger *logging.Logger) *CommandStage {
	return &CommandStage{name: name, argv: argv, dir: dir, timeout: timeout, logger: logger}
}

// Name returns the stage name
func (s *CommandStage) Name() string { return s.name }

// Run executes the command, honoring the stage timeout and the caller's
// context. Output streams to the parent process.
func (s *CommandStage) Run(ctx context.Context) error {
	if len(s.argv) == 0 {
		return fmt.Errorf("stage %q has no command", s.name)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)
	cmd.Dir = s.dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	s.logger.Debug("Stage command starting", map[string]interface{}{
		"stage":   s.name,
		"command": s.argv[0],
	})

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", s.argv[0], err)
	}
	return nil
}

// BuildDocumentStage reads enhanced field definitions, builds a BFIR
// document, and writes it as JSON for downstream stages.
type BuildDocumentStage struct {
	config *Config
	logger *logging.Logger
}

// NewBuildDocumentStage creates the document build stage
func NewBuildDocumentStage(config *Config, logger *logging.Logger) *BuildDocumentStage {
	return &BuildDocumentStage{config: config, logger: logger}
}

// Name returns the stage name
func (s *BuildDocumentStage) Name() string { return "build-document" }

// Run builds and writes the BFIR document
func (s *BuildDocumentStage) Run(ctx context.Context) error {
	data, err := os.ReadFile(s.config.EnhancedFieldsPath)
	if err != nil {
		return fmt.Errorf("failed to read enhanced fields: %w", err)
	}

	fields, err := ParseEnhancedFields(data)
	if err != nil {
		return err
	}

	format := bfir.FormatDescriptor{
		Name:        s.config.FormatName,
		Version:     s.config.FormatVersion,
		Description: s.config.FormatDescription,
		Endianness:  bfir.Endianness(s.config.Endianness),
	}
	doc, err := BuildDocument(format, fields, s.config.Strict)
	if err != nil {
		return fmt.Errorf("failed to build document: %w", err)
	}

	encoded, err := bfir.EncodeJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := writeFile(s.config.DocumentPath, encoded); err != nil {
		return err
	}

	s.logger.Info("Document built", map[string]interface{}{
		"fields": len(doc.Fields),
		"output": s.config.DocumentPath,
	})
	return nil
}

// GeneratePatternStage reads a BFIR document and writes the generated
// pattern file.
type GeneratePatternStage struct {
	config *Config
	logger *logging.Logger
}

// NewGeneratePatternStage creates the pattern generation stage
func NewGeneratePatternStage(config *Config, logger *logging.Logger) *GeneratePatternStage {
	return &GeneratePatternStage{config: config, logger: logger}
}

// Name returns the stage name
func (s *GeneratePatternStage) Name() string { return "generate-pattern" }

// Run converts the document and writes the pattern file
func (s *GeneratePatternStage) Run(ctx context.Context) error {
	data, err := os.ReadFile(s.config.DocumentPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := bfir.ParseJSON(data)
	if err != nil {
		return err
	}

	converter := hexpat.NewConverter(doc)
	text, err := converter.Convert()
	if err != nil {
		return fmt.Errorf("failed to generate pattern: %w", err)
	}

	if err := writeFile(s.config.PatternPath, []byte(text)); err != nil {
		return err
	}

	s.logger.Info("Pattern generated", map[string]interface{}{
		"output":  s.config.PatternPath,
		"imports": len(converter.RequiredImports()),
	})
	return nil
}

// writeFile writes data, creating the parent directory if needed
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
