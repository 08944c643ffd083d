/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: pipeline.go
Description: Pipeline command implementation for the Sayuri BFIR toolkit.
Wires the configured external analysis commands and the built-in document
build and pattern generation stages into one run.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kleascm/sayuri-bfir/pkg/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunPipeline executes the pipeline command
func RunPipeline(cmd *cobra.Command, args []string) error {
	fmt.Println("🌸 Sayuri BFIR - Conversion Pipeline")
	fmt.Println("====================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	config := &pipeline.Config{
		WorkDir:            viper.GetString("pipeline.work_dir"),
		EnhancedFieldsPath: viper.GetString("pipeline.enhanced_fields"),
		DocumentPath:       viper.GetString("pipeline.document"),
		PatternPath:        viper.GetString("pipeline.pattern"),
		FormatName:         viper.GetString("pipeline.format_name"),
		FormatVersion:      viper.GetString("pipeline.format_version"),
		FormatDescription:  viper.GetString("pipeline.format_description"),
		Endianness:         viper.GetString("pipeline.endianness"),
		Strict:             viper.GetBool("pipeline.strict"),
		StageTimeout:       viper.GetDuration("pipeline.stage_timeout"),
	}

	p, err := pipeline.New(config, logger)
	if err != nil {
		return err
	}

	// External analysis stages run first unless skipped
	if !viper.GetBool("pipeline.skip_analysis") {
		for i, command := range viper.GetStringSlice("pipeline.analysis_commands") {
			argv := strings.Fields(command)
			if len(argv) == 0 {
				continue
			}
			p.AddStage(pipeline.NewCommandStage(
				fmt.Sprintf("analysis-%d", i+1), argv, config.WorkDir, config.StageTimeout, logger))
		}
	}

	p.AddStage(pipeline.NewBuildDocumentStage(config, logger))
	if !viper.GetBool("pipeline.skip_pattern") {
		p.AddStage(pipeline.NewGeneratePatternStage(config, logger))
	}

	// Graceful shutdown on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n🛑 Received shutdown signal, stopping pipeline...")
		cancel()
	}()

	if err := p.Run(ctx); err != nil {
		return err
	}

	fmt.Printf("\n✨ Pipeline run %s completed!\n", p.RunID())
	return nil
}
