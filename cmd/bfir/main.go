/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Sayuri BFIR toolkit.
Provides the convert, inspect, and pipeline commands with configuration
management and logging for turning Binary Format IR documents into ImHex
pattern files.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/sayuri-bfir/cmd/bfir/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	logFormat  string
	logDir     string

	// Convert configuration
	inputPath       string
	outputPath      string
	rootOffset      int
	unrollThreshold int
	strict          bool

	// Pipeline configuration
	workDir        string
	enhancedFields string
	documentPath   string
	patternPath    string
	formatName     string
	formatVersion  string
	formatDesc     string
	endianness     string
	stageTimeout   time.Duration
	skipAnalysis   bool
	skipPattern    bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "bfir",
		Short: "Sayuri BFIR - Binary Format IR to ImHex pattern generator",
		Long: `Sayuri BFIR converts Binary Format Intermediate Representation documents
into ImHex pattern language (.hexpat) files. Documents can be produced by the
analysis pipeline or authored by hand in JSON or HCL; the generator handles
structs, bit fields, enums, layout-preserving arrays, and library imports.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log output directory (empty = console only)")

	// Bind persistent flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))

	// Add convert command
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a BFIR document into a pattern file",
		Long: `Convert a BFIR document into ImHex pattern language source. The input
format is chosen by file extension: .json for the machine-produced wire form,
.hcl for hand-authored documents. Output goes to stdout unless --output is set.`,
		RunE: commands.RunConvert,
	}

	convertCmd.Flags().StringVar(&inputPath, "input", "", "Path to BFIR document (required)")
	convertCmd.Flags().StringVar(&outputPath, "output", "", "Output pattern file (default stdout)")
	convertCmd.Flags().IntVar(&rootOffset, "root-offset", 0, "Byte offset of the root struct instantiation")
	convertCmd.Flags().IntVar(&unrollThreshold, "unroll-threshold", 4, "Largest array emitted as per-element fields")

	viper.BindPFlag("convert.input", convertCmd.Flags().Lookup("input"))
	viper.BindPFlag("convert.output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("convert.root_offset", convertCmd.Flags().Lookup("root-offset"))
	viper.BindPFlag("convert.unroll_threshold", convertCmd.Flags().Lookup("unroll-threshold"))

	// Add inspect command
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the computed byte layout of a BFIR document",
		Long: `Inspect a BFIR document and print the absolute byte offset and size of
every field in declaration order, the same sequential layout the generated
pattern describes.`,
		RunE: commands.RunInspect,
	}

	inspectCmd.Flags().StringVar(&inputPath, "input", "", "Path to BFIR document (required)")
	viper.BindPFlag("inspect.input", inspectCmd.Flags().Lookup("input"))

	// Add pipeline command
	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run the conversion pipeline end to end",
		Long: `Run the conversion pipeline: optional external analysis stages, the BFIR
document build from enhanced field definitions, and pattern generation.`,
		RunE: commands.RunPipeline,
	}

	pipelineCmd.Flags().StringVar(&workDir, "work-dir", ".", "Working directory for external stages")
	pipelineCmd.Flags().StringVar(&enhancedFields, "enhanced-fields", "", "Enhanced field definitions JSON (required)")
	pipelineCmd.Flags().StringVar(&documentPath, "document", "bfir_output.json", "Intermediate BFIR document path")
	pipelineCmd.Flags().StringVar(&patternPath, "pattern", "bfir_generated.hexpat", "Generated pattern output path")
	pipelineCmd.Flags().StringVar(&formatName, "format-name", "", "Format name (required)")
	pipelineCmd.Flags().StringVar(&formatVersion, "format-version", "", "Format version")
	pipelineCmd.Flags().StringVar(&formatDesc, "format-description", "", "Format description")
	pipelineCmd.Flags().StringVar(&endianness, "endianness", "little", "Format endianness (big, little)")
	pipelineCmd.Flags().DurationVar(&stageTimeout, "stage-timeout", 10*time.Minute, "Timeout per external stage")
	pipelineCmd.Flags().BoolVar(&skipAnalysis, "skip-analysis", false, "Skip external analysis stages")
	pipelineCmd.Flags().BoolVar(&skipPattern, "skip-pattern", false, "Skip pattern generation")
	pipelineCmd.Flags().StringSlice("analysis-command", []string{}, "External analysis command (repeatable)")

	viper.BindPFlag("pipeline.work_dir", pipelineCmd.Flags().Lookup("work-dir"))
	viper.BindPFlag("pipeline.enhanced_fields", pipelineCmd.Flags().Lookup("enhanced-fields"))
	viper.BindPFlag("pipeline.document", pipelineCmd.Flags().Lookup("document"))
	viper.BindPFlag("pipeline.pattern", pipelineCmd.Flags().Lookup("pattern"))
	viper.BindPFlag("pipeline.format_name", pipelineCmd.Flags().Lookup("format-name"))
	viper.BindPFlag("pipeline.format_version", pipelineCmd.Flags().Lookup("format-version"))
	viper.BindPFlag("pipeline.format_description", pipelineCmd.Flags().Lookup("format-description"))
	viper.BindPFlag("pipeline.endianness", pipelineCmd.Flags().Lookup("endianness"))
	viper.BindPFlag("pipeline.stage_timeout", pipelineCmd.Flags().Lookup("stage-timeout"))
	viper.BindPFlag("pipeline.skip_analysis", pipelineCmd.Flags().Lookup("skip-analysis"))
	viper.BindPFlag("pipeline.skip_pattern", pipelineCmd.Flags().Lookup("skip-pattern"))
	viper.BindPFlag("pipeline.analysis_commands", pipelineCmd.Flags().Lookup("analysis-command"))

	pipelineCmd.Flags().BoolVar(&strict, "strict", false, "Reject unknown structure types instead of degrading")
	viper.BindPFlag("pipeline.strict", pipelineCmd.Flags().Lookup("strict"))

	// Add commands to root
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(pipelineCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
