/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: convert.go
Description: Convert command implementation for the Sayuri BFIR toolkit.
Loads a BFIR document, runs the pattern converter, and writes the generated
source to stdout or a file, reporting the required library imports.
*/

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/sayuri-bfir/pkg/hexpat"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RunConvert executes the convert command
func RunConvert(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	input := viper.GetString("convert.input")
	if input == "" {
		return fmt.Errorf("input document is required")
	}

	doc, err := LoadDocument(input)
	if err != nil {
		return err
	}

	logger.Info("Conversion starting", map[string]interface{}{
		"input":  input,
		"format": doc.Format.Name,
		"fields": len(doc.Fields),
	})

	converter := hexpat.NewConverter(doc,
		hexpat.WithRootOffset(viper.GetInt("convert.root_offset")),
		hexpat.WithUnrollThreshold(viper.GetInt("convert.unroll_threshold")),
	)
	text, err := converter.Convert()
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	output := viper.GetString("convert.output")
	if output == "" {
		fmt.Print(text)
	} else {
		if dir := filepath.Dir(output); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write pattern file: %w", err)
		}
		fmt.Printf("✅ Pattern written to %s\n", output)
	}

	logger.Info("Conversion completed", map[string]interface{}{
		"output":  output,
		"imports": converter.RequiredImports(),
	})
	return nil
}
