/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Sayuri BFIR commands. Provides common
configuration loading, logging setup, and document loading used across all
command implementations.
*/

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/kleascm/sayuri-bfir/pkg/bfir"
	"github.com/kleascm/sayuri-bfir/pkg/logging"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("SAYURI")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging builds the shared logger from the configured level and format
func SetupLogging() (*logging.Logger, error) {
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		Timestamp: true,
		Colors:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// LoadDocument reads a BFIR document from disk, choosing the decoder by file
// extension: .hcl for hand-authored documents, anything else is treated as
// the JSON wire form.
func LoadDocument(path string) (*bfir.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".hcl") {
		return bfir.ParseHCL(path, data)
	}
	return bfir.ParseJSON(data)
}
