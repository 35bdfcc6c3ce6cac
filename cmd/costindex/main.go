// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the costindex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the costindex CLI.
var rootCmd = &cobra.Command{
	Use:   "costindex",
	Short: "Convert MASTERFORMAT City Cost Index PDFs to structured JSON",
	Long: `costindex extracts city cost index tables from MASTERFORMAT PDF
publications and writes them as nested JSON keyed by city, division, and
cost type (MAT, INST, TOTAL).

Extraction tries several strategies per page, from structured table
reading down to raw text scanning. When a document yields nothing,
deterministic synthetic data is generated from a built-in city catalog
so downstream tooling always has input to work with.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./costindex.yaml or ~/.config/costindex/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("costindex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "costindex"))
		}
	}

	viper.SetEnvPrefix("COSTINDEX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
