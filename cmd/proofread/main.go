// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the proofread CLI. proofread walks
// directory trees for PDFs, checks their text with LanguageTool and prints
// the suspected errors as a Markdown report.
package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/proofread/internal/logging"
	"github.com/pdiddy/proofread/internal/secrets"
	"github.com/pdiddy/proofread/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is built in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop().Sugar()

// secretDefault returns fallback if set, or the secret value for key otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd checks the PDFs under each directory argument.
var rootCmd = &cobra.Command{
	Use:   "proofread [-o output.md] <directory>...",
	Short: "Spell- and grammar-check the PDFs in a directory tree",
	Long: `proofread walks each directory recursively, extracts the text of every
file ending in .pdf, submits it in sentence batches to LanguageTool and
renders the reported issues as Markdown tables. A file without issues gets a
single success line.

The report stops after 20 findings across all directories. It is written to
standard output, or to the file given with -o.`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l

		if path := viper.ConfigFileUsed(); path != "" {
			logger.Infow("using config file", "path", path)
		}

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debugw("loaded secrets", "keys", keys)
		}
		return nil
	},
	RunE: runCheck,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./proofread.yaml or ~/.config/proofread/proofread.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every file and batch")
	rootCmd.Flags().StringP("output", "o", "", "write the report to this file instead of standard output")
}

func initConfig() {
	// A missing .env is fine; the variables may come from the shell.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("proofread")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "proofread"))
		}
	}

	viper.SetEnvPrefix("PROOFREAD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	_ = viper.ReadInConfig()
}

func setDefaults() {
	def := types.DefaultConfig()
	viper.SetDefault("endpoint", def.Check.Endpoint)
	viper.SetDefault("timeout", def.Check.Timeout)
	viper.SetDefault("user_agent", def.Check.UserAgent)
	viper.SetDefault("retry.max_attempts", def.Check.Retry.MaxAttempts)
	viper.SetDefault("retry.wait", def.Check.Retry.Wait)
	viper.SetDefault("extractor", string(def.Extraction.Backend))
	viper.SetDefault("container_image", def.Extraction.ContainerImage)
	viper.SetDefault("max_batch_length", def.Report.MaxBatchLength)
	viper.SetDefault("max_findings", def.Report.MaxFindings)
}

// loadConfig overlays the settable keys on the compiled-in defaults.
// Language, disabled rules and the allow-list are not configurable.
func loadConfig() types.RunConfig {
	cfg := types.DefaultConfig()

	cfg.Check.Endpoint = viper.GetString("endpoint")
	cfg.Check.Timeout = viper.GetDuration("timeout")
	cfg.Check.UserAgent = viper.GetString("user_agent")
	cfg.Check.Retry.MaxAttempts = viper.GetInt("retry.max_attempts")
	cfg.Check.Retry.Wait = viper.GetDuration("retry.wait")
	cfg.Check.Username = secretDefault(secrets.KeyUsername, viper.GetString("username"))
	cfg.Check.APIKey = secretDefault(secrets.KeyAPIKey, viper.GetString("api_key"))

	cfg.Extraction.Backend = types.ExtractionBackend(viper.GetString("extractor"))
	cfg.Extraction.ContainerImage = viper.GetString("container_image")

	cfg.Report.MaxBatchLength = viper.GetInt("max_batch_length")
	cfg.Report.MaxFindings = viper.GetInt("max_findings")
	return cfg
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
