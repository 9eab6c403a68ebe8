package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/persistorai/borderroute/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

const defaultURL = "http://localhost:3030"

var (
	apiClient *client.Client
	flagURL   string
	flagFmt   string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("borderroute version %s (commit: %s, built: %s)", version, commit, buildDate)
	}
	return fmt.Sprintf("borderroute version %s-dev", version)
}

type configFile struct {
	URL    string `yaml:"url"`
	Format string `yaml:"format"`
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "borderroute",
		Short:   "Find every shortest land route between two countries",
		Version: versionString(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			resolveConfig(cmd)
			if flagFmt != "text" && flagFmt != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", flagFmt)
			}
			apiClient = client.New(flagURL)
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", defaultURL, "borderroute server URL (env: BORDERROUTE_URL)")
	rootCmd.PersistentFlags().StringVar(&flagFmt, "format", "text", "Output format: text|json")

	rootCmd.AddCommand(newRouteCmd())
	rootCmd.AddCommand(newCountriesCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig fills unset flags: an explicit flag wins, then the
// environment, then ~/.borderroute/config.yaml.
func resolveConfig(cmd *cobra.Command) {
	urlSet := cmd.Flags().Changed("url")
	fmtSet := cmd.Flags().Changed("format")

	if !urlSet {
		if v := os.Getenv("BORDERROUTE_URL"); v != "" {
			flagURL = v
			urlSet = true
		}
	}

	if urlSet && fmtSet {
		return
	}

	cfg, err := loadConfigFile()
	if err != nil || cfg == nil {
		return
	}

	if !urlSet && cfg.URL != "" {
		flagURL = cfg.URL
	}
	if !fmtSet && cfg.Format != "" {
		flagFmt = cfg.Format
	}
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".borderroute", "config.yaml"), nil
}

func loadConfigFile() (*configFile, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
