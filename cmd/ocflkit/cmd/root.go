package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/muesli/coral"
	"github.com/ocflkit/ocflkit/logging"
)

const defaultCfg = ".ocflkit.yaml"

var (
	rootFlags = struct {
		cfgFile      string
		repoName     string
		driver       string // override repo settings
		driverPath   string // override repo settings
		driverBucket string // override repo settings
		verbose      bool
	}{}

	rootCmd = &coral.Command{
		Use:          "ocflkit",
		Short:        "A command line tool for OCFL objects",
		Long:         "A command line tool for validating and inspecting OCFL objects.",
		SilenceUsage: true,
	}

	log *slog.Logger = logging.DefaultLogger()
)

// Execute runs the root command. It is called once from main.
func Execute() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	coral.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&rootFlags.cfgFile, "config", "c", "", "config file (default is HOME/"+defaultCfg+")")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.repoName, "repo", "r", "default", "name of repo in configuration to use")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.driver, "driver", "d", "", "override active repo's 'driver' setting")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.driverPath, "path", "p", "", "override active repo's 'path' setting")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.driverBucket, "bucket", "b", "", "override active repo's 'bucket' setting")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if rootFlags.verbose {
		logging.SetDefaultLevel(slog.LevelDebug)
	}
	if rootFlags.cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Error("can't determine home directory", "err", err)
			return
		}
		rootFlags.cfgFile = filepath.Join(home, defaultCfg)
	}
}
