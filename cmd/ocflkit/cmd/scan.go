package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/muesli/coral"
	"github.com/ocflkit/ocflkit"
)

var scanFlags = struct {
	validate    bool
	concurrency int
}{}

var scanCmd = &coral.Command{
	Use:   "scan",
	Short: "Find OCFL objects under a storage root",
	Long:  "Walk a storage root, listing every OCFL object found, optionally validating each.",
	Run: func(cmd *coral.Command, args []string) {
		conf, err := getConfig()
		if err != nil {
			log.Error("can't load config", "err", err)
			return
		}
		runScan(cmd.Context(), conf)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanFlags.validate, "validate", false, "validate each object found")
	scanCmd.Flags().IntVar(&scanFlags.concurrency, "jobs", 4, "number of concurrent directory reads")
}

func runScan(ctx context.Context, conf *Config) {
	fsys, root, err := conf.NewFSPath(ctx, rootFlags.repoName)
	if err != nil {
		log.Error("could not initialize storage driver", "repo", rootFlags.repoName, "err", err)
		return
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}
	var found, invalid int
	each := func(obj *ocflkit.ObjectRoot) error {
		found++
		fmt.Fprintln(os.Stdout, obj.Path)
		if !scanFlags.validate {
			return nil
		}
		opts := []ocflkit.ValidationOption{
			ocflkit.ValidationConfig(conf.Defaults()),
			ocflkit.ValidationLogger(log),
		}
		result := ocflkit.ValidateObject(ctx, fsys, obj.Path, opts...)
		printResult(os.Stdout, result)
		if !result.Valid() {
			invalid++
		}
		return nil
	}
	scanOpts := &ocflkit.ScanObjectsOpts{Concurrency: scanFlags.concurrency}
	if err := ocflkit.ScanObjects(ctx, fsys, root, each, scanOpts); err != nil {
		log.Error("scan failed", "err", err)
		os.Exit(1)
	}
	log.Info("scan complete", "objects", found, "invalid", invalid)
	if invalid > 0 {
		os.Exit(1)
	}
}
