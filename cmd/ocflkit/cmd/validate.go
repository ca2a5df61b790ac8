package cmd

import (
	"context"
	"io"
	"os"
	"path"

	"github.com/muesli/coral"
	"github.com/ocflkit/ocflkit"
	"github.com/ocflkit/ocflkit/validation"
)

var validateFlags = struct {
	objectPath string
	alg        string
	structural bool
	numGos     int
}{}

var validateCmd = &coral.Command{
	Use:   "validate",
	Short: "Validate an OCFL object",
	Long:  "Validate the structure and content digests of an OCFL object.",
	Run: func(cmd *coral.Command, args []string) {
		conf, err := getConfig()
		if err != nil {
			log.Error("can't load config", "err", err)
			return
		}
		runValidate(cmd.Context(), conf)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFlags.objectPath, "object", ".", "path of the object root, relative to the repo")
	validateCmd.Flags().StringVar(&validateFlags.alg, "alg", "", "validate content with an alternate digest algorithm from the fixity block")
	validateCmd.Flags().BoolVar(&validateFlags.structural, "structural", false, "skip content digest validation")
	validateCmd.Flags().IntVar(&validateFlags.numGos, "jobs", 0, "number of concurrent file digests")
}

func runValidate(ctx context.Context, conf *Config) {
	fsys, root, err := conf.NewFSPath(ctx, rootFlags.repoName)
	if err != nil {
		log.Error("could not initialize storage driver", "repo", rootFlags.repoName, "err", err)
		return
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}
	dir := objectDir(root, validateFlags.objectPath)
	opts := []ocflkit.ValidationOption{
		ocflkit.ValidationConfig(conf.Defaults()),
		ocflkit.ValidationLogger(log),
		ocflkit.DigestConcurrency(validateFlags.numGos),
	}
	if validateFlags.alg != "" {
		opts = append(opts, ocflkit.ValidationAlg(validateFlags.alg))
	}
	result := validateOne(ctx, fsys, dir, opts)
	printResult(os.Stdout, result)
	if !result.Valid() {
		log.Error("object is not valid", "path", dir)
		os.Exit(1)
	}
	log.Info("object is valid", "path", dir)
}

func validateOne(ctx context.Context, fsys ocflkit.FS, dir string, opts []ocflkit.ValidationOption) *validation.Result {
	if validateFlags.structural {
		_, result := ocflkit.ValidateObjectRoot(ctx, fsys, dir, opts...)
		return result
	}
	return ocflkit.ValidateObject(ctx, fsys, dir, opts...)
}

func objectDir(root, obj string) string {
	dir := path.Join(root, obj)
	if dir == "" {
		return "."
	}
	return dir
}
