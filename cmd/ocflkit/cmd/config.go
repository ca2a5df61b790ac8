package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/goccy/go-yaml"
	"github.com/muesli/coral"
	"github.com/ocflkit/ocflkit"
	"github.com/ocflkit/ocflkit/backend/cloud"
	"github.com/ocflkit/ocflkit/backend/local"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/azureblob"
	"gocloud.dev/blob/s3blob"
)

const (
	defaultRepoName = "default"
	fileDriver      = "file"
	s3Driver        = "s3"
	azureDriver     = "azure"
)

var configFlags = struct {
	saveConfig bool
}{}

type Config struct {
	DigestAlgorithm  string                 `yaml:"digestAlgorithm,omitempty"`
	ContentDirectory string                 `yaml:"contentDirectory,omitempty"`
	Repos            map[string]*RepoConfig `yaml:"repos"`
}

type RepoConfig struct {
	Driver   string  `yaml:"driver"` // storage driver: "file", "s3", or "azure"
	Path     string  `yaml:"path,omitempty"`
	Bucket   *string `yaml:"bucket,omitempty"`
	Endpoint *string `yaml:"endpoint,omitempty"`
	Region   *string `yaml:"region,omitempty"`
}

var configCmd = &coral.Command{
	Use:   "config",
	Short: "print configuration",
	Long:  "print the active ocflkit configuration",
	Run:   runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configFlags.saveConfig, "save", false, "save config used in current command")
}

func runConfig(cmd *coral.Command, args []string) {
	conf, err := getConfig()
	if err != nil {
		log.Error("can't load config", "file", rootFlags.cfgFile, "err", err)
		return
	}
	writer := io.Writer(os.Stdout)
	if configFlags.saveConfig {
		f, err := os.OpenFile(rootFlags.cfgFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			log.Error("can't open config file for writing", "err", err)
			return
		}
		defer f.Close()
		writer = io.MultiWriter(os.Stdout, f)
		log.Info("saving config to file", "file", rootFlags.cfgFile)
	}
	if err := yaml.NewEncoder(writer).Encode(conf); err != nil {
		log.Error("error encoding or writing config", "err", err)
	}
}

func getConfig() (*Config, error) {
	var cfg *Config
	name := rootFlags.cfgFile
	f, err := os.Open(name)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file %s: %w", name, err)
	}
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("config file not found; using default settings", "file", name)
		cfg = &Config{
			Repos: map[string]*RepoConfig{
				defaultRepoName: defaultRepo(),
			},
		}
	}
	if f != nil {
		defer f.Close()
		cfg = &Config{}
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		log.Debug("read config", "file", name)
	}
	repo := cfg.Repo(rootFlags.repoName, true)
	repo.applyRootFlags()
	return cfg, nil
}

// Defaults returns the object-wide defaults from the config.
func (cfg *Config) Defaults() ocflkit.Config {
	return ocflkit.Config{
		DigestAlgorithm:  cfg.DigestAlgorithm,
		ContentDirectory: cfg.ContentDirectory,
	}
}

func defaultRepo() *RepoConfig {
	return &RepoConfig{
		Driver: fileDriver,
		Path:   ".",
	}
}

func (cfg *Config) Repo(name string, create bool) *RepoConfig {
	if name == "" {
		name = defaultRepoName
	}
	if cfg.Repos == nil {
		cfg.Repos = map[string]*RepoConfig{}
	}
	repo := cfg.Repos[name]
	if repo == nil && create {
		repo = defaultRepo()
		cfg.Repos[name] = repo
	}
	return repo
}

// NewFSPath returns the FS and base path for the named repo.
func (cfg *Config) NewFSPath(ctx context.Context, name string) (ocflkit.FS, string, error) {
	repo := cfg.Repo(name, false)
	if repo == nil {
		return nil, "", fmt.Errorf("no repo named %q in config", name)
	}
	return repo.GetFSPath(ctx)
}

func (repo *RepoConfig) GetFSPath(ctx context.Context) (ocflkit.FS, string, error) {
	var (
		fsys ocflkit.FS
		pth  = repo.Path
		err  error
	)
	if pth == "" {
		pth = "."
	}
	switch repo.Driver {
	case fileDriver:
		// repo.Path is the FS root, so the returned path is "."
		pth = "."
		fsys, err = repo.NewLocalFS()
	case s3Driver:
		fsys, err = repo.NewS3FS(ctx) // fsys needs to be closed
	case azureDriver:
		fsys, err = repo.NewAzureFS(ctx) // fsys needs to be closed
	default:
		return nil, "", fmt.Errorf("invalid storage driver: %q", repo.Driver)
	}
	if err != nil {
		return nil, "", fmt.Errorf("in %q storage driver: %w", repo.Driver, err)
	}
	return fsys, pth, nil
}

func (repo *RepoConfig) NewS3FS(ctx context.Context) (*cloud.FS, error) {
	if repo.Bucket == nil {
		return nil, errors.New("'bucket' config is required")
	}
	awsCfg := aws.Config{
		Region:   repo.Region,
		Endpoint: repo.Endpoint,
	}
	sess, err := session.NewSession(&awsCfg)
	if err != nil {
		return nil, err
	}
	bucket, err := s3blob.OpenBucket(ctx, sess, *repo.Bucket, nil)
	if err != nil {
		return nil, err
	}
	log.Debug("storage backend settings", "driver", s3Driver, "bucket", *repo.Bucket)
	return cloud.NewFS(bucket), nil
}

func (repo *RepoConfig) NewAzureFS(ctx context.Context) (*cloud.FS, error) {
	if repo.Bucket == nil {
		return nil, errors.New("'bucket' config is required")
	}
	bucket, err := blob.OpenBucket(ctx, "azblob://"+*repo.Bucket)
	if err != nil {
		return nil, err
	}
	log.Debug("storage backend settings", "driver", azureDriver, "container", *repo.Bucket)
	return cloud.NewFS(bucket), nil
}

func (repo *RepoConfig) NewLocalFS() (*local.FS, error) {
	root := repo.Path
	if root == "" {
		root = "."
	}
	root = filepath.Clean(root)
	if !filepath.IsAbs(root) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = filepath.Join(wd, root)
	}
	log.Debug("storage backend settings", "driver", fileDriver, "root", root)
	return local.NewFS(root)
}

func (repo *RepoConfig) applyRootFlags() {
	if rootFlags.driver != "" {
		repo.Driver = rootFlags.driver
	}
	if rootFlags.driverPath != "" {
		repo.Path = rootFlags.driverPath
	}
	if rootFlags.driverBucket != "" {
		repo.Bucket = &rootFlags.driverBucket
	}
}
