package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtable/pkg/cache"
	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/observability"
	"github.com/matzehuels/gridtable/pkg/pipeline"
	"github.com/matzehuels/gridtable/pkg/service"
	"github.com/matzehuels/gridtable/pkg/store"
)

// Environment variables consulted when the config and flags leave the
// backend addresses empty.
const (
	envRedisAddr = "GRIDTABLE_REDIS_ADDR"
	envMongoURI  = "GRIDTABLE_MONGO_URI"
)

// serveConfig is the serve config file:
//
//	[server]
//	addr = ":8080"
//	write_timeout = "30s"
//
//	[store]
//	backend = "redis"        # memory | file | redis | mongo
//	redis_addr = "localhost:6379"
//
//	[cache]
//	backend = "redis"        # none | file | redis
type serveConfig struct {
	Server service.Config `toml:"server"`
	Store  storeConfig    `toml:"store"`
	Cache  cacheConfig    `toml:"cache"`
}

type storeConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type cacheConfig struct {
	Backend string `toml:"backend"`
}

// loadServeConfig reads path. An empty path returns the defaults.
func loadServeConfig(path string) (serveConfig, error) {
	cfg := serveConfig{Store: storeConfig{Backend: "memory"}, Cache: cacheConfig{Backend: "file"}}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// applyEnv fills empty backend addresses from the environment.
func (c *serveConfig) applyEnv() {
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = os.Getenv(envRedisAddr)
	}
	if c.Store.MongoURI == "" {
		c.Store.MongoURI = os.Getenv(envMongoURI)
	}
}

func (c *serveConfig) validate() error {
	switch c.Store.Backend {
	case "memory", "file":
	case "redis":
		if c.Store.RedisAddr == "" {
			return errors.Validation("redis store needs --redis-addr or %s", envRedisAddr)
		}
	case "mongo":
		if c.Store.MongoURI == "" {
			return errors.Validation("mongo store needs --mongo-uri or %s", envMongoURI)
		}
	default:
		return errors.Validation("unknown store backend %q (want memory, file, redis or mongo)", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case "none", "file":
	case "redis":
		if c.Store.RedisAddr == "" {
			return errors.Validation("redis cache needs --redis-addr or %s", envRedisAddr)
		}
	default:
		return errors.Validation("unknown cache backend %q (want none, file or redis)", c.Cache.Backend)
	}
	return nil
}

// serveCommand runs the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		flags      serveConfig
		hooks      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored tables over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			// Flags given explicitly override the config file.
			set := cmd.Flags().Changed
			if set("addr") {
				cfg.Server.Addr = flags.Server.Addr
			}
			if set("store") {
				cfg.Store.Backend = flags.Store.Backend
			}
			if set("cache") {
				cfg.Cache.Backend = flags.Cache.Backend
			}
			if set("store-dir") {
				cfg.Store.Dir = flags.Store.Dir
			}
			if set("redis-addr") {
				cfg.Store.RedisAddr = flags.Store.RedisAddr
			}
			if set("mongo-uri") {
				cfg.Store.MongoURI = flags.Store.MongoURI
			}
			if set("mongo-db") {
				cfg.Store.MongoDatabase = flags.Store.MongoDatabase
			}
			cfg.applyEnv()
			if err := cfg.validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), cfg, hooks)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")
	cmd.Flags().StringVar(&flags.Server.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&flags.Store.Backend, "store", "memory", "table store: memory, file, redis, mongo")
	cmd.Flags().StringVar(&flags.Store.Dir, "store-dir", "", "directory for the file store (default ~/.config/gridtable/tables)")
	cmd.Flags().StringVar(&flags.Cache.Backend, "cache", "file", "artifact cache: none, file, redis")
	cmd.Flags().StringVar(&flags.Store.RedisAddr, "redis-addr", "", "redis address (default $"+envRedisAddr+")")
	cmd.Flags().StringVar(&flags.Store.MongoURI, "mongo-uri", "", "mongodb URI (default $"+envMongoURI+")")
	cmd.Flags().StringVar(&flags.Store.MongoDatabase, "mongo-db", store.DefaultMongoDatabase, "mongodb database")
	cmd.Flags().BoolVar(&hooks, "log-events", false, "log render, cache and request events at debug level")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg serveConfig, logEvents bool) error {
	logger := loggerFromContext(ctx)
	if logEvents {
		observability.NewLogHooks(logger.WithPrefix("events")).Register()
		defer observability.Reset()
	}

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	ac, err := c.openArtifactCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ac, nil, logger)
	defer runner.Close()

	logger.Info("starting service", "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
	return service.New(st, runner, logger).ListenAndServe(ctx, cfg.Server)
}

func openStore(ctx context.Context, cfg storeConfig, logger *log.Logger) (store.Store, error) {
	switch cfg.Backend {
	case "file":
		return store.NewFile(cfg.Dir, logger)
	case "redis":
		return store.DialRedis(ctx, cfg.RedisAddr, logger)
	case "mongo":
		return store.DialMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	}
	return store.NewMemory(logger), nil
}

func (c *CLI) openArtifactCache(ctx context.Context, cfg serveConfig) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		rc, err := cache.DialRedisCache(ctx, cfg.Store.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("artifact cache: %w", err)
		}
		return rc, nil
	}
	return c.newCache(false), nil
}
