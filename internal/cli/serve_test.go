package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/store"
)

func TestLoadServeConfig(t *testing.T) {
	cfg, err := loadServeConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store.Backend != "memory" || cfg.Cache.Backend != "file" {
		t.Errorf("defaults = %+v", cfg)
	}

	path := filepath.Join(t.TempDir(), "serve.toml")
	data := `
[server]
addr = ":9000"
write_timeout = "30s"

[store]
backend = "redis"
redis_addr = "cache:6379"

[cache]
backend = "none"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadServeConfig(path)
	if err != nil {
		t.Fatalf("loadServeConfig: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.RedisAddr != "cache:6379" || cfg.Cache.Backend != "none" {
		t.Errorf("config = %+v", cfg)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadServeConfigErrors(t *testing.T) {
	if _, err := loadServeConfig(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.toml")
	_ = os.WriteFile(path, []byte("[server\n"), 0o644)
	if _, err := loadServeConfig(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad toml err = %v", err)
	}

	for _, doc := range []string{
		"[sever]\naddr = \":9000\"\n",
		"[store]\nbackend = \"file\"\ndirectory = \"/tmp\"\n",
	} {
		path := filepath.Join(t.TempDir(), "typo.toml")
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := loadServeConfig(path)
		if !errors.Is(err, errors.ErrCodeInvalidFormat) || !strings.Contains(err.Error(), "unknown keys") {
			t.Errorf("config %q err = %v, want unknown keys", doc, err)
		}
	}
}

func TestServeConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     serveConfig
		wantErr bool
	}{
		{"memory", serveConfig{Store: storeConfig{Backend: "memory"}, Cache: cacheConfig{Backend: "file"}}, false},
		{"file", serveConfig{Store: storeConfig{Backend: "file"}, Cache: cacheConfig{Backend: "none"}}, false},
		{"redis without addr", serveConfig{Store: storeConfig{Backend: "redis"}, Cache: cacheConfig{Backend: "none"}}, true},
		{"mongo", serveConfig{Store: storeConfig{Backend: "mongo", MongoURI: "mongodb://db"}, Cache: cacheConfig{Backend: "none"}}, false},
		{"mongo without uri", serveConfig{Store: storeConfig{Backend: "mongo"}, Cache: cacheConfig{Backend: "none"}}, true},
		{"unknown store", serveConfig{Store: storeConfig{Backend: "sqlite"}, Cache: cacheConfig{Backend: "none"}}, true},
		{"redis cache without addr", serveConfig{Store: storeConfig{Backend: "memory"}, Cache: cacheConfig{Backend: "redis"}}, true},
		{"unknown cache", serveConfig{Store: storeConfig{Backend: "memory"}, Cache: cacheConfig{Backend: "disk"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServeConfigApplyEnv(t *testing.T) {
	t.Setenv(envRedisAddr, "env:6379")
	t.Setenv(envMongoURI, "mongodb://env")

	cfg := serveConfig{Store: storeConfig{RedisAddr: "flag:6379"}}
	cfg.applyEnv()
	if cfg.Store.RedisAddr != "flag:6379" {
		t.Errorf("explicit address overridden: %q", cfg.Store.RedisAddr)
	}
	if cfg.Store.MongoURI != "mongodb://env" {
		t.Errorf("MongoURI = %q", cfg.Store.MongoURI)
	}
}

func TestOpenFileStore(t *testing.T) {
	dir := t.TempDir()
	st, err := openStore(context.Background(), storeConfig{Backend: "file", Dir: dir}, nil)
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer st.Close()
	fs, ok := st.(*store.File)
	if !ok {
		t.Fatalf("store = %T, want *store.File", st)
	}
	if fs.Path() != dir {
		t.Errorf("Path() = %q, want %q", fs.Path(), dir)
	}
}
