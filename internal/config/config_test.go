package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, env, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("config", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("config", env+".yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfig(t, "test", `
http:
  port: 8080
database:
  addrs:
    - localhost:6379
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected default read timeout, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.KeyPrefix != "notedex:" {
		t.Errorf("expected default key prefix, got %q", cfg.Search.KeyPrefix)
	}
	if cfg.Search.SimilarityThreshold != 0.5 {
		t.Errorf("expected default threshold 0.5, got %g", cfg.Search.SimilarityThreshold)
	}
	if cfg.Search.DebounceMs != 300 {
		t.Errorf("expected default debounce 300ms, got %d", cfg.Search.DebounceMs)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_REDIS_PASSWORD", "s3cret")
	writeConfig(t, "test", `
http:
  port: 8080
database:
  addrs:
    - localhost:6379
  password: ${TEST_REDIS_PASSWORD}
embedding:
  api_key: ${TEST_MISSING_KEY:-fallback}
  model: text-embedding-3-small
`)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("env var not expanded: %q", cfg.Database.Password)
	}
	if cfg.Embedding.APIKey != "fallback" {
		t.Errorf("default not applied: %q", cfg.Embedding.APIKey)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing port",
			content: `
database:
  addrs: [localhost:6379]
`,
			wantErr: "http.port",
		},
		{
			name: "missing addrs",
			content: `
http:
  port: 8080
`,
			wantErr: "database.addrs",
		},
		{
			name: "threshold out of range",
			content: `
http:
  port: 8080
database:
  addrs: [localhost:6379]
search:
  similarity_threshold: 1.5
`,
			wantErr: "similarity_threshold",
		},
		{
			name: "api key without model",
			content: `
http:
  port: 8080
database:
  addrs: [localhost:6379]
embedding:
  api_key: sk-test
`,
			wantErr: "embedding.model",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, "test", tt.content)
			_, err := Load("test")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if env := GetEnv(); env != "local" {
		t.Errorf("expected local default, got %q", env)
	}
	t.Setenv("ENV", "prod")
	if env := GetEnv(); env != "prod" {
		t.Errorf("expected prod, got %q", env)
	}
}
