package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/devbush/ytbatch/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Sampling != "sample-url" {
		t.Errorf("Default sampling = %s, want sample-url", cfg.Defaults.Sampling)
	}
	if cfg.Defaults.RangeParsing != "permissive" {
		t.Errorf("Default range parsing = %s, want permissive", cfg.Defaults.RangeParsing)
	}
	if cfg.Defaults.OutputTemplate != domain.DefaultOutputTemplate {
		t.Errorf("Default output template = %s", cfg.Defaults.OutputTemplate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := Load(fs, "/home/user/.ytbatch/config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FailurePolicy() != domain.ContinueOnError {
		t.Errorf("FailurePolicy() = %s, want continue", cfg.FailurePolicy())
	}
}

func TestConfig_Save_Load(t *testing.T) {
	fs := afero.NewMemMapFs()
	configPath := "/home/user/.ytbatch/config.yaml"

	cfg := DefaultConfig()
	cfg.Defaults.Sampling = "first-entry"
	cfg.Credentials.Browser = "firefox"

	if err := cfg.Save(fs, configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(fs, configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.SamplingKind() != domain.SampleFirstEntry {
		t.Errorf("Loaded sampling = %s, want first-entry", loaded.SamplingKind())
	}
	if loaded.Credentials.Browser != "firefox" {
		t.Errorf("Loaded browser = %s, want firefox", loaded.Credentials.Browser)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/cfg.yaml", []byte("defaults:\n  on_error: abort\n"), 0644)

	cfg, err := Load(fs, "/cfg.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.FailurePolicy() != domain.AbortOnError {
		t.Errorf("FailurePolicy() = %s, want abort", cfg.FailurePolicy())
	}
	if cfg.Defaults.Sampling != "sample-url" {
		t.Errorf("Sampling = %s, want default sample-url", cfg.Defaults.Sampling)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "defaults: [", "failed to parse config"},
		{"bad sampling", "defaults:\n  sampling: random\n", "unknown sampling mode"},
		{"bad range policy", "defaults:\n  range_parsing: lenient\n", "unknown range parsing policy"},
		{"bad failure policy", "defaults:\n  on_error: ignore\n", "unknown failure policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			_ = afero.WriteFile(fs, "/cfg.yaml", []byte(tt.content), 0644)

			_, err := Load(fs, "/cfg.yaml")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := EnsureDirs(fs); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}
	if ok, _ := afero.DirExists(fs, BinDir()); !ok {
		t.Errorf("EnsureDirs() did not create %s", BinDir())
	}
}

func TestAppDir(t *testing.T) {
	dir := AppDir()
	if dir == "" {
		t.Error("AppDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".ytbatch")
	if dir != expected {
		t.Errorf("AppDir() = %s, want %s", dir, expected)
	}
}
