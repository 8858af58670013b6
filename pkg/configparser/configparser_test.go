package configparser

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Mode string

	Server struct {
		Port    string        `env:"TESTCFG_SERVER_PORT" default:"3000"`
		Timeout time.Duration `env:"TESTCFG_SERVER_TIMEOUT" default:"5s"`
	}
	Engine struct {
		Delay   time.Duration `env:"TESTCFG_ENGINE_DELAY" default:"1500ms"`
		Enabled bool          `env:"TESTCFG_ENGINE_ENABLED" default:"true"`
		Radius  float64       `env:"TESTCFG_ENGINE_RADIUS" default:"2.0"`
		Workers int32         `env:"TESTCFG_ENGINE_WORKERS"`
	}
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Engine.Delay != 1500*time.Millisecond {
		t.Errorf("delay = %v, want 1.5s", cfg.Engine.Delay)
	}
	if !cfg.Engine.Enabled || cfg.Engine.Radius != 2.0 || cfg.Engine.Workers != 0 {
		t.Errorf("unexpected engine config: %+v", cfg.Engine)
	}
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("TESTCFG_SERVER_PORT", "8080")
	t.Setenv("TESTCFG_ENGINE_WORKERS", "4")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv() error = %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Engine.Workers != 4 {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestParseEnv_InvalidValue(t *testing.T) {
	t.Setenv("TESTCFG_ENGINE_ENABLED", "maybe")

	var cfg testConfig
	if err := ParseEnv(&cfg); err == nil {
		t.Fatal("expected error for invalid bool")
	}
}

func TestParseEnv_RequiresPointer(t *testing.T) {
	if err := ParseEnv(testConfig{}); err != ErrNotStructPointer {
		t.Fatalf("expected ErrNotStructPointer, got %v", err)
	}
}

func TestLoadYamlFile_FlattensAndSubstitutes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
testcfg:
  server:
    port: 9090
  engine:
    delay: ${TESTCFG_DELAY_SRC:-250ms}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// t.Setenv registers cleanup for the variables LoadYamlFile will set
	t.Setenv("TESTCFG_SERVER_PORT", "")
	t.Setenv("TESTCFG_ENGINE_DELAY", "")

	if err := LoadYamlFile(path); err != nil {
		t.Fatalf("LoadYamlFile() error = %v", err)
	}

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Engine.Delay != 250*time.Millisecond {
		t.Errorf("delay = %v, want 250ms", cfg.Engine.Delay)
	}
}

func TestLoadYamlFile_NoPath(t *testing.T) {
	if err := LoadYamlFile(""); err != ErrNoFilePath {
		t.Fatalf("expected ErrNoFilePath, got %v", err)
	}
}
