package client

import (
	"os"
	"path/filepath"
	"testing"
)

const testConfig = `
trace = false
default = "prod"

[[server]]
name = "prod"
url = "https://valet.example.com"

[[server]]
name = "staging"
url = "https://staging.valet.example.com"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "valet.toml")
	if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestNewRootConfig(t *testing.T) {
	filename := writeConfig(t, testConfig)

	t.Run("default server", func(t *testing.T) {
		config, err := NewRootConfig(filename, ConfigOverrides{})
		if err != nil {
			t.Fatalf("NewRootConfig() error: %v", err)
		}
		if config.Server.Name != "prod" || config.ConfigFile != filename {
			t.Errorf("config = %+v", config)
		}
	})

	t.Run("overrides win", func(t *testing.T) {
		trace := true
		config, err := NewRootConfig(filename, ConfigOverrides{Server: "staging", Trace: &trace})
		if err != nil {
			t.Fatalf("NewRootConfig() error: %v", err)
		}
		if config.Server.Name != "staging" || !config.Trace {
			t.Errorf("config = %+v", config)
		}
	})

	t.Run("unknown server", func(t *testing.T) {
		if _, err := NewRootConfig(filename, ConfigOverrides{Server: "dev"}); err == nil {
			t.Error("unknown server should fail")
		}
	})
}

func TestNewRootConfigErrors(t *testing.T) {
	t.Setenv("VALET_URL", "")

	tests := map[string]string{
		"no server": `trace = true`,
		"duplicate": `
[[server]]
name = "a"
url = "http://a"
[[server]]
name = "a"
url = "http://b"
`,
		"no url": `
[[server]]
name = "a"
`,
		"bad toml": `[[server`,
	}
	for name, content := range tests {
		if _, err := NewRootConfig(writeConfig(t, content), ConfigOverrides{}); err == nil {
			t.Errorf("%s: should fail", name)
		}
	}
}

func TestNewRootConfigFromEnv(t *testing.T) {
	t.Setenv("VALET_URL", "http://localhost:8585")
	t.Setenv("TRACE", "1")

	config, err := NewRootConfig(filepath.Join(t.TempDir(), "missing.toml"), ConfigOverrides{})
	if err != nil {
		t.Fatalf("NewRootConfig() error: %v", err)
	}
	if config.Server.Name != "env" || config.Server.URL != "http://localhost:8585" || !config.Trace {
		t.Errorf("config = %+v / %+v", config, config.Server)
	}
}

func TestLoadDotEnv(t *testing.T) {
	filename := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(filename, []byte("VALET_TEST_DOTENV=from-file\n"), 0600)
	t.Setenv("VALET_TEST_DOTENV", "")
	os.Unsetenv("VALET_TEST_DOTENV")

	if err := LoadDotEnv(filename); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if os.Getenv("VALET_TEST_DOTENV") != "from-file" {
		t.Errorf("VALET_TEST_DOTENV = %q", os.Getenv("VALET_TEST_DOTENV"))
	}
	if err := LoadDotEnv(filename + ".missing"); err != nil {
		t.Errorf("missing file should be ignored: %v", err)
	}
}

func TestPrefs(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "prefs.toml")

	prefs, err := LoadPrefs(filename)
	if err != nil || prefs.DarkMode {
		t.Fatalf("LoadPrefs() = %+v, %v, want defaults", prefs, err)
	}
	prefs.DarkMode = true
	if err := prefs.Save(); err != nil {
		t.Fatal(err)
	}

	again, err := LoadPrefs(filename)
	if err != nil || !again.DarkMode {
		t.Errorf("dark mode not persisted: %+v, %v", again, err)
	}
}
