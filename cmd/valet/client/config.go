package client

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// RootConfig describes client application config parameters
type RootConfig struct {
	ConfigFile string

	Server *ServerConfig
	Trace  bool
	Time   bool
}

// ServerConfig describes a server (from config file)
type ServerConfig struct {
	Name string
	URL  string
}

// ConfigOverrides are values given on the command line, they win over
// the config file and the environment
type ConfigOverrides struct {
	Trace  *bool
	Time   *bool
	Server string
}

type tomlRootConfig struct {
	Trace   bool
	Time    bool
	Default string
	Server  []*ServerConfig
}

// LoadDotEnv loads a .env file from the current directory, if any.
// Existing environment variables are not overwritten.
func LoadDotEnv(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return nil
	}
	return godotenv.Load(filename)
}

// NewRootConfig reads configuration from filename and
// environment.
// Priority : CLI flag, config file, environment
func NewRootConfig(filename string, overrides ConfigOverrides) (*RootConfig, error) {
	rootConfig := &RootConfig{}

	envTrace, _ := strconv.ParseBool(os.Getenv("TRACE"))
	envTime, _ := strconv.ParseBool(os.Getenv("TIME"))
	envServer := os.Getenv("SERVER")

	tConfig := &tomlRootConfig{
		Trace:   envTrace,
		Time:    envTime,
		Default: envServer,
	}

	if _, err := os.Stat(filename); err == nil {
		if _, err := toml.DecodeFile(filename, tConfig); err != nil {
			return nil, err
		}
		rootConfig.ConfigFile = filename
	}

	if overrides.Trace != nil {
		tConfig.Trace = *overrides.Trace
	}
	if overrides.Time != nil {
		tConfig.Time = *overrides.Time
	}
	if overrides.Server != "" {
		tConfig.Default = overrides.Server
	}

	// VALET_URL allows a config-less usage (scripts, CI)
	if len(tConfig.Server) == 0 && os.Getenv("VALET_URL") != "" {
		tConfig.Server = append(tConfig.Server, &ServerConfig{
			Name: "env",
			URL:  os.Getenv("VALET_URL"),
		})
		if tConfig.Default == "" || tConfig.Default == envServer {
			tConfig.Default = "env"
		}
	}

	if len(tConfig.Server) == 0 {
		return nil, fmt.Errorf("must define at least one [[server]] in configuration file")
	}

	if tConfig.Default == "" {
		tConfig.Default = tConfig.Server[0].Name
	}

	for _, server := range tConfig.Server {
		if server.Name == tConfig.Default {
			if rootConfig.Server != nil {
				return nil, fmt.Errorf("multiple declaration of server '%s'", server.Name)
			}
			rootConfig.Server = server
		}
	}

	if rootConfig.Server == nil {
		return nil, fmt.Errorf("unable to find server '%s' in configuration file", tConfig.Default)
	}

	if rootConfig.Server.URL == "" {
		return nil, fmt.Errorf("server '%s' has no url", rootConfig.Server.Name)
	}

	rootConfig.Trace = tConfig.Trace
	rootConfig.Time = tConfig.Time

	return rootConfig, nil
}
