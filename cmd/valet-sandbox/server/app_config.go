package server

import (
	"fmt"
	"path"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cloudvalet/valet/common"
	"golang.org/x/crypto/bcrypt"
)

// AppConfig describes the general configuration of an App
type AppConfig struct {
	// address where the API server will listen
	Listen string

	// show TRACE messages
	Trace bool

	// answer {"vms": [...]} instead of a bare list on /azure/vms
	Envelope bool

	// sent in the Latest-Known-Client-Version header (empty = no header)
	LatestClientVersion string

	// password of the default "admin" user
	AdminPassword string

	// bcrypt cost of password hashes
	BcryptCost int

	// size (bytes) of the in-memory log, served on /_sandbox/log
	LogBufferSize int

	// VMs available at startup
	SeedVMs []common.VirtualMachine

	// per-IP rate limiting
	Rate RateControllerConfig

	// global configuration path
	configPath string
}

type tomlSeedVM struct {
	Name          string
	ResourceGroup string `toml:"resource_group"`
	Location      string
	Status        string
}

type tomlAppConfig struct {
	Listen              string
	Trace               bool
	Envelope            bool
	LatestClientVersion string `toml:"latest_client_version"`
	AdminPassword       string `toml:"admin_password"`
	BcryptCost          int    `toml:"bcrypt_cost"`
	LogBufferSize       int    `toml:"log_buffer_size"`

	RateEnable            bool     `toml:"rate_enable"`
	RateBurst             int      `toml:"rate_burst"`
	RateRequestsPerSecond float64  `toml:"rate_requests_per_second"`
	RateMaxDelay          string   `toml:"rate_max_delay"`
	RateConcurrentMax     int32    `toml:"rate_concurrent_max"`
	RateVIPList           []string `toml:"rate_vip_list"`

	SeedVM []*tomlSeedVM `toml:"seed_vm"`
}

// DefaultSeedVMs is the fleet of a sandbox without seed_vm settings
var DefaultSeedVMs = []common.VirtualMachine{
	{Name: "mock-vm1", ResourceGroup: "mock-group", Location: "eastus", Status: "VM running"},
	{Name: "mock-vm2", ResourceGroup: "mock-group", Location: "westeurope", Status: "VM deallocated"},
	{Name: "web-01", ResourceGroup: "rg-web", Location: "eastus", Status: "VM running"},
	{Name: "web-02", ResourceGroup: "rg-web", Location: "eastus", Status: "VM stopped"},
	{Name: "db-01", ResourceGroup: "rg-data", Location: "northeurope", Status: "VM running"},
}

// NewDefaultAppConfig returns the settings used when there's no
// configuration file
func NewDefaultAppConfig() *AppConfig {
	return &AppConfig{
		Listen:              ":8000",
		Envelope:            true,
		LatestClientVersion: "",
		AdminPassword:       "admin123",
		BcryptCost:          bcrypt.DefaultCost,
		LogBufferSize:       64 * 1024,
		SeedVMs:             DefaultSeedVMs,
		Rate: RateControllerConfig{
			ConcurrentMaxRequests:     8,
			ConcurrentOverflowTimeout: 5 * time.Second,
			RateEnable:                true,
			RateBurst:                 50,
			RateRequestsPerSecond:     20,
			RateMaxDelay:              2 * time.Second,
			VipList:                   map[string]bool{},
		},
	}
}

// NewAppConfigFromTomlFile return a AppConfig using
// valet-sandbox.toml config file in the given configPath
func NewAppConfigFromTomlFile(configPath string) (*AppConfig, error) {
	filename := path.Clean(configPath + "/valet-sandbox.toml")

	appConfig := NewDefaultAppConfig()
	appConfig.configPath = configPath

	// defaults (if not in the file)
	tConfig := &tomlAppConfig{
		Listen:                appConfig.Listen,
		Envelope:              appConfig.Envelope,
		AdminPassword:         appConfig.AdminPassword,
		BcryptCost:            appConfig.BcryptCost,
		LogBufferSize:         appConfig.LogBufferSize,
		RateEnable:            appConfig.Rate.RateEnable,
		RateBurst:             appConfig.Rate.RateBurst,
		RateRequestsPerSecond: appConfig.Rate.RateRequestsPerSecond,
		RateMaxDelay:          appConfig.Rate.RateMaxDelay.String(),
		RateConcurrentMax:     appConfig.Rate.ConcurrentMaxRequests,
	}

	meta, err := toml.DecodeFile(filename, tConfig)
	if err != nil {
		return nil, err
	}

	undecoded := meta.Undecoded()
	for _, param := range undecoded {
		return nil, fmt.Errorf("unknown setting '%s'", param)
	}

	if tConfig.Listen == "" {
		return nil, fmt.Errorf("listen setting is empty")
	}
	appConfig.Listen = tConfig.Listen
	appConfig.Trace = tConfig.Trace
	appConfig.Envelope = tConfig.Envelope
	appConfig.LatestClientVersion = tConfig.LatestClientVersion

	if tConfig.AdminPassword == "" {
		return nil, fmt.Errorf("admin_password setting is empty")
	}
	appConfig.AdminPassword = tConfig.AdminPassword

	if tConfig.BcryptCost < bcrypt.MinCost || tConfig.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	appConfig.BcryptCost = tConfig.BcryptCost

	if tConfig.LogBufferSize < 1024 {
		return nil, fmt.Errorf("log_buffer_size must be at least 1024")
	}
	appConfig.LogBufferSize = tConfig.LogBufferSize

	maxDelay, err := time.ParseDuration(tConfig.RateMaxDelay)
	if err != nil {
		return nil, fmt.Errorf("rate_max_delay: %s", err)
	}
	if tConfig.RateEnable && (tConfig.RateBurst < 1 || tConfig.RateRequestsPerSecond <= 0) {
		return nil, fmt.Errorf("rate_burst and rate_requests_per_second must be > 0")
	}
	appConfig.Rate.RateEnable = tConfig.RateEnable
	appConfig.Rate.RateBurst = tConfig.RateBurst
	appConfig.Rate.RateRequestsPerSecond = tConfig.RateRequestsPerSecond
	appConfig.Rate.RateMaxDelay = maxDelay
	appConfig.Rate.ConcurrentMaxRequests = tConfig.RateConcurrentMax
	for _, ip := range tConfig.RateVIPList {
		appConfig.Rate.VipList[ip] = true
	}

	if len(tConfig.SeedVM) > 0 {
		appConfig.SeedVMs = nil
		for _, seed := range tConfig.SeedVM {
			if seed.Name == "" {
				return nil, fmt.Errorf("seed_vm: name is required")
			}
			appConfig.SeedVMs = append(appConfig.SeedVMs, common.VirtualMachine{
				Name:          seed.Name,
				ResourceGroup: seed.ResourceGroup,
				Location:      seed.Location,
				Status:        seed.Status,
			})
		}
	}

	return appConfig, nil
}
