// Package config loads the harness configuration from an HCL file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Environment variables overriding file values.
const (
	EnvConfigPath  = "KAFKA_ACCEPTANCE_CONFIG"
	EnvCLIPath     = "CLUSTER_CLI_PATH"
	EnvMinVersion  = "CLUSTER_MIN_VERSION"
	EnvPackageName = "KAFKA_PACKAGE_NAME"
	EnvServiceName = "KAFKA_SERVICE_NAME"
	EnvBrokerCount = "KAFKA_BROKER_COUNT"
	EnvSeedBrokers = "KAFKA_SEED_BROKERS"
)

// Config is the root harness configuration.
type Config struct {
	Cluster *ClusterConfig `hcl:"cluster,block"`
	Service *ServiceConfig `hcl:"service,block"`
	Kafka   *KafkaConfig   `hcl:"kafka,block"`
}

// ClusterConfig describes how to reach the orchestration platform.
type ClusterConfig struct {
	// CLIPath is the platform CLI binary path or name.
	CLIPath string `hcl:"cli_path,optional"`

	// MinVersion is the minimum platform version the suites require.
	MinVersion string `hcl:"min_version,optional"`
}

// ServiceConfig identifies the package under test.
type ServiceConfig struct {
	PackageName string `hcl:"package_name,optional"`
	ServiceName string `hcl:"service_name,optional"`
	BrokerCount int    `hcl:"broker_count,optional"`
}

// KafkaConfig configures the optional direct-protocol path.
type KafkaConfig struct {
	// SeedBrokers are bootstrap addresses reachable from the harness. Empty
	// disables the direct-protocol checks.
	SeedBrokers []string `hcl:"seed_brokers,optional"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Cluster: &ClusterConfig{
			CLIPath:    "dcos",
			MinVersion: "1.11",
		},
		Service: &ServiceConfig{
			PackageName: "kafka",
			ServiceName: "kafka",
			BrokerCount: 3,
		},
		Kafka: &KafkaConfig{},
	}
}

// Load reads the configuration file at path (optional), layers defaults and
// environment overrides, and validates the result. An empty path falls back
// to the EnvConfigPath variable, then to pure defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}

		var fileCfg Config
		if err := hclsimple.DecodeFile(path, nil, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
		cfg.apply(&fileCfg)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// apply overlays non-zero values from other onto c.
func (c *Config) apply(other *Config) {
	if other.Cluster != nil {
		if other.Cluster.CLIPath != "" {
			c.Cluster.CLIPath = other.Cluster.CLIPath
		}
		if other.Cluster.MinVersion != "" {
			c.Cluster.MinVersion = other.Cluster.MinVersion
		}
	}
	if other.Service != nil {
		if other.Service.PackageName != "" {
			c.Service.PackageName = other.Service.PackageName
		}
		if other.Service.ServiceName != "" {
			c.Service.ServiceName = other.Service.ServiceName
		}
		if other.Service.BrokerCount != 0 {
			c.Service.BrokerCount = other.Service.BrokerCount
		}
	}
	if other.Kafka != nil && len(other.Kafka.SeedBrokers) > 0 {
		c.Kafka.SeedBrokers = other.Kafka.SeedBrokers
	}
}

// applyEnv overlays environment variables onto c. Environment wins over the
// file so CI can retarget a suite without editing config.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCLIPath); v != "" {
		c.Cluster.CLIPath = v
	}
	if v := os.Getenv(EnvMinVersion); v != "" {
		c.Cluster.MinVersion = v
	}
	if v := os.Getenv(EnvPackageName); v != "" {
		c.Service.PackageName = v
	}
	if v := os.Getenv(EnvServiceName); v != "" {
		c.Service.ServiceName = v
	}
	if v := os.Getenv(EnvBrokerCount); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Service.BrokerCount = n
		}
	}
	if v := os.Getenv(EnvSeedBrokers); v != "" {
		parts := strings.Split(v, ",")
		seeds := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				seeds = append(seeds, p)
			}
		}
		c.Kafka.SeedBrokers = seeds
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c.Cluster,
		validation.Field(&c.Cluster.CLIPath, validation.Required),
	); err != nil {
		return fmt.Errorf("cluster: %w", err)
	}

	if err := validation.ValidateStruct(c.Service,
		validation.Field(&c.Service.PackageName, validation.Required),
		validation.Field(&c.Service.ServiceName, validation.Required),
		validation.Field(&c.Service.BrokerCount, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("service: %w", err)
	}

	return nil
}
