// Package config loads the engine configuration from config.yaml with an
// environment-variable fallback, and resolves the Graph token from SSM
// Parameter Store when the deployment stores it there.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Graph     GraphConfig     `yaml:"graph"`
	Bluesky   BlueskyConfig   `yaml:"bluesky"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

type GraphConfig struct {
	AccessToken string `yaml:"access_token"`
	// TokenSSMParameter names an SSM parameter holding the token; it takes
	// precedence over AccessToken when set.
	TokenSSMParameter string `yaml:"token_ssm_parameter"`
}

type BlueskyConfig struct {
	Handle   string `yaml:"handle"`
	Password string `yaml:"password"`
}

type AnalyticsConfig struct {
	HistoryPath    string `yaml:"history_path"`
	BenchmarkTable string `yaml:"benchmark_table"`
	CacheSize      int    `yaml:"cache_size"`
}

// LoadConfig loads configuration from a yaml file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()
	return &config, nil
}

// LoadConfigFromEnv builds configuration from environment variables, used
// when no config file ships with the deployment (Lambda in particular).
func LoadConfigFromEnv() *Config {
	config := &Config{
		Graph: GraphConfig{
			AccessToken:       os.Getenv("GRAPH_ACCESS_TOKEN"),
			TokenSSMParameter: os.Getenv("GRAPH_TOKEN_SSM_PARAMETER"),
		},
		Bluesky: BlueskyConfig{
			Handle:   os.Getenv("BLUESKY_HANDLE"),
			Password: os.Getenv("BLUESKY_PASSWORD"),
		},
		Analytics: AnalyticsConfig{
			HistoryPath:    os.Getenv("HISTORY_PATH"),
			BenchmarkTable: os.Getenv("BENCHMARK_TABLE"),
		},
	}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Analytics.HistoryPath == "" {
		c.Analytics.HistoryPath = "data_insights_history.json"
	}
	if c.Analytics.CacheSize == 0 {
		c.Analytics.CacheSize = 32
	}
}

// ResolveGraphToken returns the Graph access token, fetching it from SSM
// Parameter Store when a parameter name is configured.
func (c *Config) ResolveGraphToken(ctx context.Context) (string, error) {
	if c.Graph.TokenSSMParameter == "" {
		if c.Graph.AccessToken == "" {
			return "", fmt.Errorf("no Graph access token configured")
		}
		return c.Graph.AccessToken, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.Graph.TokenSSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch token parameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("token parameter %s is empty", c.Graph.TokenSSMParameter)
	}
	return *out.Parameter.Value, nil
}

// GetConfigPath returns the config file path, preferring the working
// directory and falling back to the executable's directory.
func GetConfigPath() string {
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "config.yaml"
}
