package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	ListenAddr   string        `yaml:"listen_addr"`
	LogLevel     string        `yaml:"log_level"`
	LogJSON      bool          `yaml:"log_json"`
	Relays       []string      `yaml:"relays"` // relay endpoint URLs (mem:// or redis://)
	QueryLimit   int           `yaml:"query_limit"`
	QueryMaxWait time.Duration `yaml:"query_max_wait"` // bounded wait for relay responses
	JwtTTL       time.Duration `yaml:"jwt_ttl"`
	CorsOrigins  []string      `yaml:"cors_origins"`
}

type Private struct {
	JwtKey       string `yaml:"jwt_key"`
	KeystorePath string `yaml:"keystore_path"`
}

// New assembles a config from already-loaded sections. MustLoad is the
// normal path; New exists for tests and embedding.
func New(public Public, private Private) *Config {
	return &Config{public, private}
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (s *Config) KeystorePath() string {
	return s.private.KeystorePath
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.mustValidate()
	return cfg
}

func (s *Config) mustValidate() {
	if len(s.Public.Relays) == 0 {
		panic("config: at least one relay is required")
	}
	if s.Public.QueryLimit <= 0 {
		panic("config: query_limit must be positive")
	}
	if s.Public.QueryMaxWait <= 0 {
		panic("config: query_max_wait must be positive")
	}
	if s.private.JwtKey == "" {
		panic("config: jwt_key is required")
	}
	if s.private.KeystorePath == "" {
		panic(fmt.Sprintf("config: keystore_path is required, got %q", s.private.KeystorePath))
	}
}
