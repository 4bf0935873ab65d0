package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultPersistenceDriver = "postgres"
	defaultSlowQuery         = 200 * time.Millisecond
	defaultSessionCookie     = "internhub_session"
	defaultSessionIdleTTL    = 30 * time.Minute
	defaultSessionMaxStores  = 10000
	defaultRefreshMargin     = time.Minute
	defaultIdentityTimeout   = 10 * time.Second
	defaultSettleWait        = 2 * time.Second
	defaultAuthRateLimit     = 5
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Persistence *PersistenceConfig `json:"persistence" yaml:"persistence"`

	Migration *MigrationConfig `json:"migration" yaml:"migration"`

	// Identity configures the hosted identity provider (GoTrue-compatible API)
	Identity *IdentityConfig `json:"identity" yaml:"identity"`

	Session *SessionConfig `json:"session" yaml:"session"`

	Guard *GuardConfig `json:"guard" yaml:"guard"`

	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PersistenceConfig selects the account store implementation
type PersistenceConfig struct {
	// Driver is "postgres" or "memory"
	Driver string `json:"driver" yaml:"driver"`

	// SlowQueryThreshold logs account store queries slower than this at warn
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`

	// LogQueryParams keeps bound values (emails, names) in query logs
	LogQueryParams bool `json:"logQueryParams" yaml:"logQueryParams"`
}

// MigrationConfig controls schema migrations run at startup
type MigrationConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DatabaseURL is a postgres:// URL used only by the migrator
	DatabaseURL string `json:"databaseUrl" yaml:"databaseUrl"`
}

// IdentityConfig defines how to reach the identity provider
type IdentityConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	APIKey  string `json:"apiKey" yaml:"apiKey"`

	// JWTSecret verifies HS256 access tokens issued by the provider
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`

	// AllowUnverifiedTokens permits an empty JWTSecret for local development
	AllowUnverifiedTokens bool `json:"allowUnverifiedTokens" yaml:"allowUnverifiedTokens"`

	// RefreshMargin is how long before expiry the access token is refreshed
	RefreshMargin time.Duration `json:"refreshMargin" yaml:"refreshMargin"`

	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// SessionConfig defines browser session handling
type SessionConfig struct {
	CookieName string        `json:"cookieName" yaml:"cookieName"`
	IdleTTL    time.Duration `json:"idleTTL" yaml:"idleTTL"`
	Secure     bool          `json:"secure" yaml:"secure"`

	// MaxStores bounds live browser sessions; the least recently used is closed beyond it
	MaxStores int `json:"maxStores" yaml:"maxStores"`
}

// GuardConfig defines route guard behavior
type GuardConfig struct {
	// SettleWait is how long a guarded request waits for synchronization before answering "loading"
	SettleWait time.Duration `json:"settleWait" yaml:"settleWait"`
}

// RateLimitConfig limits requests per client IP on the auth endpoints
type RateLimitConfig struct {
	Auth float64 `json:"auth" yaml:"auth"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	applyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Persistence == nil {
		cfg.Persistence = &PersistenceConfig{}
	}
	if cfg.Persistence.Driver == "" {
		cfg.Persistence.Driver = defaultPersistenceDriver
	}
	if cfg.Persistence.SlowQueryThreshold <= 0 {
		cfg.Persistence.SlowQueryThreshold = defaultSlowQuery
	}
	if cfg.Migration == nil {
		cfg.Migration = &MigrationConfig{}
	}
	if cfg.Identity == nil {
		cfg.Identity = &IdentityConfig{}
	}
	if cfg.Identity.RefreshMargin <= 0 {
		cfg.Identity.RefreshMargin = defaultRefreshMargin
	}
	if cfg.Identity.Timeout <= 0 {
		cfg.Identity.Timeout = defaultIdentityTimeout
	}
	if cfg.Session == nil {
		cfg.Session = &SessionConfig{}
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = defaultSessionCookie
	}
	if cfg.Session.IdleTTL <= 0 {
		cfg.Session.IdleTTL = defaultSessionIdleTTL
	}
	if cfg.Session.MaxStores <= 0 {
		cfg.Session.MaxStores = defaultSessionMaxStores
	}
	if cfg.Guard == nil {
		cfg.Guard = &GuardConfig{}
	}
	if cfg.Guard.SettleWait <= 0 {
		cfg.Guard.SettleWait = defaultSettleWait
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = &RateLimitConfig{}
	}
	if cfg.RateLimit.Auth <= 0 {
		cfg.RateLimit.Auth = defaultAuthRateLimit
	}
}

func (cfg *Config) validate() error {
	switch cfg.Persistence.Driver {
	case "postgres":
		if cfg.Postgres == nil {
			return errors.New("postgres config is required when persistence.driver is postgres")
		}
	case "memory":
	default:
		return errors.Errorf("unknown persistence driver %q", cfg.Persistence.Driver)
	}

	if cfg.Migration.Enabled && cfg.Migration.DatabaseURL == "" {
		return errors.New("migration.databaseUrl is required when migrations are enabled")
	}

	if strings.TrimSpace(cfg.Identity.BaseURL) == "" {
		return errors.New("identity.baseUrl is required")
	}
	if cfg.Identity.JWTSecret == "" && !cfg.Identity.AllowUnverifiedTokens {
		return errors.New("identity.jwtSecret is required unless identity.allowUnverifiedTokens is set")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
