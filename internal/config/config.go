package config

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"
	"github.com/poofware/rental-service/internal/utils"
)

const (
	OrganizationName    = utils.OrganizationName
	LDConnectionTimeout = 5 * time.Second

	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	defaultPort        = "8080"
	defaultTokenExpiry = 24 * time.Hour
	defaultSQLitePath  = "rental.db"
)

// build-time overrides, set with -ldflags
var (
	AppName             string
	LDServerContextKey  string
	LDServerContextKind string
)

type Config struct {
	OrganizationName string
	AppName          string
	Env              string
	AppPort          string
	AppUrl           string

	DBDriver string
	DBUrl    string

	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey
	TokenExpiry   time.Duration

	// Feature-flag snapshots; env values unless LaunchDarkly overrides them.
	LDFlag_RequireAuthForReads  bool
	LDFlag_RequireAuthForWrites bool
	LDFlag_SeedDbWithTestData   bool
	LDFlag_CORSHighSecurity     bool
}

func init() {
	if AppName == "" {
		AppName = utils.DefaultAppName
	}
}

// LoadConfig is Load for process start-up: any error is fatal.
func LoadConfig() *Config {
	cfg, err := Load()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load config")
	}
	return cfg
}

// Load reads the environment, a .env file when one exists, and optional
// LaunchDarkly flag overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	utils.Logger.Info("Loading config for app: ", AppName)

	env := strings.ToLower(getenv("ENV", EnvDev))
	switch env {
	case EnvDev, EnvStaging, EnvProd:
	default:
		return nil, fmt.Errorf("ENV must be one of dev, staging, prod (got %q)", env)
	}

	cfg := &Config{
		OrganizationName: OrganizationName,
		AppName:          AppName,
		Env:              env,
		AppPort:          getenv("APP_PORT", defaultPort),
		AppUrl:           os.Getenv("APP_URL_FROM_ANYWHERE"),
		DBDriver:         strings.ToLower(getenv("DB_DRIVER", DBDriverPostgres)),
		DBUrl:            os.Getenv("DB_URL"),
		TokenExpiry:      defaultTokenExpiry,
	}

	switch cfg.DBDriver {
	case DBDriverPostgres:
		if cfg.DBUrl == "" {
			return nil, errors.New("DB_URL env var is missing")
		}
	case DBDriverSQLite:
		if cfg.DBUrl == "" {
			cfg.DBUrl = defaultSQLitePath
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite (got %q)", cfg.DBDriver)
	}

	if v := os.Getenv("TOKEN_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("TOKEN_EXPIRY must be a positive duration (got %q)", v)
		}
		cfg.TokenExpiry = d
	}

	var err error
	if cfg.LDFlag_RequireAuthForReads, err = getbool("REQUIRE_AUTH_FOR_READS", false); err != nil {
		return nil, err
	}
	if cfg.LDFlag_RequireAuthForWrites, err = getbool("REQUIRE_AUTH_FOR_WRITES", true); err != nil {
		return nil, err
	}
	if cfg.LDFlag_SeedDbWithTestData, err = getbool("SEED_DB_WITH_TEST_DATA", false); err != nil {
		return nil, err
	}
	if cfg.LDFlag_CORSHighSecurity, err = getbool("CORS_HIGH_SECURITY", false); err != nil {
		return nil, err
	}

	if err := cfg.loadSigningKey(); err != nil {
		return nil, err
	}

	if sdkKey := os.Getenv("LD_SDK_KEY"); sdkKey != "" {
		if err := cfg.applyLaunchDarkly(sdkKey); err != nil {
			return nil, err
		}
	}

	utils.Logger.Infof("Loaded config for %s (%s, db=%s)", cfg.AppName, cfg.Env, cfg.DBDriver)
	return cfg, nil
}

func (c *Config) loadSigningKey() error {
	privB64 := os.Getenv("RSA_PRIVATE_KEY_BASE64")
	if privB64 == "" {
		if c.Env == EnvProd {
			return errors.New("RSA_PRIVATE_KEY_BASE64 env var is missing")
		}
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return fmt.Errorf("generate signing key: %w", err)
		}
		utils.Logger.Warn("RSA_PRIVATE_KEY_BASE64 not set; using an ephemeral signing key")
		c.RSAPrivateKey = key
		c.RSAPublicKey = &key.PublicKey
		return nil
	}

	privPEM, err := base64.StdEncoding.DecodeString(privB64)
	if err != nil {
		return fmt.Errorf("RSA_PRIVATE_KEY_BASE64 is not valid base64: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return fmt.Errorf("failed to parse RSA private key: %w", err)
	}
	c.RSAPrivateKey = key
	c.RSAPublicKey = &key.PublicKey
	return nil
}

func (c *Config) applyLaunchDarkly(sdkKey string) error {
	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("failed to create LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()
	if !ldClient.Initialized() {
		return errors.New("LaunchDarkly client failed to initialize")
	}

	kind := LDServerContextKind
	if kind == "" {
		kind = "service"
	}
	key := LDServerContextKey
	if key == "" {
		key = c.AppName
	}
	ctx := ldcontext.NewWithKind(ldcontext.Kind(kind), key)

	flags := []struct {
		name string
		dst  *bool
	}{
		{"require_auth_for_reads", &c.LDFlag_RequireAuthForReads},
		{"require_auth_for_writes", &c.LDFlag_RequireAuthForWrites},
		{"seed_db_with_test_data", &c.LDFlag_SeedDbWithTestData},
		{"cors_high_security", &c.LDFlag_CORSHighSecurity},
	}
	for _, f := range flags {
		v, err := ldClient.BoolVariation(f.name, ctx, *f.dst)
		if err != nil {
			return fmt.Errorf("%s flag error: %w", f.name, err)
		}
		utils.Logger.Debugf("%s flag: %t", f.name, v)
		*f.dst = v
	}
	return nil
}

func getenv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func getbool(name string, def bool) (bool, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean (got %q)", name, v)
	}
	return b, nil
}
