// Package config provides profile management for the idanalyzer CLI.
//
// A profile holds everything the CLI needs to build API clients:
//   - Credentials and region (API key, US/EU or a custom endpoint)
//   - Request behaviour (strict error mode, timeout)
//   - Presentation (debug logging, DocuPass company name)
//
// Values are merged from several sources, later ones winning:
//
//	defaults < config file < .env file < IDANALYZER_* environment < flags
//
// Flags are applied by the caller after Load returns.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDirName is the configuration directory created in the
	// user's home directory.
	DefaultConfigDirName = ".idanalyzer"

	// DefaultConfigFileName is the profile file inside the config directory.
	DefaultConfigFileName = "config.yaml"

	// DefaultRegion is used when no region is configured.
	DefaultRegion = "US"

	// DefaultTimeout bounds each CLI request.
	DefaultTimeout = 60 * time.Second

	// DefaultCompanyName is shown on DocuPass pages when none is configured.
	DefaultCompanyName = "My Company Name"

	// EnvPrefix prefixes every environment variable read by Load,
	// e.g. IDANALYZER_API_KEY.
	EnvPrefix = "IDANALYZER_"

	// DotEnvFile is the optional dotenv file read from the working directory.
	DotEnvFile = ".env"
)

// Profile is the CLI configuration.
type Profile struct {
	// APIKey authenticates every request. Required for API commands.
	APIKey string `koanf:"api_key" yaml:"api_key" validate:"required"`

	// Region is "US", "EU" or a custom endpoint URL.
	Region string `koanf:"region" yaml:"region" validate:"required"`

	// Strict makes API-level errors fail the command instead of printing
	// the error response.
	Strict bool `koanf:"strict" yaml:"strict"`

	// Timeout bounds each request. Zero disables the limit.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" validate:"gte=0"`

	// Debug enables debug logging.
	Debug bool `koanf:"debug" yaml:"debug"`

	// CompanyName is shown to users on DocuPass pages.
	CompanyName string `koanf:"company_name" yaml:"company_name" validate:"required"`
}

// Default returns a profile with default values and no API key.
func Default() *Profile {
	return &Profile{
		Region:      DefaultRegion,
		Timeout:     DefaultTimeout,
		CompanyName: DefaultCompanyName,
	}
}

// DefaultPath returns ~/.idanalyzer/config.yaml.
//
// Example:
//
//	path := config.DefaultPath()
//	// "/home/user/.idanalyzer/config.yaml"
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	return filepath.Join(homeDir, DefaultConfigDirName, DefaultConfigFileName)
}

// Load builds a profile from defaults, the YAML file at path, a .env file in
// the working directory and IDANALYZER_* environment variables.
//
// Parameters:
//   - path: Profile file. Empty means DefaultPath; a missing default file is
//     not an error, a missing explicit file is.
//
// Returns:
//   - The merged profile, not yet validated (see Validate)
//   - An error if a source exists but cannot be read or parsed
func Load(path string) (*Profile, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	return load(path, explicit, DotEnvFile)
}

// LoadEnv is Load without the profile file: defaults, .env and environment
// only.
func LoadEnv() (*Profile, error) {
	return load("", false, DotEnvFile)
}

// load merges the sources. An empty path skips the profile file.
func load(path string, explicit bool, dotEnv string) (*Profile, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to access config file %s: %w", path, err)
		}
	}

	if dotEnv != "" {
		if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotEnv, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	p := Default()
	if err := k.Unmarshal("", p); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return p, nil
}

// Validate checks that the profile can be used to call the API.
func (p *Profile) Validate() error {
	if err := validator.New().Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q check", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the profile to path as YAML, creating the directory if needed.
// The file is readable by the owner only since it holds the API key.
func (p *Profile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}

	data, err := yamlv3.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Redacted returns a copy safe to print, with the API key masked.
func (p *Profile) Redacted() *Profile {
	out := *p
	if n := len(out.APIKey); n > 4 {
		out.APIKey = strings.Repeat("*", n-4) + out.APIKey[n-4:]
	} else if n > 0 {
		out.APIKey = strings.Repeat("*", n)
	}
	return &out
}
