package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the directory under the home directory holding the config file.
	ConfigDirName = ".html2vega"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
	// EnvConfigPath points the loader at another config file.
	EnvConfigPath = "HTML2VEGA_CONFIG"
)

const fileHeader = "# html2vega configuration\n# Values may reference the environment as ${VAR} or ${VAR:-fallback}.\n"

// placeholder matches ${NAME} and ${NAME:-fallback}.
var placeholder = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// Loader reads and writes one configuration file.
type Loader struct {
	path string
}

// NewLoader returns a loader for $HTML2VEGA_CONFIG, or for
// ~/.html2vega/config.yaml when that is unset.
func NewLoader() (*Loader, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return NewLoaderWithPath(p), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	return NewLoaderWithPath(filepath.Join(home, ConfigDirName, ConfigFileName)), nil
}

// NewLoaderWithPath returns a loader for path.
func NewLoaderWithPath(path string) *Loader {
	return &Loader{path: path}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.path
}

// Load returns the effective configuration: defaults, then the file with
// placeholders expanded, then HTML2VEGA_* variables. The result is validated.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.read(true)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to apply environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadRaw returns defaults overlaid with the file as written, placeholders
// untouched. Used to edit and show the file itself.
func (l *Loader) LoadRaw() (*Config, error) {
	return l.read(false)
}

func (l *Loader) read(expand bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if expand {
		data = []byte(expandPlaceholders(string(data)))
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", l.path, err)
	}
	return cfg, nil
}

// Save writes cfg to the file, replacing it atomically.
func (l *Loader) Save(cfg *Config) error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ConfigFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.WriteString(fileHeader)
	if err == nil {
		_, err = tmp.Write(body)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists reports whether the file is present.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Init writes the default configuration. It fails with os.ErrExist when
// the file is already there.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file %s: %w", l.path, os.ErrExist)
	}
	return l.Save(DefaultConfig())
}

// expandPlaceholders substitutes ${NAME} with the variable's value and
// ${NAME:-fallback} with the fallback when the variable is empty.
func expandPlaceholders(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		m := placeholder.FindStringSubmatch(match)
		if v := os.Getenv(m[1]); v != "" {
			return v
		}
		return m[2]
	})
}

// LoadDotEnv loads variables from the given .env files, or ./.env when
// none are given. Missing files are ignored and set variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// envString returns the variable's value, or fallback when it is empty.
func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envBool parses a boolean variable. ok is false when the variable is
// empty or not a boolean.
func envBool(key string) (value, ok bool) {
	switch v := strings.ToLower(os.Getenv(key)); v {
	case "":
		return false, false
	case "yes", "on":
		return true, true
	case "no", "off":
		return false, true
	default:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	}
}
