package repo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const appDirName = "configbundle"

// defaultSettings is written to settings.yaml on first use.
const defaultSettings = `# configbundle settings
# See: cbundle info

# Absolute path of the bundle repository. Empty means <configdir>/repo.
repository: ""

# Log level: trace, debug, info, warn, off
log_level: off

# Entries excluded from unbundle sweeps, destroy counts and listings
# (gitignore syntax).
ignores:
  - .git
  - .gitignore
`

// ConfigDir returns the config directory path.
// Uses CBUNDLE_CONFIG_DIR env var if set, otherwise the OS user config
// directory. Computed dynamically to support test isolation.
func ConfigDir() string {
	if dir := os.Getenv("CBUNDLE_CONFIG_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, appDirName)
}

// SettingsPath returns the settings file path
func SettingsPath() string {
	return filepath.Join(ConfigDir(), "settings.yaml")
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0700)
}

// InitConfigDir initializes the config directory with default files
func InitConfigDir() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	settingsPath := SettingsPath()
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		if err := os.WriteFile(settingsPath, []byte(defaultSettings), 0600); err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}
	}
	return nil
}

// Settings represents user configuration from <configdir>/settings.yaml
type Settings struct {
	Repository string   `yaml:"repository"` // repository root override, default: <configdir>/repo
	LogLevel   string   `yaml:"log_level"`  // trace, debug, info, warn, off (default: off)
	Ignores    []string `yaml:"ignores"`    // gitignore-syntax exclusion lines
}

// ApplyDefaults fills zero-value fields with their defaults.
func (s *Settings) ApplyDefaults() {
	if s.LogLevel == "" {
		s.LogLevel = "off"
	}
	if s.Ignores == nil {
		s.Ignores = []string{".git", ".gitignore"}
	}
}

// LoadSettings loads the settings from <configdir>/settings.yaml.
// Falls back to defaults if the file doesn't exist.
func LoadSettings() (*Settings, error) {
	var s Settings
	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			s.ApplyDefaults()
			return &s, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	s.ApplyDefaults()
	return &s, nil
}

// SaveSettings saves the settings to <configdir>/settings.yaml
func SaveSettings(s *Settings) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	header := []byte("# configbundle settings\n# See: cbundle info\n\n")
	return os.WriteFile(SettingsPath(), append(header, data...), 0600)
}

// ConfigureLogging applies the configured log level to the process logger.
func ConfigureLogging(level string) {
	switch strings.ToLower(level) {
	case "", "off", "none":
		log.SetOutput(io.Discard)
	case "trace":
		log.SetLevel(log.TraceLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn", "warning":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
