// Package config handles all user configuration for the simulation core's
// CLI: the scheduler kind, the simulated time
// resolution, and logging. The fields here are all in PascalCase but in
// your actual config.yml they'll be in camelCase, the same convention
// lazydocker uses for its UserConfig. Values found in the user's config
// file are merged over GetDefaultConfig's result with mergo, so an empty
// or partial config.yml still yields a fully-populated config.
package config

import (
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/OpenPeeDeeP/xdg"
	yaml "github.com/jesseduffield/yaml"

	"simcore/pkg/simtime"
)

// UserConfig holds everything the user may override in config.yml.
type UserConfig struct {
	// Debug enables the development logger and DEBUG-level log output.
	Debug bool `yaml:"debug,omitempty"`

	// TimeResolution names the process-wide simtime.Unit in effect before
	// any event is scheduled (see simtime.SetResolution).
	TimeResolution string `yaml:"timeResolution,omitempty"`

	// Scheduler selects the scheduler.Kind app.NewApp builds its Engine
	// over. The package-level simulator façade does not read it.
	Scheduler string `yaml:"scheduler,omitempty"`

	// CalendarReverse toggles descending bucket ordering when Scheduler is
	// "calendar".
	CalendarReverse bool `yaml:"calendarReverse,omitempty"`

	// Trace controls the CLI's event-trace table rendering.
	Trace TraceConfig `yaml:"trace,omitempty"`
}

// TraceConfig configures the simcli event-trace presentation.
type TraceConfig struct {
	// MaxRows caps how many trace rows the CLI prints before truncating.
	MaxRows int `yaml:"maxRows,omitempty"`

	// HistogramWidth is an ascii chart width, in characters, for a
	// calendar-bucket-occupancy histogram. The --demo output renders no
	// histogram and does not read this field.
	HistogramWidth int `yaml:"histogramWidth,omitempty"`

	// Color enables ANSI-colored table output.
	Color bool `yaml:"color,omitempty"`
}

// GetDefaultConfig returns the default configuration. NOTE (to
// contributors, not users): do not default a boolean to true, because
// false is the zero value and will be silently dropped by omitempty when
// round-tripped through WriteToUserConfig.
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Debug:           false,
		TimeResolution:  simtime.Nanosecond.String(),
		Scheduler:       "map",
		CalendarReverse: false,
		Trace: TraceConfig{
			MaxRows:        200,
			HistogramWidth: 60,
			Color:          false,
		},
	}
}

// AppConfig is the fully-resolved configuration handed to the rest of the
// application: the merged UserConfig plus build and environment metadata.
type AppConfig struct {
	Version   string `long:"version" env:"VERSION" default:"unversioned"`
	Commit    string `long:"commit" env:"COMMIT"`
	BuildDate string `long:"build-date" env:"BUILD_DATE"`
	Name      string `long:"name" env:"NAME" default:"simcore"`

	UserConfig *UserConfig
	ConfigDir  string
}

// NewAppConfig locates (creating if necessary) the config directory, loads
// and merges config.yml over the defaults, and folds in build metadata.
func NewAppConfig(name, version, commit, date string, debugFlag bool) (*AppConfig, error) {
	dir, err := findOrCreateConfigDir(name)
	if err != nil {
		return nil, err
	}

	userConfig, err := loadUserConfigWithDefaults(dir)
	if err != nil {
		return nil, err
	}
	if debugFlag {
		userConfig.Debug = true
	}

	return &AppConfig{
		Name:       name,
		Version:    version,
		Commit:     commit,
		BuildDate:  date,
		UserConfig: userConfig,
		ConfigDir:  dir,
	}, nil
}

func configDirForVendor(vendor, projectName string) string {
	if envDir := os.Getenv("CONFIG_DIR"); envDir != "" {
		return envDir
	}
	return xdg.New(vendor, projectName).ConfigHome()
}

func findOrCreateConfigDir(projectName string) (string, error) {
	dir := configDirForVendor("", projectName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// loadUserConfigWithDefaults starts from GetDefaultConfig and merges
// config.yml's contents over it field-by-field, so missing or zero-valued
// keys in the file keep the default.
func loadUserConfigWithDefaults(configDir string) (*UserConfig, error) {
	base := GetDefaultConfig()
	fromFile, err := readUserConfigFile(configDir)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(&base, fromFile, mergo.WithOverride); err != nil {
		return nil, err
	}
	return &base, nil
}

func readUserConfigFile(configDir string) (UserConfig, error) {
	var parsed UserConfig
	fileName := filepath.Join(configDir, "config.yml")

	if _, err := os.Stat(fileName); err != nil {
		if os.IsNotExist(err) {
			file, createErr := os.Create(fileName)
			if createErr != nil {
				return parsed, createErr
			}
			file.Close()
			return parsed, nil
		}
		return parsed, err
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		return parsed, err
	}
	if err := yaml.Unmarshal(content, &parsed); err != nil {
		return parsed, err
	}
	return parsed, nil
}

// WriteToUserConfig rereads config.yml, applies updateConfig, and writes
// the result back, the same round-trip lazydocker's AppConfig offers for
// persisting a single setting without clobbering the rest of the file.
func (c *AppConfig) WriteToUserConfig(updateConfig func(*UserConfig) error) error {
	current, err := readUserConfigFile(c.ConfigDir)
	if err != nil {
		return err
	}
	if err := updateConfig(&current); err != nil {
		return err
	}

	file, err := os.OpenFile(c.ConfigFilename(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	defer file.Close()

	return yaml.NewEncoder(file).Encode(&current)
}

// ConfigFilename returns the path of the current config file.
func (c *AppConfig) ConfigFilename() string {
	return filepath.Join(c.ConfigDir, "config.yml")
}
