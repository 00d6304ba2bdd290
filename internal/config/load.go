package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CANVAS_SYNC_API_TOKEN.
const EnvPrefix = "CANVAS_SYNC"

// Settings keys as they appear in the settings file.
const (
	KeyRemoteBaseURL     = "remote_base_url"
	KeyAPIToken          = "api_token"
	KeySyncRootPath      = "sync_root_path"
	KeyCourseMapping     = "course_mapping"
	KeyConcurrency       = "concurrency"
	KeyRequestsPerSecond = "requests_per_second"
	KeyTimezone          = "timezone"
	KeyTimeout           = "timeout"
)

type loadOptions struct {
	envFile string
	noEnv   bool
}

// Option configures Load.
type Option func(*loadOptions)

// WithEnvFile loads a dotenv file before reading the environment.
// A missing file is ignored.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) {
		o.envFile = path
	}
}

// WithoutEnv disables CANVAS_SYNC_* overrides.
func WithoutEnv() Option {
	return func(o *loadOptions) {
		o.noEnv = true
	}
}

// Load reads the settings layers in order (lowest precedence first) and
// applies environment overrides on top:
// defaults < layers... < environment.
// Missing layer files are skipped.
func Load(paths []string, opts ...Option) (*Settings, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.envFile != "" {
		if err := loadEnvFile(o.envFile); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if !o.noEnv {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()
	}

	for _, path := range paths {
		if err := mergeConfigFile(v, path); err != nil {
			return nil, fmt.Errorf("loading settings %s: %w", path, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	s.normalize()

	if errs := Validate(s); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return s, nil
}

// LoadFile reads a single settings file merged over the defaults, without
// environment overrides. It is the starting point for edits that will be
// written back with Save, so values from the environment never leak into
// the file. A missing file yields the defaults.
func LoadFile(path string) (*Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	s.normalize()
	return s, nil
}

// Save writes the settings atomically using a temp file and rename.
// The file may hold the API token, so it is created owner-only.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing temp settings %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp settings to %s: %w", path, err)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyRemoteBaseURL, d.RemoteBaseURL)
	v.SetDefault(KeyAPIToken, d.APIToken)
	v.SetDefault(KeySyncRootPath, d.SyncRootPath)
	v.SetDefault(KeyCourseMapping, d.CourseMapping)
	v.SetDefault(KeyConcurrency, d.Concurrency)
	v.SetDefault(KeyRequestsPerSecond, d.RequestsPerSecond)
	v.SetDefault(KeyTimezone, d.Timezone)
	v.SetDefault(KeyTimeout, d.Timeout)
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("settings path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnvFile(path string) error {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}
