package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values applied before any settings layer is read.
const (
	DefaultSyncRootPath = "01-Active"
	DefaultConcurrency  = 1
	DefaultTimeout      = 30 * time.Second
)

// Settings is the flat settings record for one vault.
// It is loaded once per process, read-only during a sync, and persisted
// in full whenever it is changed through `config set`.
type Settings struct {
	// RemoteBaseURL is the Canvas instance, e.g. https://school.instructure.com.
	RemoteBaseURL string `yaml:"remote_base_url" mapstructure:"remote_base_url" validate:"omitempty,url"`
	APIToken      string `yaml:"api_token" mapstructure:"api_token"`

	// SyncRootPath is the vault-relative folder whose children are courses.
	SyncRootPath string `yaml:"sync_root_path" mapstructure:"sync_root_path" validate:"required"`

	// CourseMapping is reserved for manual folder→course overrides.
	// It is persisted but not consulted by the matcher.
	CourseMapping map[string]string `yaml:"course_mapping,omitempty" mapstructure:"course_mapping"`

	Concurrency       int           `yaml:"concurrency,omitempty" mapstructure:"concurrency" validate:"min=1,max=16"`
	RequestsPerSecond float64       `yaml:"requests_per_second,omitempty" mapstructure:"requests_per_second" validate:"min=0"`
	Timezone          string        `yaml:"timezone,omitempty" mapstructure:"timezone"`
	Timeout           time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout" validate:"min=0"`
}

// Default returns the settings used when no layer sets a value.
func Default() *Settings {
	return &Settings{
		SyncRootPath:  DefaultSyncRootPath,
		CourseMapping: map[string]string{},
		Concurrency:   DefaultConcurrency,
		Timeout:       DefaultTimeout,
	}
}

// Location returns the time zone documents are rendered in.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// normalize trims user input the same way the settings form does.
func (s *Settings) normalize() {
	s.RemoteBaseURL = strings.TrimRight(strings.TrimSpace(s.RemoteBaseURL), "/")
	s.APIToken = strings.TrimSpace(s.APIToken)
	s.SyncRootPath = strings.TrimSpace(s.SyncRootPath)
	s.Timezone = strings.TrimSpace(s.Timezone)
	if s.CourseMapping == nil {
		s.CourseMapping = map[string]string{}
	}
}
