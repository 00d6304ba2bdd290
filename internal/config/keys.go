package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const mappingPrefix = KeyCourseMapping + "."

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{
		KeyRemoteBaseURL,
		KeyAPIToken,
		KeySyncRootPath,
		KeyConcurrency,
		KeyRequestsPerSecond,
		KeyTimezone,
		KeyTimeout,
	}
}

// Get returns the string form of a setting. Course mapping entries are
// addressed as course_mapping.<folder>.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case KeyRemoteBaseURL:
		return s.RemoteBaseURL, nil
	case KeyAPIToken:
		return s.APIToken, nil
	case KeySyncRootPath:
		return s.SyncRootPath, nil
	case KeyConcurrency:
		return strconv.Itoa(s.Concurrency), nil
	case KeyRequestsPerSecond:
		return strconv.FormatFloat(s.RequestsPerSecond, 'f', -1, 64), nil
	case KeyTimezone:
		return s.Timezone, nil
	case KeyTimeout:
		return s.Timeout.String(), nil
	}
	if name, ok := strings.CutPrefix(key, mappingPrefix); ok && name != "" {
		return s.CourseMapping[name], nil
	}
	return "", unknownKey(key)
}

// Set parses value into the named setting and re-validates.
// An empty value for a course_mapping entry removes it.
func (s *Settings) Set(key, value string) error {
	switch key {
	case KeyRemoteBaseURL:
		s.RemoteBaseURL = value
	case KeyAPIToken:
		s.APIToken = value
	case KeySyncRootPath:
		s.SyncRootPath = value
	case KeyConcurrency:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("'%s': %q is not an integer", key, value)
		}
		s.Concurrency = n
	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("'%s': %q is not a number", key, value)
		}
		s.RequestsPerSecond = f
	case KeyTimezone:
		s.Timezone = value
	case KeyTimeout:
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("'%s': %q is not a duration (e.g. 30s)", key, value)
		}
		s.Timeout = d
	default:
		name, ok := strings.CutPrefix(key, mappingPrefix)
		if !ok || name == "" {
			return unknownKey(key)
		}
		if s.CourseMapping == nil {
			s.CourseMapping = map[string]string{}
		}
		if strings.TrimSpace(value) == "" {
			delete(s.CourseMapping, name)
		} else {
			s.CourseMapping[name] = strings.TrimSpace(value)
		}
	}

	s.normalize()
	if errs := Validate(s); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// MappingKeys returns the course_mapping.<folder> keys in sorted order.
func (s *Settings) MappingKeys() []string {
	keys := make([]string, 0, len(s.CourseMapping))
	for name := range s.CourseMapping {
		keys = append(keys, mappingPrefix+name)
	}
	sort.Strings(keys)
	return keys
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown setting '%s' — must be one of: %s, or %s<folder>",
		key, strings.Join(Keys(), ", "), mappingPrefix)
}
