package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bianoble/canvas-sync/internal/errors"
)

const exampleSettings = `
remote_base_url: https://school.instructure.com/
api_token: "  secret-token  "
sync_root_path: 02-Courses
course_mapping:
  CS101-intro: "42"
concurrency: 2
timeout: 45s
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadValidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), VaultFileName)
	writeFile(t, path, exampleSettings)

	s, err := Load([]string{path}, WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, "https://school.instructure.com", s.RemoteBaseURL, "trailing slash trimmed")
	assert.Equal(t, "secret-token", s.APIToken, "token trimmed")
	assert.Equal(t, "02-Courses", s.SyncRootPath)
	assert.Equal(t, 2, s.Concurrency)
	assert.Equal(t, 45*time.Second, s.Timeout)
	assert.Len(t, s.CourseMapping, 1)
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	s, err := Load([]string{filepath.Join(t.TempDir(), "missing.yaml")}, WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, DefaultSyncRootPath, s.SyncRootPath)
	assert.Equal(t, DefaultConcurrency, s.Concurrency)
	assert.Equal(t, DefaultTimeout, s.Timeout)
	assert.Empty(t, s.RemoteBaseURL)
	assert.NotNil(t, s.CourseMapping)
}

func TestLoadLayerPrecedence(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.yaml")
	vault := filepath.Join(dir, "vault.yaml")
	writeFile(t, user, "remote_base_url: https://user.example.com\napi_token: user-token\n")
	writeFile(t, vault, "remote_base_url: https://vault.example.com\n")

	s, err := Load([]string{user, vault}, WithoutEnv())
	require.NoError(t, err)

	assert.Equal(t, "https://vault.example.com", s.RemoteBaseURL)
	assert.Equal(t, "user-token", s.APIToken)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), VaultFileName)
	writeFile(t, path, exampleSettings)

	t.Setenv("CANVAS_SYNC_API_TOKEN", "env-token")
	t.Setenv("CANVAS_SYNC_CONCURRENCY", "4")

	s, err := Load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "env-token", s.APIToken)
	assert.Equal(t, 4, s.Concurrency)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := EnvFilePath(dir)
	writeFile(t, envPath, "CANVAS_SYNC_REMOTE_BASE_URL=https://dotenv.example.com\n")

	// godotenv sets process env; register cleanup for the key it touches.
	t.Setenv("CANVAS_SYNC_REMOTE_BASE_URL", "")
	require.NoError(t, os.Unsetenv("CANVAS_SYNC_REMOTE_BASE_URL"))

	s, err := Load(nil, WithEnvFile(envPath))
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example.com", s.RemoteBaseURL)
}

func TestLoadInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), VaultFileName)
	writeFile(t, path, "remote_base_url: not a url\nconcurrency: 0\ntimezone: Mars/Olympus\n")

	_, err := Load([]string{path}, WithoutEnv())
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 3)
	assert.Contains(t, err.Error(), "'remote_base_url' must be an absolute URL")
	assert.Contains(t, err.Error(), "'concurrency' must be at least 1")
	assert.Contains(t, err.Error(), "unknown time zone")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), VaultFileName)
	writeFile(t, path, "remote_base_url: [unclosed\n")

	_, err := Load([]string{path}, WithoutEnv())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestSaveAndLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", VaultFileName)

	s := Default()
	require.NoError(t, s.Set(KeyRemoteBaseURL, "https://school.instructure.com"))
	require.NoError(t, s.Set(KeyAPIToken, "tok"))
	require.NoError(t, s.Set(KeyTimeout, "1m"))
	require.NoError(t, Save(path, s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadFileIgnoresEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), VaultFileName)
	writeFile(t, path, "api_token: file-token\n")
	t.Setenv("CANVAS_SYNC_API_TOKEN", "env-token")

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", s.APIToken)
}

func TestRequireRemote(t *testing.T) {
	s := Default()
	err := s.RequireRemote()
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))

	s.RemoteBaseURL = "https://school.instructure.com"
	assert.Error(t, s.RequireRemote(), "token still missing")

	s.APIToken = "tok"
	assert.NoError(t, s.RequireRemote())
}

func TestLocation(t *testing.T) {
	s := Default()
	loc, err := s.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	s.Timezone = "UTC"
	loc, err = s.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
