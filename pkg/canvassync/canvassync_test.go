package canvassync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCanvasServer serves one course with one assignment and one enrollment.
func newCanvasServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 4242, "name": "Intro to Computer Science", "course_code": "CS101"}]`))
	})
	mux.HandleFunc("/api/v1/courses/4242/assignments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "name": "Lab 1", "due_at": "2099-01-01T00:00:00Z",
			"points_possible": 10, "html_url": "https://canvas.test/a/1"}]`))
	})
	mux.HandleFunc("/api/v1/courses/4242/enrollments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 9, "type": "StudentEnrollment",
			"grades": {"current_score": 88, "current_grade": "B+"}}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// setupVault creates a vault with settings pointing at baseURL and a single
// course folder.
func setupVault(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	settings := "remote_base_url: " + baseURL + "\napi_token: tok\n"
	if err := os.WriteFile(filepath.Join(dir, ".canvas-sync.yaml"), []byte(settings), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "01-Active", "CS101-intro"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestClient(t *testing.T, dir string, notices *[]string) *Client {
	t.Helper()
	client, err := New(Options{
		VaultRoot:      dir,
		UserConfigPath: filepath.Join(dir, "no-user-settings.yaml"),
		NoEnv:          true,
		Notify:         func(msg string) { *notices = append(*notices, msg) },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestSync(t *testing.T) {
	srv := newCanvasServer(t)
	dir := setupVault(t, srv.URL)
	var notices []string
	client := newTestClient(t, dir, &notices)

	result, err := client.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	require.Len(t, result.Written, 3)
	for _, w := range result.Written {
		assert.Equal(t, "created", w.Action)
	}

	folder := filepath.Join(dir, "01-Active", "CS101-intro")
	overview, err := os.ReadFile(filepath.Join(folder, "Course-Overview.md"))
	require.NoError(t, err)
	assert.Contains(t, string(overview), srv.URL+"/courses/4242")

	assignments, err := os.ReadFile(filepath.Join(folder, "Assignments-CS101-intro.md"))
	require.NoError(t, err)
	assert.Contains(t, string(assignments), "- **Points**: 10 points")

	grades, err := os.ReadFile(filepath.Join(folder, "Grades-CS101-intro.md"))
	require.NoError(t, err)
	assert.Contains(t, string(grades), "- **Current Score**: 88%")
	assert.Contains(t, string(grades), "- **Current Grade**: B+")

	assert.Equal(t, "✓ Synced 1 course(s) successfully!", notices[len(notices)-1])
}

func TestSyncDryRun(t *testing.T) {
	srv := newCanvasServer(t)
	dir := setupVault(t, srv.URL)
	var notices []string

	result, err := newTestClient(t, dir, &notices).Sync(context.Background(), SyncOptions{DryRun: true})
	require.NoError(t, err)
	require.Len(t, result.Written, 3)
	assert.Equal(t, "would-create", result.Written[0].Action)

	entries, err := os.ReadDir(filepath.Join(dir, "01-Active", "CS101-intro"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchAssignmentsAndGrades(t *testing.T) {
	srv := newCanvasServer(t)
	dir := setupVault(t, srv.URL)
	var notices []string
	client := newTestClient(t, dir, &notices)

	res, err := client.FetchAssignments(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)
	require.Len(t, res.Written, 1)
	assert.True(t, strings.HasSuffix(res.Written[0].Path, "Assignments-CS101-intro.md"))

	res, err = client.FetchGrades(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Synced)
	require.Len(t, res.Written, 1)
	assert.True(t, strings.HasSuffix(res.Written[0].Path, "Grades-CS101-intro.md"))

	assert.Contains(t, notices, "✓ Updated assignments for 1 course(s)")
	assert.Contains(t, notices, "✓ Updated grades for 1 course(s)")
}

func TestTestConnection(t *testing.T) {
	srv := newCanvasServer(t)
	dir := setupVault(t, srv.URL)
	var notices []string

	res, err := newTestClient(t, dir, &notices).TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &ConnectionResult{Courses: 1, Folders: 1, Root: "01-Active"}, res)
}

func TestStatus(t *testing.T) {
	srv := newCanvasServer(t)
	dir := setupVault(t, srv.URL)
	if err := os.MkdirAll(filepath.Join(dir, "01-Active", "Pottery"), 0755); err != nil {
		t.Fatal(err)
	}
	var notices []string

	res, err := newTestClient(t, dir, &notices).Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Courses)
	assert.Equal(t, []CoursePair{{
		Folder: "CS101-intro", CourseID: 4242,
		CourseName: "Intro to Computer Science", CourseCode: "CS101",
	}}, res.Pairs)
	assert.Equal(t, []string{"Pottery"}, res.Unmatched)
}

func TestSyncWithoutSettings(t *testing.T) {
	dir := t.TempDir()
	var notices []string

	_, err := newTestClient(t, dir, &notices).Sync(context.Background(), SyncOptions{})
	require.NoError(t, err, "no folders means nothing to do")
	assert.Contains(t, notices, `Sync folder "01-Active" does not exist`)

	if err := os.MkdirAll(filepath.Join(dir, "01-Active", "CS101"), 0755); err != nil {
		t.Fatal(err)
	}
	notices = nil
	_, err = newTestClient(t, dir, &notices).Sync(context.Background(), SyncOptions{})
	require.Error(t, err)
	assert.Contains(t, notices, "Please configure Canvas URL and API token in settings")
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".canvas-sync.yaml"), []byte("concurrency: 99\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := New(Options{VaultRoot: dir, UserConfigPath: filepath.Join(dir, "none.yaml"), NoEnv: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
}
