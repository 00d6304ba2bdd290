package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianoble/canvas-sync/internal/engine"
)

// setupCanvas serves one course and writes vault settings pointing at it.
func setupCanvas(t *testing.T, root string, failAssignments bool) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 77, "name": "Organic Chemistry", "course_code": "CHEM210"}]`))
	})
	mux.HandleFunc("/api/v1/courses/77/assignments", func(w http.ResponseWriter, r *http.Request) {
		if failAssignments {
			http.Error(w, `{"errors":[{"message":"user not authorized"}]}`, http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/v1/courses/77/enrollments", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": 1, "grades": {"current_score": 75}}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	writeFile(t, filepath.Join(root, ".canvas-sync.yaml"),
		"remote_base_url: "+srv.URL+"\napi_token: tok\n")
	if err := os.MkdirAll(filepath.Join(root, "01-Active", "CHEM210 Organic"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestRunSyncWritesDocuments(t *testing.T) {
	root := isolate(t)
	setupCanvas(t, root, false)

	if err := runSync(context.Background(), (*engine.SyncEngine).SyncAll); err != nil {
		t.Fatalf("sync: %v", err)
	}

	folder := filepath.Join(root, "01-Active", "CHEM210 Organic")
	for _, name := range []string{"Course-Overview.md", "Assignments-CHEM210 Organic.md", "Grades-CHEM210 Organic.md"} {
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRunSyncDryRun(t *testing.T) {
	root := isolate(t)
	setupCanvas(t, root, false)
	syncDryRun = true
	t.Cleanup(func() { syncDryRun = false })

	if err := runSync(context.Background(), (*engine.SyncEngine).SyncAll); err != nil {
		t.Fatalf("sync --dry-run: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "01-Active", "CHEM210 Organic"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run wrote %d file(s)", len(entries))
	}
}

func TestRunSyncReportsFailedSteps(t *testing.T) {
	root := isolate(t)
	setupCanvas(t, root, true)

	err := runSync(context.Background(), (*engine.SyncEngine).SyncAssignments)
	if err == nil {
		t.Fatal("expected an error when a fetch fails")
	}
	if !strings.Contains(err.Error(), "failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunSyncWithoutSettings(t *testing.T) {
	root := isolate(t)
	if err := os.MkdirAll(filepath.Join(root, "01-Active", "CS101"), 0755); err != nil {
		t.Fatal(err)
	}
	buf := captureStderr(t)

	err := runSync(context.Background(), (*engine.SyncEngine).SyncGrades)
	if err == nil || !strings.Contains(err.Error(), "Please configure") {
		t.Fatalf("expected configuration error, got %v", err)
	}
	reportError(err)

	if n := strings.Count(buf.String(), "Please configure"); n != 1 {
		t.Errorf("configuration error shown %d times, want once:\n%s", n, buf.String())
	}
}

func TestRunSyncWriteFailureStaysOffStderr(t *testing.T) {
	root := isolate(t)
	setupCanvas(t, root, false)
	folder := filepath.Join(root, "01-Active", "CHEM210 Organic")
	blocker := filepath.Join(folder, "Course-Overview.md", "keep")
	writeFile(t, blocker, "not a document")
	buf := captureStderr(t)

	err := runSync(context.Background(), (*engine.SyncEngine).SyncAll)
	if err == nil {
		t.Fatal("expected a failed write to give a non-zero exit")
	}
	if buf.Len() != 0 {
		t.Errorf("write failure shown to the user: %q", buf.String())
	}

	for _, name := range []string{"Assignments-CHEM210 Organic.md", "Grades-CHEM210 Organic.md"} {
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestCheckAndStatusCommands(t *testing.T) {
	root := isolate(t)
	setupCanvas(t, root, false)

	checkCmd.SetContext(context.Background())
	if err := checkCmd.RunE(checkCmd, nil); err != nil {
		t.Fatalf("check: %v", err)
	}

	statusCmd.SetContext(context.Background())
	if err := statusCmd.RunE(statusCmd, nil); err != nil {
		t.Fatalf("status: %v", err)
	}
}

func TestShowCommand(t *testing.T) {
	root := isolate(t)
	setupCanvas(t, root, false)

	err := showCmd.RunE(showCmd, []string{"CHEM210 Organic"})
	if err == nil || !strings.Contains(err.Error(), "has not been generated yet") {
		t.Fatalf("expected missing document error, got %v", err)
	}

	if err := runSync(context.Background(), (*engine.SyncEngine).SyncAll); err != nil {
		t.Fatalf("sync: %v", err)
	}
	for _, kind := range []string{"overview", "assignments", "grades"} {
		if err := showCmd.RunE(showCmd, []string{"CHEM210 Organic", kind}); err != nil {
			t.Errorf("show %s: %v", kind, err)
		}
	}

	if err := showCmd.RunE(showCmd, []string{"CHEM210 Organic", "notes"}); err == nil {
		t.Error("expected error for unknown document kind")
	}
}
