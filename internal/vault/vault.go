// Package vault reads and writes the local note vault: it lists the course
// folders under the sync root and creates or overwrites generated documents.
// All paths are relative to the vault root and may not escape it.
package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	apperrors "github.com/bianoble/canvas-sync/internal/errors"
)

// ReservedFolder is never treated as a course folder.
const ReservedFolder = "Attachments"

// ErrRootNotFound is returned when the sync root does not exist.
var ErrRootNotFound = errors.New("sync root does not exist")

// Action describes what a write did (or would do) to a file.
type Action string

const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionWouldCreate Action = "would-create"
	ActionWouldUpdate Action = "would-update"
)

// CourseFolder is a directory under the sync root that may hold a course.
type CourseFolder struct {
	Path string // vault-relative
	Name string
}

// Vault is a note vault rooted at a directory of fs.
type Vault struct {
	fs afero.Fs
}

// New creates a Vault over fs, whose root is the vault root.
func New(fs afero.Fs) *Vault {
	return &Vault{fs: fs}
}

// NewOS creates a Vault rooted at dir on the real filesystem.
func NewOS(dir string) *Vault {
	return New(afero.NewBasePathFs(afero.NewOsFs(), dir))
}

// ListCourseFolders returns the immediate child directories of root,
// sorted by name, skipping hidden entries and the reserved folder.
func (v *Vault) ListCourseFolders(root string) ([]CourseFolder, error) {
	rel, err := cleanPath(root)
	if err != nil {
		return nil, err
	}

	ok, err := afero.DirExists(v.fs, rel)
	if err != nil {
		return nil, apperrors.FileSystem(fmt.Sprintf("checking %s", root), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	entries, err := afero.ReadDir(v.fs, rel)
	if err != nil {
		return nil, apperrors.FileSystem(fmt.Sprintf("listing %s", root), err)
	}

	var folders []CourseFolder
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || name == ReservedFolder {
			continue
		}
		folders = append(folders, CourseFolder{
			Path: filepath.Join(rel, name),
			Name: name,
		})
	}
	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Name < folders[j].Name
	})
	return folders, nil
}

// Exists reports whether a file exists at path.
func (v *Vault) Exists(path string) (bool, error) {
	rel, err := cleanPath(path)
	if err != nil {
		return false, err
	}
	ok, err := afero.Exists(v.fs, rel)
	if err != nil {
		return false, apperrors.FileSystem(fmt.Sprintf("checking %s", path), err)
	}
	return ok, nil
}

// Read returns the content of the file at path.
func (v *Vault) Read(path string) ([]byte, error) {
	rel, err := cleanPath(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(v.fs, rel)
	if err != nil {
		return nil, apperrors.FileSystem(fmt.Sprintf("reading %s", path), err)
	}
	return data, nil
}

// Plan reports the action Write would take for path without writing.
func (v *Vault) Plan(path string) (Action, error) {
	ok, err := v.Exists(path)
	if err != nil {
		return "", err
	}
	if ok {
		return ActionWouldUpdate, nil
	}
	return ActionWouldCreate, nil
}

// Write creates the file at path or replaces its full content.
// The content is written to a temp file in the same directory and renamed
// into place, so readers never see a partial document.
func (v *Vault) Write(path string, content []byte) (Action, error) {
	rel, err := cleanPath(path)
	if err != nil {
		return "", err
	}

	existed, err := afero.Exists(v.fs, rel)
	if err != nil {
		return "", apperrors.FileSystem(fmt.Sprintf("checking %s", path), err)
	}

	dir := filepath.Dir(rel)
	if err := v.fs.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.FileSystem(fmt.Sprintf("creating directory %s", dir), err)
	}

	tmp, err := afero.TempFile(v.fs, dir, ".canvas-sync-*.tmp")
	if err != nil {
		return "", apperrors.FileSystem("creating temp file", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = v.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return "", apperrors.FileSystem("writing temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		return "", apperrors.FileSystem("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return "", apperrors.FileSystem("closing temp file", err)
	}
	if err := v.fs.Chmod(tmpPath, 0644); err != nil {
		return "", apperrors.FileSystem("setting permissions", err)
	}
	if err := v.fs.Rename(tmpPath, rel); err != nil {
		return "", apperrors.FileSystem(fmt.Sprintf("renaming temp file to %s", path), err)
	}

	success = true
	if existed {
		return ActionUpdated, nil
	}
	return ActionCreated, nil
}

// cleanPath normalizes a vault-relative path and rejects anything that
// would resolve outside the vault root.
func cleanPath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return "", apperrors.FileSystem(fmt.Sprintf("path '%s' must be relative to the vault root", path), nil)
	}
	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", apperrors.FileSystem(fmt.Sprintf("path '%s' is outside the vault root", path), nil)
	}
	return clean, nil
}

// IsNotExist reports whether err means a vault path is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrRootNotFound) || errors.Is(err, os.ErrNotExist)
}
