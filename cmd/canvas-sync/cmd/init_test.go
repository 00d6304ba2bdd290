package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/canvas-sync/internal/config"
)

func TestInitCreatesSettings(t *testing.T) {
	root := isolate(t)

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init: %v", err)
	}

	outPath := filepath.Join(root, ".canvas-sync.yaml")
	fi, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Mode().Perm() != 0600 {
		t.Errorf("settings mode = %v, want 0600", fi.Mode().Perm())
	}

	if _, err := os.Stat(filepath.Join(root, "01-Active")); err != nil {
		t.Errorf("sync root not created: %v", err)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	root := isolate(t)
	writeFile(t, filepath.Join(root, ".canvas-sync.yaml"), "existing")

	err := initCmd.RunE(initCmd, nil)
	if err == nil {
		t.Fatal("expected error when file exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error should mention 'already exists': %v", err)
	}
}

func TestInitForceOverwrites(t *testing.T) {
	root := isolate(t)
	outPath := filepath.Join(root, ".canvas-sync.yaml")
	writeFile(t, outPath, "old content")

	initForce = true
	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init --force: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) == "old content" {
		t.Error("file was not overwritten")
	}
}

func TestInitWritesToConfigFlag(t *testing.T) {
	root := isolate(t)
	configPath = filepath.Join(root, "settings", "custom.yaml")

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("custom settings not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".canvas-sync.yaml")); !os.IsNotExist(err) {
		t.Error("vault settings file should not be created when --config is set")
	}
}

func TestInitTemplateIsValidYAML(t *testing.T) {
	var out map[string]any
	if err := yaml.Unmarshal([]byte(initTemplate), &out); err != nil {
		t.Fatalf("template is not valid YAML: %v", err)
	}
	for _, key := range append(config.Keys(), config.KeyCourseMapping) {
		if _, ok := out[key]; !ok {
			t.Errorf("template should contain %q", key)
		}
	}
}

func TestInitTemplateLoadsAsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".canvas-sync.yaml")
	writeFile(t, path, initTemplate)

	s, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if errs := config.Validate(s); len(errs) > 0 {
		t.Fatalf("template does not validate: %v", errs)
	}
	if s.SyncRootPath != config.DefaultSyncRootPath || s.Timeout != config.DefaultTimeout {
		t.Errorf("template defaults differ: %+v", s)
	}
}
