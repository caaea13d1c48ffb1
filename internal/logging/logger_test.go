package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLoggingConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func resetLogging() {
	CloseAll()
	logsDir = ""
	baseDir = ""
	config = loggingConfig{}
	logLevel = LevelInfo
}

func TestInitializeProductionModeIsNoop(t *testing.T) {
	defer resetLogging()
	dir := t.TempDir()

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsDebugMode() {
		t.Error("debug mode should be off without config")
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not be created in production mode")
	}

	// Logging must be a silent no-op
	Session("should not be written")
}

func TestInitializeDebugModeWritesFiles(t *testing.T) {
	defer resetLogging()
	dir := t.TempDir()
	writeLoggingConfig(t, dir, `{"logging":{"debug_mode":true,"level":"debug"}}`)

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !IsDebugMode() {
		t.Fatal("debug mode should be on")
	}

	Review("transition %s -> %s", "MenuReady", "RatingInProgress")
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.Contains(e.Name(), "review") {
			data, _ := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
			if strings.Contains(string(data), "MenuReady -> RatingInProgress") {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected review log entry")
	}
}

func TestCategoryFilter(t *testing.T) {
	defer resetLogging()
	dir := t.TempDir()
	writeLoggingConfig(t, dir, `{"logging":{"debug_mode":true,"categories":{"menu":false}}}`)

	if err := Initialize(dir); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsCategoryEnabled(CategoryMenu) {
		t.Error("menu category should be disabled")
	}
	if !IsCategoryEnabled(CategorySession) {
		t.Error("unlisted categories should default to enabled")
	}
}
