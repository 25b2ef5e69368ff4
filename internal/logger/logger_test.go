package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}

	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
		t.Fatalf("unexpected log dir: %s", filepath.Dir(got))
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Fatalf("expected log dir to be created: %v", err)
	}
}

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{
		Dir:      tmpDir,
		Filename: "toko.log",
	})
	log.Info("checkout-log-probe")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "toko.log"))
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(content), "checkout-log-probe") {
		t.Fatalf("expected log content to contain message, got=%s", string(content))
	}
}

func TestNewDebugWritesToStdoutOnly(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{
		Dir:      tmpDir,
		Filename: "debug.log",
	})
	log.Info("debug-log-probe")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestPositiveOr(t *testing.T) {
	if got := positiveOr(0, 7); got != 7 {
		t.Fatalf("positiveOr(0,7)=%d want 7", got)
	}
	if got := positiveOr(-3, 7); got != 7 {
		t.Fatalf("positiveOr(-3,7)=%d want 7", got)
	}
	if got := positiveOr(14, 7); got != 14 {
		t.Fatalf("positiveOr(14,7)=%d want 14", got)
	}
}
