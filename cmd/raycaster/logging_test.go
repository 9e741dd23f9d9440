package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggingEbitenUsesStderr(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)

	if f := setupLogging(backendEbiten, true); f != nil {
		f.Close()
		t.Error("Expected no log file for the window backend")
	}
	if log.Writer() != os.Stderr {
		t.Errorf("Expected log output on stderr, got %v", log.Writer())
	}
}

func TestSetupLoggingTerminalDiscardsWithoutDebug(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)

	if f := setupLogging(backendTcell, false); f != nil {
		f.Close()
		t.Error("Expected nil log file when debug=false")
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLoggingTerminalWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)

	f := setupLogging(backendTcell, true)
	if f == nil {
		t.Fatal("Expected a log file when debug=true")
	}
	defer f.Close()

	log.Println("Test log message")

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLoggingRotation(t *testing.T) {
	t.Chdir(t.TempDir())
	defer log.SetOutput(os.Stderr)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	f := setupLogging(backendTcell, true)
	if f == nil {
		t.Fatal("Expected non-nil log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected a fresh log file, got %d bytes", info.Size())
	}
}
