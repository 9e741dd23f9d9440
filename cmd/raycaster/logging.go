package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "raycaster.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging points the standard logger at its destination. The window
// backend logs to stderr. The terminal backend owns the tty, so it logs to
// logs/raycaster.log when debug is on and discards output otherwise. The
// returned file, if any, must be closed by the caller.
func setupLogging(backend string, debug bool) *os.File {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if backend != backendTcell {
		log.SetOutput(os.Stderr)
		return nil
	}
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("raycaster-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	return f
}
