package util

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
)

// SetupInterruptHandler removes half-written archives when the process is
// interrupted mid-download.
func SetupInterruptHandler(outputDir string) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		fmt.Println("\nInterrupt received. Cleaning up...")

		CleanupTempArchives(outputDir)
		fmt.Println("Exiting due to interrupt.")

		os.Exit(1)
	}()
}

// CleanupTempArchives deletes stale .cbz.tmp files left in outputDir.
func CleanupTempArchives(outputDir string) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".cbz.tmp") {
			continue
		}

		full := filepath.Join(outputDir, name)
		if err := os.Remove(full); err != nil {
			fmt.Printf("Error cleaning up %s: %v\n", full, err)
		} else {
			fmt.Printf("Removed %s\n", full)
		}
	}
}
