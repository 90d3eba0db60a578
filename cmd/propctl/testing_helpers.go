package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/propkit/internal/logging"
	"github.com/joshuapare/propkit/internal/testutil"
)

const (
	testLabelSystem  = "u:object_r:system_prop:s0"
	testLabelDefault = "u:object_r:default_prop:s0"
)

// setupRegions lays out a label definition file and one blank region per
// label, and points the global flags at them.
func setupRegions(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	contexts := testutil.WriteFile(t, dir, "property_contexts",
		"ro. "+testLabelSystem+"\n* "+testLabelDefault+"\n")
	root := filepath.Join(dir, "__properties__")
	testutil.WriteBlankRegion(t, root, testLabelSystem)
	testutil.WriteBlankRegion(t, root, testLabelDefault)

	resetFlags()
	rootDir = root
	sdkLevel = 30
	labelFiles = []string{contexts}
	assumeYes = true
	isPrivileged = func() bool { return true }
	t.Cleanup(resetFlags)
	return root
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut, noColor = false, false, false, true
	withLabels, useFiles, assumeYes = false, false, false
	rootDir, sdkLevel, labelFiles = "", 0, nil
	logType, logLevel, logFile, logCompress = int(logging.TypeConsole), "error", "", false
	stdin = os.Stdin
	isPrivileged = nil
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}
