/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetAndGetLevel(t *testing.T) {
	original := GetLogger()
	defer func() { globalLogger = original }()

	var buf bytes.Buffer
	SetOutput(&buf)

	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "debug"},
		{"DEBUG", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"error", "error"},
		{"invalid", "info"}, // Unknown levels fall back to info
		{"", "info"},
	}

	for _, test := range tests {
		SetLevel(test.input)
		if GetLevel() != test.expected {
			t.Errorf("SetLevel(%q): expected %q, got %q", test.input, test.expected, GetLevel())
		}
	}
}

func TestLogFunctionsRespectLevel(t *testing.T) {
	original := GetLogger()
	defer func() { globalLogger = original }()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("warn")

	Debug("debug %s", "hidden")
	Info("info %s", "hidden")
	Warn("warn %s", "shown")
	Error("error %d", 42)

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("Expected debug and info to be filtered, got %s", output)
	}
	if !strings.Contains(output, "warn shown") {
		t.Errorf("Expected warn message in output, got %s", output)
	}
	if !strings.Contains(output, "error 42") {
		t.Errorf("Expected error message in output, got %s", output)
	}
}

func TestInitWritesToFile(t *testing.T) {
	original := GetLogger()
	defer func() { globalLogger = original }()

	logFile := filepath.Join(t.TempDir(), "logs", "peacock.log")
	if err := Init(Options{File: logFile, Level: "debug", MaxSize: 1, MaxAge: 1, MaxBackups: 1}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("document loaded from %s", "config.json")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "document loaded from config.json") {
		t.Errorf("Expected message in log file, got %s", string(data))
	}
}

func TestInitWithoutOutputsIsSilent(t *testing.T) {
	original := GetLogger()
	defer func() { globalLogger = original }()

	if err := Init(Options{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	// Must not panic or write anywhere
	Error("nothing to see")
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/tmp/peacock-home")

	expanded, err := ExpandHome("~/logs/app.log")
	if err != nil {
		t.Fatalf("ExpandHome failed: %v", err)
	}
	if expanded != filepath.Join("/tmp/peacock-home", "logs", "app.log") {
		t.Errorf("Expected expanded path, got %s", expanded)
	}

	unchanged, _ := ExpandHome("/var/log/app.log")
	if unchanged != "/var/log/app.log" {
		t.Errorf("Expected absolute path unchanged, got %s", unchanged)
	}
}
