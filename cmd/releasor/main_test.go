package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aottr/releasor/internal/github"
	"github.com/aottr/releasor/internal/ui"
)

const validConfig = `
project:
  name: tool
  repo: owner/tool
build:
  command: "make {target}"
  artifact: "out/{target}/{binary}"
  targets: [x86_64-apple-darwin]
channels:
  github:
  curl:
    install_dir: /opt/bin
`

type testApp struct {
	*app
	stdout, stderr bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	ta := &testApp{}
	ta.app = &app{
		stdout: &ta.stdout,
		stderr: &ta.stderr,
		stdin:  strings.NewReader(""),
		getwd:  func() (string, error) { return filepath.Join(dir, "my-cool-tool"), nil },
		newAPI: func(*ui.Printer) github.API { return nil },
	}
	return ta
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "releasor.yml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidate(t *testing.T) {
	ta := newTestApp(t)
	path := writeConfig(t, validConfig)

	if code := ta.run(context.Background(), []string{"releasor", "-c", path, "validate"}); code != 0 {
		t.Fatalf("exit %d, stderr %q", code, ta.stderr.String())
	}
	out := ta.stdout.String()
	if !strings.Contains(out, "Config is valid.") || !strings.Contains(out, "Enabled channels: github, curl") {
		t.Fatalf("stdout %q", out)
	}
}

func TestValidateReportsInvalidConfig(t *testing.T) {
	ta := newTestApp(t)
	path := writeConfig(t, "project: {name: tool}\n")

	if code := ta.run(context.Background(), []string{"releasor", "--config", path, "validate"}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(ta.stderr.String(), "[config]") {
		t.Fatalf("stderr %q", ta.stderr.String())
	}
}

func TestInitWritesTemplateOnce(t *testing.T) {
	ta := newTestApp(t)
	path := filepath.Join(t.TempDir(), "releasor.yml")

	if code := ta.run(context.Background(), []string{"releasor", "-c", path, "init"}); code != 0 {
		t.Fatalf("exit %d, stderr %q", code, ta.stderr.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "my-cool-tool") {
		t.Fatalf("project name not taken from the directory:\n%s", data)
	}
	if !strings.Contains(ta.stdout.String(), "Created "+path) {
		t.Fatalf("stdout %q", ta.stdout.String())
	}

	if code := ta.run(context.Background(), []string{"releasor", "-c", path, "init"}); code != 1 {
		t.Fatal("init must refuse to overwrite")
	}
	if !strings.Contains(ta.stderr.String(), "already exists") {
		t.Fatalf("stderr %q", ta.stderr.String())
	}
}

func TestReleaseRejectsUnknownChannel(t *testing.T) {
	ta := newTestApp(t)
	path := writeConfig(t, validConfig)

	if code := ta.run(context.Background(), []string{"releasor", "-c", path, "release", "--version", "1.0.0", "snap"}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(ta.stderr.String(), "[release] unknown channel: snap") {
		t.Fatalf("stderr %q", ta.stderr.String())
	}
}

func TestReleaseRejectsDisabledChannel(t *testing.T) {
	ta := newTestApp(t)
	path := writeConfig(t, validConfig)

	if code := ta.run(context.Background(), []string{"releasor", "-c", path, "release", "homebrew"}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(ta.stderr.String(), "channel is not enabled in config: homebrew") {
		t.Fatalf("stderr %q", ta.stderr.String())
	}
}

func TestInitLabelsWorkingDirError(t *testing.T) {
	ta := newTestApp(t)
	ta.getwd = func() (string, error) { return "", errors.New("getwd: no such file or directory") }

	if code := ta.run(context.Background(), []string{"releasor", "-c", filepath.Join(t.TempDir(), "releasor.yml"), "init"}); code != 1 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(ta.stderr.String(), "[init] getwd: no such file or directory") {
		t.Fatalf("stderr %q", ta.stderr.String())
	}
}
