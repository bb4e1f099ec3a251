package version

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aottr/releasor/internal/config"
	"github.com/aottr/releasor/internal/utils"
)

type fakeRunner struct {
	out   string
	err   error
	calls []utils.Command
}

func (f *fakeRunner) Run(_ context.Context, c utils.Command) (string, error) {
	f.calls = append(f.calls, c)
	return f.out, f.err
}

func TestOverrideSkipsCommands(t *testing.T) {
	r := &fakeRunner{}
	for in, want := range map[string]string{"v1.2.3": "1.2.3", "1.2.3": "1.2.3", "vv1": "v1"} {
		got, err := Resolve(context.Background(), r, config.Project{VersionCommand: "cat VERSION"}, in)
		if err != nil || got != want {
			t.Errorf("Resolve(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if len(r.calls) != 0 {
		t.Fatalf("override must not run commands, ran %v", r.calls)
	}
}

func TestGitTagFallback(t *testing.T) {
	r := &fakeRunner{out: "v0.4.1"}
	got, err := Resolve(context.Background(), r, config.Project{}, "")
	if err != nil || got != "0.4.1" {
		t.Fatalf("got %q, %v", got, err)
	}
	if len(r.calls) != 1 || r.calls[0].String() != "git describe --tags --abbrev=0" {
		t.Fatalf("unexpected calls %v", r.calls)
	}
}

func TestVersionCommand(t *testing.T) {
	r := &fakeRunner{out: "2.0.0"}
	got, err := Resolve(context.Background(), r, config.Project{VersionCommand: "  cat   VERSION "}, "")
	if err != nil || got != "2.0.0" {
		t.Fatalf("got %q, %v", got, err)
	}
	c := r.calls[0]
	if c.Name != "cat" || len(c.Args) != 1 || c.Args[0] != "VERSION" {
		t.Fatalf("unexpected command %+v", c)
	}
}

func TestUnresolved(t *testing.T) {
	tests := []struct {
		name    string
		project config.Project
		runner  *fakeRunner
	}{
		{"no tags", config.Project{}, &fakeRunner{err: &utils.ExitError{Command: utils.Command{Name: "git"}, Code: 128}}},
		{"empty output", config.Project{}, &fakeRunner{out: ""}},
		{"bare v", config.Project{VersionCommand: "echo v"}, &fakeRunner{out: "v"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(context.Background(), tc.runner, tc.project, "")
			if !errors.Is(err, ErrUnresolved) {
				t.Fatalf("expected ErrUnresolved, got %v", err)
			}
			if !strings.Contains(err.Error(), "--version") {
				t.Fatalf("error should tell the user about --version: %v", err)
			}
		})
	}
}
