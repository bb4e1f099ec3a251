package checksum

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestKnownDigests(t *testing.T) {
	dir := t.TempDir()
	abc := writeFile(t, dir, "abc.txt", "abc")
	empty := writeFile(t, dir, "empty.txt", "")
	tests := []struct {
		algo Algorithm
		path string
		want string
	}{
		{SHA256, abc, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{SHA512, abc, "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f"},
		{BLAKE3, empty, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262"},
	}
	for _, tc := range tests {
		t.Run(tc.algo.Name, func(t *testing.T) {
			got, err := File(tc.path, tc.algo)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestSHA256FileMissing(t *testing.T) {
	if _, err := SHA256File(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"sha256", "SHA512", " blake3 "} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
	if _, err := Lookup("md5"); err == nil {
		t.Error("md5 should be unsupported")
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "tool-1.0.0-b.tar.gz", "abc")
	b := writeFile(t, dir, "tool-1.0.0-a.tar.gz", "")

	out, err := WriteManifest(dir, []string{a, b}, SHA256)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(out) != "SHA256SUMS" {
		t.Fatalf("manifest path %s", out)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad  tool-1.0.0-b.tar.gz",
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855  tool-1.0.0-a.tar.gz",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
