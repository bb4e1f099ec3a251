package build

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
)

// ArchiveName is the file name shared by the pipeline, the Homebrew formula and
// the install script: <binary>-<version>-<target>.tar.gz.
func ArchiveName(binary, version, target string) string {
	return fmt.Sprintf("%s-%s-%s.tar.gz", binary, version, target)
}

// CreateTarGz writes a gzip-compressed tar at dest holding src as a single
// entry named by its base name.
func CreateTarGz(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	if err := writeTarGz(out, in, info); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, dest)
}

func writeTarGz(w io.Writer, src io.Reader, info os.FileInfo) error {
	zw := pgzip.NewWriter(w)
	tw := tar.NewWriter(zw)

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = info.Name()
	// keep archives free of the builder's user and group names
	hdr.Uname, hdr.Gname = "", ""
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := io.Copy(tw, src); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return zw.Close()
}
