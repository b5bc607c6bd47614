package site

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// copyAssets copies every non-hidden file under assetsDir verbatim into
// destDir, preserving relative layout. Hidden files and hidden directories
// (dot-prefixed) are skipped. A missing assets directory is not an error;
// any other failure aborts the build.
func copyAssets(assetsDir, destDir string) error {
	if _, err := os.Stat(assetsDir); os.IsNotExist(err) {
		slog.Debug("No assets directory, skipping", "dir", assetsDir)
		return nil
	}

	count := 0
	err := filepath.WalkDir(assetsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.IO(err)
		}
		if strings.HasPrefix(d.Name(), ".") && path != assetsDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(assetsDir, path)
		if relErr != nil {
			return errors.Wrap(relErr, errors.KindOther, "relativize asset path")
		}
		dest := filepath.Join(destDir, rel)
		if copyErr := copyFile(path, dest); copyErr != nil {
			return copyErr
		}
		slog.Debug("Copied asset", "src", path, "dest", dest)
		count++
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Assets copied", "count", count)
	return nil
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errors.IO(err)
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.IO(err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return errors.IO(err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return errors.IO(err)
	}
	return nil
}
