package reporter

import (
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CompressOlder gzips saved reports in the output directory whose modification
// time is older than retentionDays. Already compressed files and files that were
// not written by SaveReport are left alone. It returns the number of reports compressed.
func (r *Reporter) CompressOlder(retentionDays int) (int, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(r.outputDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	compressed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isSavedReport(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(r.outputDir, entry.Name())
		if err := gzipFile(path); err != nil {
			return compressed, err
		}
		compressed++
	}
	return compressed, nil
}

func isSavedReport(name string) bool {
	return strings.Contains(name, "_analysis_") && filepath.Ext(name) != ".gz"
}

// gzipFile replaces path with path.gz. An existing archive wins and the original is removed.
func gzipFile(path string) error {
	gz := path + ".gz"
	if _, err := os.Stat(gz); err == nil {
		return os.Remove(path)
	} else if !os.IsNotExist(err) {
		return err
	}

	in, err := os.Open(path)
	if err != nil {
		return err
	}

	out, err := os.OpenFile(gz, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fs.FileMode(0o644))
	if err != nil {
		in.Close()
		return err
	}

	gw := gzip.NewWriter(out)
	gw.Name = filepath.Base(path)
	_, err = io.Copy(gw, in)
	in.Close()
	if err == nil {
		err = gw.Close()
	} else {
		_ = gw.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(gz)
		return err
	}
	return os.Remove(path)
}
