// Package walker discovers source files for bulk indexing.
package walker

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonwraymond/codesearch/index"
)

// DefaultMaxFileSize caps files read during a walk.
const DefaultMaxFileSize = 1 << 20 // 1 MiB

// DefaultIgnoreDirs are directory names skipped at any depth.
var DefaultIgnoreDirs = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"target",
}

// Options configures a walk. Zero values use the defaults.
type Options struct {
	// MaxFileSize skips files larger than this many bytes.
	MaxFileSize int64

	// IgnoreDirs are directory names skipped at any depth.
	IgnoreDirs []string
}

func (o Options) withDefaults() Options {
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.IgnoreDirs == nil {
		o.IgnoreDirs = DefaultIgnoreDirs
	}
	return o
}

// Walk collects text files under root as source units. Unit IDs are
// slash-separated paths relative to root. Binary files (detected by a
// NUL byte in the first 8 KiB) and oversized files are skipped silently;
// unreadable files abort the walk.
func Walk(root string, opts Options) ([]index.SourceUnit, error) {
	opts = opts.withDefaults()

	ignore := make(map[string]struct{}, len(opts.IgnoreDirs))
	for _, dir := range opts.IgnoreDirs {
		ignore[dir] = struct{}{}
	}

	var units []index.SourceUnit
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if _, skip := ignore[entry.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return err
		}
		if info.Size() > opts.MaxFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if isBinary(data) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		units = append(units, index.SourceUnit{
			ID:      filepath.ToSlash(rel),
			Content: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return units, nil
}

func isBinary(data []byte) bool {
	sniff := data
	if len(sniff) > 8192 {
		sniff = sniff[:8192]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
