// Package resolver locates the local files belonging to a chip.
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forestcarbon/biomassters/common"
)

// Resolver lists chip files from a pair of local directories: one holding the
// ground-truth rasters, one holding the satellite rasters.
type Resolver struct {
	agbDir      string
	featuresDir string
}

// New creates a Resolver over the given directories
func New(agbDir, featuresDir string) *Resolver {
	return &Resolver{agbDir: agbDir, featuresDir: featuresDir}
}

// Files returns the paths of the chip files on the given platforms, in the
// order the directory listing discovers them. With no platform, it returns the
// ground-truth files, then Sentinel-1, then Sentinel-2, in that order:
// downstream consumers rely on the ground truth being first.
func (r *Resolver) Files(chip string, platforms ...common.Platform) ([]string, error) {
	if len(platforms) == 0 {
		platforms = common.PlatformValues()
	}
	var files []string
	for _, platform := range platforms {
		if !platform.IsAPlatform() {
			return nil, fmt.Errorf("platform %s not found, must be one of {%s}", platform, strings.Join(common.PlatformStrings(), ","))
		}
		matches, err := r.list(chip, platform)
		if err != nil {
			return nil, fmt.Errorf("Files[%s]: %w", chip, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

func (r *Resolver) list(chip string, platform common.Platform) ([]string, error) {
	dir := r.featuresDir
	if platform == common.PlatformAGB {
		dir = r.agbDir
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if platform.Matches(chip, entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
