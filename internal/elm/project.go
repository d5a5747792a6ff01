package elm

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KarpelesLab/pjson"
)

const projectFile = "elm.json"

// Project is the subset of elm.json the plugin needs.
type Project struct {
	Type              string   `json:"type"`
	SourceDirectories []string `json:"source-directories"`
}

// FindProjectRoot walks up from dir looking for elm.json and returns the
// directory containing it, or "" when none is found.
func FindProjectRoot(dir string) string {
	dir = filepath.Clean(dir)
	for {
		if _, err := os.Stat(filepath.Join(dir, projectFile)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ReadProject parses root/elm.json.
func ReadProject(root string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(root, projectFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", projectFile, err)
	}
	var p Project
	if err := pjson.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", projectFile, err)
	}
	return &p, nil
}

// SourceDirs returns the absolute source directories. Packages have no
// source-directories field and always use src.
func (p *Project) SourceDirs(root string) []string {
	dirs := p.SourceDirectories
	if len(dirs) == 0 {
		dirs = []string{"src"}
	}
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if filepath.IsAbs(d) {
			out = append(out, filepath.Clean(d))
			continue
		}
		out = append(out, filepath.Join(root, d))
	}
	return out
}

// Modules lists every .elm file under the project's source directories.
// Missing directories are skipped.
func (p *Project) Modules(root string) []string {
	var files []string
	for _, dir := range p.SourceDirs(root) {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d == nil || path == dir {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if d.Name() == "elm-stuff" || d.Name() == "node_modules" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".elm" {
				files = append(files, path)
			}
			return nil
		})
	}
	return files
}
