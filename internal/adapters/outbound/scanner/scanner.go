// Package scanner collects the source files the quality analyzer reads.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	".lowgen":      true,
	"dist":         true,
	"bin":          true,
	"testdata":     true,
}

// sourceExts are the extensions the quality rules understand.
var sourceExts = map[string]bool{
	".ts":   true,
	".tsx":  true,
	".js":   true,
	".jsx":  true,
	".java": true,
	".go":   true,
}

const maxFileSize = 1 << 20 // larger files are generated or vendored

// FileScanner implements domain.SourceScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan returns every source file under root with its path relative to root,
// slash-separated, in lexical order. An exclude is either a directory name
// skipped at any depth or a root-relative path prefix.
func (s *FileScanner) Scan(root string, excludePaths ...string) ([]domain.SourceFile, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	// Merge extra excludes with built-in skip dirs.
	extraSkip := make(map[string]bool, len(excludePaths))
	var prefixes []string
	for _, p := range excludePaths {
		p = strings.Trim(filepath.ToSlash(p), "/")
		if p == "" {
			continue
		}
		if strings.Contains(p, "/") {
			prefixes = append(prefixes, p)
		} else {
			extraSkip[p] = true
		}
	}
	excluded := func(rel string) bool {
		for _, p := range prefixes {
			if rel == p || strings.HasPrefix(rel, p+"/") {
				return true
			}
		}
		return false
	}

	var files []domain.SourceFile
	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || extraSkip[d.Name()] || excluded(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !sourceExts[filepath.Ext(d.Name())] || excluded(relPath) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, domain.SourceFile{Path: relPath, Content: string(data)})
		return nil
	})

	return files, err
}
