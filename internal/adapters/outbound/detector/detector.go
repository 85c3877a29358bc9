// Package detector recognizes a project's framework from the build files at
// its root.
package detector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// FrameworkDetector implements domain.FrameworkDetector.
type FrameworkDetector struct{}

func New() *FrameworkDetector {
	return &FrameworkDetector{}
}

// markers are checked in order; the first hit wins.
var markers = []struct {
	file      string
	framework string
	match     func(data []byte) bool
}{
	{"package.json", "nestjs", hasNodeDep("@nestjs/core", "@nestjs/common")},
	{"package.json", "react", hasNodeDep("react")},
	{"package.json", "express", hasNodeDep("express")},
	{"pom.xml", "spring-boot", contains("spring-boot")},
	{"build.gradle", "spring-boot", contains("org.springframework.boot")},
	{"build.gradle.kts", "spring-boot", contains("org.springframework.boot")},
	{"go.mod", "go", func([]byte) bool { return true }},
}

// Detect returns the framework of the project at projectPath, or "".
func (d *FrameworkDetector) Detect(projectPath string) string {
	cache := map[string][]byte{}
	for _, m := range markers {
		data, ok := cache[m.file]
		if !ok {
			var err error
			data, err = os.ReadFile(filepath.Join(projectPath, m.file))
			if err != nil {
				data = nil
			}
			cache[m.file] = data
		}
		if data != nil && m.match(data) {
			return m.framework
		}
	}
	return ""
}

func contains(s string) func([]byte) bool {
	return func(data []byte) bool { return strings.Contains(string(data), s) }
}

func hasNodeDep(names ...string) func([]byte) bool {
	return func(data []byte) bool {
		var pkg struct {
			Dependencies    map[string]string `json:"dependencies"`
			DevDependencies map[string]string `json:"devDependencies"`
			PeerDeps        map[string]string `json:"peerDependencies"`
		}
		if err := json.Unmarshal(data, &pkg); err != nil {
			return false
		}
		for _, n := range names {
			if _, ok := pkg.Dependencies[n]; ok {
				return true
			}
			if _, ok := pkg.DevDependencies[n]; ok {
				return true
			}
			if _, ok := pkg.PeerDeps[n]; ok {
				return true
			}
		}
		return false
	}
}
