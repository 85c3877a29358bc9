// Package renderer implements domain.TemplateRenderer with text/template.
// Templates are embedded per framework and can be overridden, or extended,
// from a directory of <templateId>.tmpl files.
package renderer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/naming"
)

//go:embed templates
var embedded embed.FS

const ext = ".tmpl"

var funcs = template.FuncMap{
	"camel":    naming.ToCamelCase,
	"pascal":   naming.ToPascalCase,
	"kebab":    naming.ToKebabCase,
	"snake":    naming.ToSnakeCase,
	"plural":   naming.Pluralize,
	"humanize": naming.Humanize,
	"lower":    strings.ToLower,
	"upper":    strings.ToUpper,
	"join":     strings.Join,
}

// TemplateRenderer renders entity templates by template ID.
type TemplateRenderer struct {
	root *template.Template
	ids  map[string]bool
}

// New loads the embedded templates, then every *.tmpl file in overrideDir
// when it is not empty. An override with the ID of an embedded template
// replaces it.
func New(overrideDir string) (*TemplateRenderer, error) {
	r := &TemplateRenderer{
		root: template.New("lowgen").Funcs(funcs).Option("missingkey=zero"),
		ids:  make(map[string]bool),
	}

	err := fs.WalkDir(embedded, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ext {
			return err
		}
		data, err := embedded.ReadFile(p)
		if err != nil {
			return err
		}
		return r.add(strings.TrimSuffix(path.Base(p), ext), string(data))
	})
	if err != nil {
		return nil, fmt.Errorf("loading embedded templates: %w", err)
	}

	if overrideDir != "" {
		if err := r.loadDir(overrideDir); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *TemplateRenderer) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading templates dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading template %s: %w", e.Name(), err)
		}
		if err := r.add(strings.TrimSuffix(e.Name(), ext), string(data)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TemplateRenderer) add(id, text string) error {
	if _, err := r.root.New(id).Parse(text); err != nil {
		return fmt.Errorf("parsing template %s: %w", id, err)
	}
	r.ids[id] = true
	return nil
}

// HasTemplate reports whether a template with the given ID is loaded.
func (r *TemplateRenderer) HasTemplate(id string) bool {
	return r.ids[id]
}

// TemplateIDs lists the loaded template IDs, sorted.
func (r *TemplateRenderer) TemplateIDs() []string {
	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Render executes the template against entity within gctx.
func (r *TemplateRenderer) Render(ctx context.Context, templateID string, entity domain.Entity, gctx *domain.GenerationContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !r.ids[templateID] {
		return "", fmt.Errorf("template %q not found", templateID)
	}
	if gctx == nil || gctx.Strategy == nil {
		return "", fmt.Errorf("template %q: no strategy in context", templateID)
	}

	var buf bytes.Buffer
	if err := r.root.ExecuteTemplate(&buf, templateID, newView(entity, gctx)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
