// Package schemafile reads project schemas from YAML or JSON files.
package schemafile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openkraft/lowgen/internal/domain"
)

// Loader implements domain.SchemaSource.
type Loader struct{}

func New() *Loader { return &Loader{} }

// Load decodes the schema at path. Unknown keys are rejected so a misspelled
// field name does not silently drop data.
func (l *Loader) Load(path string) (*domain.SchemaDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}

	var doc domain.SchemaDocument
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if len(doc.Entities) == 0 {
		return nil, fmt.Errorf("parsing %s: no entities defined", filepath.Base(path))
	}
	return &doc, nil
}
