package domain

import (
	"time"
)

// Layer identifies who owns a generated file after the first generation.
type Layer string

const (
	// LayerBase files are owned by the generator and rewritten on every run.
	LayerBase Layer = "base"
	// LayerBiz files are owned by the developer once they exist.
	LayerBiz Layer = "biz"
)

// ValidLayers enumerates the layers a template mapping may target.
var ValidLayers = []Layer{LayerBase, LayerBiz}

// FileType classifies a generated file.
type FileType string

const (
	FileTypeBase   FileType = "base"
	FileTypeBiz    FileType = "biz"
	FileTypeTest   FileType = "test"
	FileTypeDoc    FileType = "doc"
	FileTypeConfig FileType = "config"
)

// RelationType is the cardinality of a relation between two entities.
type RelationType string

const (
	RelationOneToOne   RelationType = "oneToOne"
	RelationOneToMany  RelationType = "oneToMany"
	RelationManyToOne  RelationType = "manyToOne"
	RelationManyToMany RelationType = "manyToMany"
)

// Entity is a named domain object with typed fields.
type Entity struct {
	ID          string         `json:"id"                    yaml:"id"`
	Name        string         `json:"name"                  yaml:"name"`
	Code        string         `json:"code,omitempty"        yaml:"code,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field        `json:"fields"                yaml:"fields"`
	Relations   []Relation     `json:"relations,omitempty"   yaml:"relations,omitempty"`
	Config      map[string]any `json:"config,omitempty"      yaml:"config,omitempty"`
}

// HasRelations reports whether any relation is attached to the entity.
func (e Entity) HasRelations() bool { return len(e.Relations) > 0 }

type Field struct {
	Name         string `json:"name"                    yaml:"name"`
	Type         string `json:"type"                    yaml:"type"`
	Required     bool   `json:"required,omitempty"      yaml:"required,omitempty"`
	Unique       bool   `json:"unique,omitempty"        yaml:"unique,omitempty"`
	DefaultValue string `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Length       int    `json:"length,omitempty"        yaml:"length,omitempty"`
	Description  string `json:"description,omitempty"   yaml:"description,omitempty"`
}

// Relation links a source entity to a target entity.
type Relation struct {
	ID             string       `json:"id"                    yaml:"id"`
	Type           RelationType `json:"type"                  yaml:"type"`
	SourceEntityID string       `json:"source_entity_id"      yaml:"source_entity_id"`
	TargetEntityID string       `json:"target_entity_id"      yaml:"target_entity_id"`
	Field          string       `json:"field,omitempty"       yaml:"field,omitempty"`
	ForeignKey     string       `json:"foreign_key,omitempty" yaml:"foreign_key,omitempty"`
	Cascade        bool         `json:"cascade,omitempty"     yaml:"cascade,omitempty"`
}

// Project carries project-level metadata into templates and project files.
type Project struct {
	ID          string `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty"     yaml:"version,omitempty"`
	Module      string `json:"module,omitempty"      yaml:"module,omitempty"`
}

// GenerationOptions toggles the optional stages of a generation run.
type GenerationOptions struct {
	OutputDir       string `json:"output_dir"       yaml:"output_dir"`
	OverwriteBase   bool   `json:"overwrite_base"   yaml:"overwrite_base"`
	OverwriteBiz    bool   `json:"overwrite_biz"    yaml:"overwrite_biz"`
	GenerateTests   bool   `json:"generate_tests"   yaml:"generate_tests"`
	GenerateDocs    bool   `json:"generate_docs"    yaml:"generate_docs"`
	OptimizeImports bool   `json:"optimize_imports" yaml:"optimize_imports"`
	FormatCode      bool   `json:"format_code"      yaml:"format_code"`
	ValidateCode    bool   `json:"validate_code"    yaml:"validate_code"`
}

// DefaultGenerationOptions returns options that regenerate base files and
// never touch existing biz files.
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		OverwriteBase: true,
		OverwriteBiz:  false,
	}
}

// GenerationContext is the full input of a generation run.
type GenerationContext struct {
	Strategy  *GenerationStrategy `json:"strategy"`
	Entities  []Entity            `json:"entities"`
	Relations []Relation          `json:"relations,omitempty"`
	Project   Project             `json:"project"`
	Options   GenerationOptions   `json:"options"`
}

// GeneratedFile is one rendered output file. The engine never writes it.
type GeneratedFile struct {
	Path         string   `json:"path"`
	Content      string   `json:"content"`
	Type         FileType `json:"type"`
	Size         int      `json:"size"`
	Checksum     string   `json:"checksum"`
	Dependencies []string `json:"dependencies,omitempty"`
	TemplateID   string   `json:"template_id,omitempty"`
}

// SourceFile returns the file as analysis input.
func (f GeneratedFile) SourceFile() SourceFile {
	return SourceFile{Path: f.Path, Content: f.Content}
}

// SkipReasonBizExists marks a biz file left untouched because it already exists.
const SkipReasonBizExists = "biz-exists"

// SkippedFile records a mapping that was deliberately not rendered.
type SkippedFile struct {
	Path       string `json:"path"`
	TemplateID string `json:"template_id"`
	Entity     string `json:"entity"`
	Reason     string `json:"reason"`
}

// GenerationMetrics summarizes the files of a run.
type GenerationMetrics struct {
	TotalFiles        int            `json:"total_files"`
	TotalLines        int            `json:"total_lines"`
	TotalSize         int            `json:"total_size"`
	GenerationTime    time.Duration  `json:"generation_time"`
	TemplateUsage     map[string]int `json:"template_usage"`
	LayerDistribution map[string]int `json:"layer_distribution"`
}

// GenerationResult is the output of a generation run.
type GenerationResult struct {
	RunID    string            `json:"run_id,omitempty"`
	Success  bool              `json:"success"`
	Files    []GeneratedFile   `json:"files"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
	Skipped  []SkippedFile     `json:"skipped,omitempty"`
	Metrics  GenerationMetrics `json:"metrics"`
}

// SourceFile is a path and its content, the input of quality analysis.
type SourceFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// RunEntry is one record in the generation history ledger.
type RunEntry struct {
	RunID      string            `json:"run_id"`
	Timestamp  time.Time         `json:"timestamp"`
	Strategy   string            `json:"strategy"`
	Success    bool              `json:"success"`
	FileCount  int               `json:"file_count"`
	Skipped    int               `json:"skipped"`
	Checksums  map[string]string `json:"checksums,omitempty"`
	CommitHash string            `json:"commit_hash,omitempty"`
}
