package domain

import (
	"context"
	"time"
)

// FileSystem is the only view the generator has of existing output.
type FileSystem interface {
	Exists(path string) (bool, error)
	Read(path string) (string, error)
	Write(path, content string) error
}

// TemplateRenderer turns a template ID and an entity into file content.
type TemplateRenderer interface {
	Render(ctx context.Context, templateID string, entity Entity, gctx *GenerationContext) (string, error)
}

// OptionalTemplates is implemented by renderers that can report whether a
// template exists without rendering it.
type OptionalTemplates interface {
	HasTemplate(templateID string) bool
}

// StrategyRepository persists strategies behind the in-memory registry.
type StrategyRepository interface {
	List(ctx context.Context) ([]GenerationStrategy, error)
	Get(ctx context.Context, name string) (*GenerationStrategy, error)
	Save(ctx context.Context, s GenerationStrategy) error
	Delete(ctx context.Context, name string) error
}

// SchemaDocument is a project schema as read from disk.
type SchemaDocument struct {
	Project   Project    `json:"project"             yaml:"project"`
	Strategy  string     `json:"strategy,omitempty"  yaml:"strategy,omitempty"`
	Entities  []Entity   `json:"entities"            yaml:"entities"`
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// SchemaSource loads entity schemas.
type SchemaSource interface {
	Load(path string) (*SchemaDocument, error)
}

// ConfigLoader loads project configuration from a directory.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// RunHistory persists a ledger of generation runs.
type RunHistory interface {
	Save(outputDir string, entry RunEntry) error
	Load(outputDir string) ([]RunEntry, error)
}

type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// SourceScanner collects analyzable source files under a directory.
type SourceScanner interface {
	Scan(root string, excludePaths ...string) ([]SourceFile, error)
}

// ReportCache stores the last quality report keyed by a content fingerprint.
type ReportCache interface {
	Load(projectPath string) (*CachedReport, error)
	Save(projectPath string, cached *CachedReport) error
	Invalidate(projectPath string) error
}

// CachedReport is a quality report bound to the inputs that produced it.
type CachedReport struct {
	Fingerprint string        `json:"fingerprint"`
	Framework   string        `json:"framework"`
	CreatedAt   time.Time     `json:"created_at"`
	Report      QualityReport `json:"report"`
}

// GenerationObserver receives generation events for metrics export.
type GenerationObserver interface {
	FileGenerated(layer string)
	FileSkipped(reason string)
	RenderFailed(templateID string)
	RunCompleted(d time.Duration, success bool)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) FileGenerated(string)             {}
func (NopObserver) FileSkipped(string)               {}
func (NopObserver) RenderFailed(string)              {}
func (NopObserver) RunCompleted(time.Duration, bool) {}

// FrameworkDetector guesses a project's framework from its marker files.
// An empty result means no known framework was recognized.
type FrameworkDetector interface {
	Detect(projectPath string) string
}
