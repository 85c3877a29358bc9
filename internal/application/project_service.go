package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/openkraft/lowgen/internal/domain"
)

// GenerateRequest describes a generation run by file paths, the way the CLI
// and the MCP server receive it. Empty fields fall back to Config, then to
// the schema document.
type GenerateRequest struct {
	ProjectDir string
	Config     domain.ProjectConfig
	SchemaPath string
	Strategy   string
	OutputDir  string
	Options    *domain.OptionOverride
	DryRun     bool
}

// GenerateOutcome is a generation result plus what reached disk.
type GenerateOutcome struct {
	Strategy  string                   `json:"strategy"`
	OutputDir string                   `json:"output_dir"`
	DryRun    bool                     `json:"dry_run"`
	Result    *domain.GenerationResult `json:"result"`
	Written   *MaterializeResult       `json:"written,omitempty"`
}

// ProjectService runs generation from a schema file inside a project
// directory: config → schema → strategy → generate → write → record.
type ProjectService struct {
	strategies   *StrategyService
	generator    *GenerationService
	materializer *Materializer
	schemas      domain.SchemaSource
	detector     domain.FrameworkDetector
	logger       *slog.Logger
}

func NewProjectService(
	strategies *StrategyService,
	generator *GenerationService,
	materializer *Materializer,
	schemas domain.SchemaSource,
	logger *slog.Logger,
) *ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{
		strategies:   strategies,
		generator:    generator,
		materializer: materializer,
		schemas:      schemas,
		logger:       logger,
	}
}

// SetDetector lets Generate pick the built-in strategy of the detected
// framework when neither the request, the schema nor the config names one.
func (s *ProjectService) SetDetector(d domain.FrameworkDetector) {
	s.detector = d
}

// Generate runs one generation. A schema validation failure is returned as
// is so callers can tell it apart with IsSchemaError.
func (s *ProjectService) Generate(ctx context.Context, req GenerateRequest) (*GenerateOutcome, error) {
	dir := req.ProjectDir
	if dir == "" {
		dir = "."
	}

	// 1. Schema
	schemaPath := firstNonEmpty(req.SchemaPath, relTo(dir, req.Config.Schema))
	if schemaPath == "" {
		return nil, errors.New("no schema file given (use --schema or set schema in .lowgen.yaml)")
	}
	doc, err := s.schemas.Load(schemaPath)
	if err != nil {
		return nil, err
	}

	// 2. Strategy: request, schema, config, then the detected framework
	name := firstNonEmpty(req.Strategy, doc.Strategy, req.Config.Strategy)
	if name == "" && s.detector != nil {
		if fw := s.detector.Detect(dir); fw != "" {
			name = domain.DefaultConfigForFramework(fw).Strategy
			s.logger.Debug("strategy from detected framework", "framework", fw, "strategy", name)
		}
	}
	if name == "" {
		return nil, errors.New("no strategy given (use --strategy, or set strategy in the schema or .lowgen.yaml)")
	}
	st, err := s.strategies.Get(name)
	if err != nil {
		return nil, err
	}

	// 3. Options: defaults, then config, then request
	out := firstNonEmpty(req.OutputDir, relTo(dir, req.Config.OutputDir), dir)
	opts := req.Options.Apply(req.Config.Options.Apply(domain.DefaultGenerationOptions()))
	opts.OutputDir = filepath.ToSlash(out)

	// 4. Generate
	result, err := s.generator.GenerateCode(ctx, domain.GenerationContext{
		Strategy:  st,
		Entities:  doc.Entities,
		Relations: doc.Relations,
		Project:   doc.Project,
		Options:   opts,
	})
	if err != nil {
		return nil, err
	}
	outcome := &GenerateOutcome{Strategy: name, OutputDir: out, DryRun: req.DryRun, Result: result}
	if req.DryRun {
		return outcome, nil
	}

	// 5. Write and record
	written, err := s.materializer.Write(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	outcome.Written = written
	if err := s.materializer.Record(out, name, result); err != nil {
		s.logger.Warn("run not recorded", "error", err)
	}
	return outcome, nil
}

// LoadStrategyFiles registers the strategy documents a project config lists,
// relative to dir.
func (s *ProjectService) LoadStrategyFiles(ctx context.Context, dir string, paths []string, read func(string) (domain.GenerationStrategy, error)) error {
	for _, p := range paths {
		st, err := read(relTo(dir, p))
		if err != nil {
			return err
		}
		if err := s.strategies.Put(ctx, st); err != nil {
			return fmt.Errorf("registering %s: %w", p, err)
		}
	}
	return nil
}

func relTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
