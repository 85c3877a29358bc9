package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/postprocess"
	"github.com/openkraft/lowgen/internal/domain/projectfiles"
	"github.com/openkraft/lowgen/internal/domain/resolver"
	"github.com/openkraft/lowgen/internal/domain/schema"
	"github.com/openkraft/lowgen/internal/logger"
)

// GenerationService orchestrates a generation run:
// validate → preprocess → render per entity → project files → post-process → metrics.
// It never writes files; see Materializer.
type GenerationService struct {
	fs       domain.FileSystem
	renderer domain.TemplateRenderer
	observer domain.GenerationObserver
	logger   *slog.Logger
	workers  int
}

// GenerationOption configures a GenerationService.
type GenerationOption func(*GenerationService)

// WithWorkers bounds the number of mappings rendered concurrently.
// Zero or less means GOMAXPROCS.
func WithWorkers(n int) GenerationOption {
	return func(s *GenerationService) { s.workers = n }
}

func WithObserver(o domain.GenerationObserver) GenerationOption {
	return func(s *GenerationService) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithLogger(l *slog.Logger) GenerationOption {
	return func(s *GenerationService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewGenerationService(fs domain.FileSystem, renderer domain.TemplateRenderer, opts ...GenerationOption) *GenerationService {
	s := &GenerationService{
		fs:       fs,
		renderer: renderer,
		observer: domain.NopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers <= 0 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// slot is the outcome of one (entity, mapping) task.
type slot struct {
	files    []domain.GeneratedFile
	skipped  []domain.SkippedFile
	warnings []string
	errors   []string
}

// GenerateCode renders the strategy's templates for every entity. An invalid
// context aborts with a *domain.SchemaValidationError and no result; render
// failures omit the mapping and are reported as warnings, or as errors when
// ValidateCode is set.
func (s *GenerationService) GenerateCode(ctx context.Context, gctx domain.GenerationContext) (*domain.GenerationResult, error) {
	start := time.Now()

	// 1. Validate
	if problems := validateContext(gctx); len(problems) > 0 {
		return nil, &domain.SchemaValidationError{Problems: problems}
	}

	runID := logger.RunID(ctx)
	if runID == "" {
		runID = uuid.NewString()
		ctx = logger.WithRunID(ctx, runID)
	}
	result := &domain.GenerationResult{
		RunID:    runID,
		Files:    []domain.GeneratedFile{},
		Errors:   []string{},
		Warnings: []string{},
	}
	log := logger.From(ctx, s.logger).With("strategy", gctx.Strategy.Name)

	// 2. Preprocess. Schema problems are reported but do not stop the run;
	// relations to entities outside the request are simply not rendered.
	for _, p := range schema.Validate(gctx.Entities, gctx.Relations) {
		log.Warn("schema problem", "problem", p)
		result.Warnings = append(result.Warnings, p)
	}
	gctx.Entities = schema.Preprocess(gctx.Entities, gctx.Relations)

	// 3. Per-entity generation
	mappings := append([]domain.TemplateMapping(nil), gctx.Strategy.Templates...)
	sort.SliceStable(mappings, func(i, j int) bool { return mappings[i].Priority < mappings[j].Priority })

	slots := make([]slot, len(gctx.Entities)*len(mappings))
	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for ei, entity := range gctx.Entities {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return nil, fmt.Errorf("generating code: %w", err)
		}
		for mi, mapping := range mappings {
			out := &slots[ei*len(mappings)+mi]
			g.Go(func() error {
				*out = s.generateMapping(ctx, log, entity, mapping, &gctx)
				return nil
			})
		}
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generating code: %w", err)
	}

	for _, sl := range slots {
		result.Files = append(result.Files, sl.files...)
		result.Skipped = append(result.Skipped, sl.skipped...)
		result.Warnings = append(result.Warnings, sl.warnings...)
		result.Errors = append(result.Errors, sl.errors...)
	}

	// 4. Project-level files
	project, err := projectfiles.Build(&gctx)
	if err != nil {
		log.Warn("project files failed", "error", err)
		result.Warnings = append(result.Warnings, err.Error())
	}
	for _, f := range project {
		f.Content = postprocess.EnsureHeader(f.Content, f.Path)
		result.Files = append(result.Files, f)
	}
	if gctx.Options.GenerateDocs {
		for _, e := range gctx.Entities {
			doc := projectfiles.EntityDoc(e, &gctx)
			doc.Content = postprocess.EnsureHeader(doc.Content, doc.Path)
			result.Files = append(result.Files, doc)
		}
	}

	// 5. Post-process
	sort.SliceStable(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	for i := range result.Files {
		f := &result.Files[i]
		if gctx.Options.OptimizeImports {
			f.Content = postprocess.OptimizeImports(f.Content)
		}
		if gctx.Options.FormatCode {
			f.Content = postprocess.Format(f.Content, f.Path)
		}
		if gctx.Options.ValidateCode {
			for _, verr := range postprocess.ValidateContent(*f) {
				result.Errors = append(result.Errors, verr.Error())
			}
		}
		f.Size = len(f.Content)
		f.Checksum = postprocess.Checksum(f.Content)
		f.Dependencies = postprocess.ExtractDependencies(f.Content, f.Path)
	}

	// 6. Metrics
	result.Metrics = computeMetrics(result.Files, time.Since(start))

	// 7. Result
	result.Success = len(result.Errors) == 0
	for _, f := range result.Files {
		s.observer.FileGenerated(string(f.Type))
	}
	s.observer.RunCompleted(result.Metrics.GenerationTime, result.Success)

	log.Info("generation completed",
		"files", len(result.Files),
		"skipped", len(result.Skipped),
		"warnings", len(result.Warnings),
		"errors", len(result.Errors),
		"duration", result.Metrics.GenerationTime,
	)
	return result, nil
}

func validateContext(gctx domain.GenerationContext) []string {
	var problems []string
	if gctx.Strategy == nil {
		problems = append(problems, "Generation strategy is required")
	}
	if len(gctx.Entities) == 0 {
		problems = append(problems, "At least one entity is required")
	}
	if gctx.Options.OutputDir == "" {
		problems = append(problems, "Output directory is required")
	}
	return problems
}

// generateMapping applies the layer policy and renders one mapping for one
// entity, plus its test companion when requested.
func (s *GenerationService) generateMapping(
	ctx context.Context,
	log *slog.Logger,
	entity domain.Entity,
	mapping domain.TemplateMapping,
	gctx *domain.GenerationContext,
) slot {
	var out slot

	ok, unknown := evalConditions(mapping.Conditions, entity, gctx)
	for _, c := range unknown {
		out.warnings = append(out.warnings, fmt.Sprintf("template %s: unknown condition %q", mapping.TemplateID, c))
	}
	if !ok {
		return out
	}

	filePath := resolver.ResolveOutputPath(mapping.OutputPath, entity, gctx)

	if mapping.Layer == domain.LayerBiz && !gctx.Options.OverwriteBiz {
		protected, warn := s.exists(filePath)
		if warn != "" {
			out.warnings = append(out.warnings, warn)
		}
		if protected {
			out.skipped = append(out.skipped, s.skip(filePath, mapping.TemplateID, entity))
			return out
		}
	}

	content, err := s.renderer.Render(ctx, mapping.TemplateID, entity, gctx)
	if err != nil {
		s.renderFailed(log, &out, &domain.TemplateRenderError{TemplateID: mapping.TemplateID, Entity: entity.Name, Path: filePath, Err: err}, gctx)
		return out
	}

	fileType := domain.FileTypeBiz
	if mapping.Layer != domain.LayerBiz {
		fileType = domain.FileTypeBase
		content = postprocess.EnsureHeader(content, filePath)
	}
	out.files = append(out.files, domain.GeneratedFile{
		Path:       filePath,
		Content:    content,
		Type:       fileType,
		TemplateID: mapping.TemplateID,
	})

	if gctx.Options.GenerateTests {
		s.generateTest(ctx, log, entity, mapping, gctx, &out)
	}
	return out
}

// renderFailed records a failed render. The mapping is always omitted; the
// failure only fails the run when content validation was requested.
func (s *GenerationService) renderFailed(log *slog.Logger, out *slot, rerr *domain.TemplateRenderError, gctx *domain.GenerationContext) {
	log.Warn("render failed", "template", rerr.TemplateID, "entity", rerr.Entity, "error", rerr.Err)
	s.observer.RenderFailed(rerr.TemplateID)
	if gctx.Options.ValidateCode {
		out.errors = append(out.errors, rerr.Error())
		return
	}
	out.warnings = append(out.warnings, rerr.Error())
}

// generateTest renders "<templateID>.test" when the renderer has it. Test
// files belong to the developer after the first run, like biz files.
func (s *GenerationService) generateTest(
	ctx context.Context,
	log *slog.Logger,
	entity domain.Entity,
	mapping domain.TemplateMapping,
	gctx *domain.GenerationContext,
	out *slot,
) {
	testID := mapping.TemplateID + ".test"
	if opt, ok := s.renderer.(domain.OptionalTemplates); !ok || !opt.HasTemplate(testID) {
		return
	}

	filePath := TestPath(mapping, entity, gctx)
	if !gctx.Options.OverwriteBiz {
		protected, warn := s.exists(filePath)
		if warn != "" {
			out.warnings = append(out.warnings, warn)
		}
		if protected {
			out.skipped = append(out.skipped, s.skip(filePath, testID, entity))
			return
		}
	}

	content, err := s.renderer.Render(ctx, testID, entity, gctx)
	if err != nil {
		s.renderFailed(log, out, &domain.TemplateRenderError{TemplateID: testID, Entity: entity.Name, Path: filePath, Err: err}, gctx)
		return
	}
	out.files = append(out.files, domain.GeneratedFile{
		Path:       filePath,
		Content:    content,
		Type:       domain.FileTypeTest,
		TemplateID: testID,
	})
}

// exists reports whether p is present. A failed probe counts as present so
// that a hand-edited file is never overwritten on an I/O error.
func (s *GenerationService) exists(p string) (bool, string) {
	ok, err := s.fs.Exists(p)
	if err != nil {
		return true, fmt.Sprintf("checking %s: %v", p, err)
	}
	return ok, ""
}

func (s *GenerationService) skip(p, templateID string, entity domain.Entity) domain.SkippedFile {
	s.observer.FileSkipped(domain.SkipReasonBizExists)
	return domain.SkippedFile{
		Path:       p,
		TemplateID: templateID,
		Entity:     entity.Name,
		Reason:     domain.SkipReasonBizExists,
	}
}

// TestPath places the test companion of a mapping under the strategy's tests
// directory, mirroring the mapping's sub-directory. A tests directory that
// starts with the first segment of the base directory is taken from the
// output root ("src/test/java" next to "src/main/java"); otherwise it sits
// under the base directory. Without a tests directory the test sits next to
// the file it covers.
func TestPath(mapping domain.TemplateMapping, entity domain.Entity, gctx *domain.GenerationContext) string {
	rel := resolver.ResolveName(mapping.OutputPath, entity)
	dir, base := path.Split(rel)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var name string
	testExt := gctx.Strategy.FileStructure.FileNaming.Extensions["test"]
	switch {
	case strings.HasPrefix(testExt, "_"):
		name = stem + testExt
	case testExt == "java":
		name = stem + "Test.java"
	case testExt != "":
		name = stem + "." + testExt
	default:
		name = stem + ".test" + ext
	}

	testsDir := gctx.Strategy.FileStructure.Directories["tests"]
	if testsDir == "" {
		return resolver.Join(gctx, path.Join(dir, name))
	}
	baseDir := gctx.Strategy.FileStructure.BaseDir
	if first, _, _ := strings.Cut(baseDir, "/"); first != "" && strings.HasPrefix(testsDir, first+"/") {
		return path.Join(gctx.Options.OutputDir, testsDir, dir, name)
	}
	return resolver.Join(gctx, path.Join(testsDir, dir, name))
}

// evalConditions reports whether every condition holds. Unknown conditions
// are false and returned for reporting.
func evalConditions(conds []string, entity domain.Entity, gctx *domain.GenerationContext) (bool, []string) {
	ok := true
	var unknown []string
	for _, c := range conds {
		holds, known := evalCondition(c, entity, gctx)
		if !known {
			unknown = append(unknown, c)
		}
		if !holds {
			ok = false
		}
	}
	return ok, unknown
}

func evalCondition(cond string, entity domain.Entity, gctx *domain.GenerationContext) (holds, known bool) {
	switch cond {
	case "hasRelations":
		return entity.HasRelations(), true
	case "hasFields":
		return len(entity.Fields) > 0, true
	case "option:generateTests":
		return gctx.Options.GenerateTests, true
	case "option:generateDocs":
		return gctx.Options.GenerateDocs, true
	}
	if name, ok := strings.CutPrefix(cond, "feature:"); ok {
		return gctx.Strategy.HasFeature(name), true
	}
	return false, false
}

func computeMetrics(files []domain.GeneratedFile, elapsed time.Duration) domain.GenerationMetrics {
	m := domain.GenerationMetrics{
		TotalFiles:        len(files),
		GenerationTime:    elapsed,
		TemplateUsage:     make(map[string]int),
		LayerDistribution: make(map[string]int),
	}
	for _, f := range files {
		m.TotalLines += postprocess.CountLines(f.Content)
		m.TotalSize += len(f.Content)
		m.LayerDistribution[string(f.Type)]++
		if f.TemplateID != "" {
			m.TemplateUsage[f.TemplateID]++
		}
	}
	return m
}

// IsSchemaError reports whether err aborted a run before rendering.
func IsSchemaError(err error) bool {
	var verr *domain.SchemaValidationError
	return errors.As(err, &verr)
}
