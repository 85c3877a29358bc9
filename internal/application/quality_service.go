package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/postprocess"
	"github.com/openkraft/lowgen/internal/domain/quality"
)

// QualityService owns the rule registry and runs quality analysis:
// compile rules → scan files → metrics → summary → suggestions.
type QualityService struct {
	scanner      domain.SourceScanner
	configLoader domain.ConfigLoader
	cache        domain.ReportCache
	fs           domain.FileSystem
	detector     domain.FrameworkDetector
	logger       *slog.Logger

	mu     sync.RWMutex
	rules  []domain.QualityRule
	limits quality.Limits
}

// NewQualityService creates a service seeded with the default rule table.
// scanner, configLoader, cache and fs are only needed by the project-level
// operations and may be nil when only in-memory analysis is used.
func NewQualityService(
	scanner domain.SourceScanner,
	configLoader domain.ConfigLoader,
	cache domain.ReportCache,
	fs domain.FileSystem,
	logger *slog.Logger,
) *QualityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &QualityService{
		scanner:      scanner,
		configLoader: configLoader,
		cache:        cache,
		fs:           fs,
		logger:       logger,
		rules:        quality.DefaultRules(),
		limits:       quality.DefaultLimits(),
	}
}

// SetDetector makes project-level operations detect the framework when
// neither the caller nor the config names one.
func (s *QualityService) SetDetector(d domain.FrameworkDetector) {
	s.detector = d
}

// SetLimits replaces the duplication scan limits.
func (s *QualityService) SetLimits(l quality.Limits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limits = l
}

// Rules returns the registered rules, filtered to framework when it is not
// empty.
func (s *QualityService) Rules(framework string) []domain.QualityRule {
	return filterRules(s.snapshot().rules, framework)
}

// RulesFor returns the rules a project with cfg is analyzed with, filtered
// to framework when it is not empty. The registry is not modified.
func (s *QualityService) RulesFor(cfg domain.ProjectConfig, framework string) []domain.QualityRule {
	return filterRules(s.withConfig(cfg).rules, framework)
}

// AddRule registers a rule, replacing any rule with the same ID.
func (s *QualityService) AddRule(r domain.QualityRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = upsertRule(s.rules, r)
}

// RemoveRule unregisters a rule.
func (s *QualityService) RemoveRule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrRuleNotFound, id)
}

// SetRuleEnabled switches a rule on or off.
func (s *QualityService) SetRuleEnabled(id string, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules[i].Enabled = enabled
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrRuleNotFound, id)
}

// ruleSet is the rule table and scan limits a single analysis runs with.
type ruleSet struct {
	rules  []domain.QualityRule
	limits quality.Limits
}

func (s *QualityService) snapshot() ruleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ruleSet{
		rules:  append([]domain.QualityRule(nil), s.rules...),
		limits: s.limits,
	}
}

// withConfig overlays a project's analysis settings on a snapshot of the
// registry: extra rules are added, disabled rules switched off and the
// duplication limits replaced. Projects never see each other's settings.
func (s *QualityService) withConfig(cfg domain.ProjectConfig) ruleSet {
	rs := s.snapshot()
	for _, r := range cfg.Analysis.Rules {
		rs.rules = upsertRule(rs.rules, r)
	}
	for _, id := range cfg.Analysis.DisabledRules {
		found := false
		for i := range rs.rules {
			if rs.rules[i].ID == id {
				rs.rules[i].Enabled = false
				found = true
			}
		}
		if !found {
			s.logger.Warn("disabled rule not registered", "rule", id)
		}
	}
	if cfg.Analysis.MaxDuplicationFiles > 0 {
		rs.limits.MaxFiles = cfg.Analysis.MaxDuplicationFiles
	}
	if cfg.Analysis.MaxPairComparisons > 0 {
		rs.limits.MaxPairs = cfg.Analysis.MaxPairComparisons
	}
	if cfg.Workers > 0 {
		rs.limits.Workers = cfg.Workers
	}
	return rs
}

func upsertRule(rules []domain.QualityRule, r domain.QualityRule) []domain.QualityRule {
	for i := range rules {
		if rules[i].ID == r.ID {
			rules[i] = r
			return rules
		}
	}
	return append(rules, r)
}

func filterRules(rules []domain.QualityRule, framework string) []domain.QualityRule {
	out := make([]domain.QualityRule, 0, len(rules))
	for _, r := range rules {
		if framework == "" || r.AppliesTo(framework) {
			out = append(out, r)
		}
	}
	return out
}

// AnalyzeCode runs every enabled rule for framework over files and computes
// the report metrics. A rule whose pattern does not compile is skipped and
// reported in report.Errors.
func (s *QualityService) AnalyzeCode(ctx context.Context, files []domain.SourceFile, framework string) (*domain.QualityReport, error) {
	return s.analyze(ctx, files, framework, s.snapshot())
}

func (s *QualityService) analyze(ctx context.Context, files []domain.SourceFile, framework string, rs ruleSet) (*domain.QualityReport, error) {
	rules, limits := rs.rules, rs.limits
	report := &domain.QualityReport{
		Issues:      []domain.QualityCheck{},
		Suggestions: []string{},
	}

	// 1. Compile rules
	engine, errs := quality.NewEngine(rules)
	for _, err := range errs {
		s.logger.Warn("rule skipped", "error", err)
		report.Errors = append(report.Errors, err.Error())
	}

	// 2. Scan files in parallel, merged in file order
	perFile := make([][]domain.QualityCheck, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(limits.Workers))
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perFile[i] = engine.Scan(f, framework)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scanning files: %w", err)
	}
	for _, checks := range perFile {
		report.Issues = append(report.Issues, checks...)
	}

	// 3. Metrics
	dup, warnings, err := quality.DetectDuplication(ctx, files, limits)
	if err != nil {
		return nil, err
	}
	report.Warnings = append(report.Warnings, warnings...)
	report.Metrics = domain.QualityMetrics{
		Complexity:      quality.ComputeComplexity(files),
		Maintainability: quality.Maintainability(files),
		TestCoverage:    quality.TestCoverage(files),
		Duplication:     dup,
		Dependencies:    quality.AnalyzeDependencies(files),
	}

	// 4. Summary and suggestions
	report.Summary = quality.Summarize(report.Issues, len(files))
	report.Suggestions = quality.Suggestions(report.Summary, report.Metrics)
	return report, nil
}

// AnalyzeProject scans projectPath and analyzes it, reusing the cached report
// when neither the files, the framework nor the rules changed.
func (s *QualityService) AnalyzeProject(ctx context.Context, projectPath, framework string) (*domain.QualityReport, error) {
	files, framework, rs, err := s.loadProject(projectPath, framework)
	if err != nil {
		return nil, err
	}

	fingerprint := fingerprint(files, framework, rs)
	if s.cache != nil {
		if cached, err := s.cache.Load(projectPath); err == nil && cached != nil &&
			cached.Fingerprint == fingerprint && cached.Framework == framework {
			s.logger.Debug("using cached report", "path", projectPath)
			return &cached.Report, nil
		}
	}

	report, err := s.analyze(ctx, files, framework, rs)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		entry := &domain.CachedReport{
			Fingerprint: fingerprint,
			Framework:   framework,
			CreatedAt:   time.Now().UTC(),
			Report:      *report,
		}
		if err := s.cache.Save(projectPath, entry); err != nil {
			s.logger.Warn("caching report failed", "error", err)
		}
	}
	return report, nil
}

// OptimizeCode proposes optimizations for every file, in file order.
func (s *QualityService) OptimizeCode(files []domain.SourceFile, framework string) []domain.CodeOptimization {
	out := []domain.CodeOptimization{}
	for _, f := range files {
		out = append(out, quality.OptimizeFile(f, framework)...)
	}
	return out
}

// OptimizeProject scans projectPath and proposes optimizations.
func (s *QualityService) OptimizeProject(projectPath, framework string) ([]domain.CodeOptimization, error) {
	files, framework, _, err := s.loadProject(projectPath, framework)
	if err != nil {
		return nil, err
	}
	return s.OptimizeCode(files, framework), nil
}

// ApplyAutoFixes applies the auto-fixable issues and returns new file values.
func (s *QualityService) ApplyAutoFixes(files []domain.SourceFile, issues []domain.QualityCheck) ([]domain.SourceFile, []domain.AppliedFix) {
	return quality.ApplyFixes(files, issues)
}

// FixProject analyzes projectPath, applies every auto-fix (or only those of
// opts.Rule) and writes the changed files unless opts.DryRun is set.
func (s *QualityService) FixProject(ctx context.Context, projectPath, framework string, opts domain.FixOptions) (*domain.FixResult, error) {
	// 1. Analyze
	files, framework, rs, err := s.loadProject(projectPath, framework)
	if err != nil {
		return nil, err
	}
	report, err := s.analyze(ctx, files, framework, rs)
	if err != nil {
		return nil, err
	}

	// 2. Split fixable from pending
	var fixable []domain.QualityCheck
	result := &domain.FixResult{Applied: []domain.AppliedFix{}, Pending: []domain.QualityCheck{}}
	for _, is := range report.Issues {
		if opts.Rule != "" && is.Rule != opts.Rule {
			continue
		}
		if is.CanAutoFix && quality.CanFix(is.Rule) {
			fixable = append(fixable, is)
		} else {
			result.Pending = append(result.Pending, is)
		}
	}

	// 3. Apply
	fixed, applied := quality.ApplyFixes(files, fixable)
	result.Applied = append(result.Applied, applied...)
	for i, f := range fixed {
		if f.Content != files[i].Content {
			result.Files = append(result.Files, f)
		}
	}

	// 4. Write changed files
	if !opts.DryRun && len(result.Files) > 0 {
		if s.fs == nil {
			return nil, fmt.Errorf("fixing %s: no file system configured", projectPath)
		}
		for _, f := range result.Files {
			if err := s.fs.Write(filepath.Join(projectPath, filepath.FromSlash(f.Path)), f.Content); err != nil {
				return nil, fmt.Errorf("writing %s: %w", f.Path, err)
			}
		}
		if s.cache != nil {
			if err := s.cache.Invalidate(projectPath); err != nil {
				s.logger.Warn("invalidating report cache failed", "error", err)
			}
		}
	}
	return result, nil
}

// loadProject reads the project config and scans the sources. It returns
// the rule set the project is analyzed with. An empty framework falls back
// to the configured one, then to detection.
func (s *QualityService) loadProject(projectPath, framework string) ([]domain.SourceFile, string, ruleSet, error) {
	if s.scanner == nil {
		return nil, "", ruleSet{}, fmt.Errorf("analyzing %s: no scanner configured", projectPath)
	}

	cfg := domain.DefaultConfig()
	if s.configLoader != nil {
		loaded, err := s.configLoader.Load(projectPath)
		if err != nil {
			return nil, "", ruleSet{}, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	rs := s.withConfig(cfg)
	if framework == "" {
		framework = cfg.Framework
	}
	if framework == "" && s.detector != nil {
		framework = s.detector.Detect(projectPath)
		s.logger.Debug("detected framework", "path", projectPath, "framework", framework)
	}

	files, err := s.scanner.Scan(projectPath, cfg.Analysis.ExcludePaths...)
	if err != nil {
		return nil, "", ruleSet{}, fmt.Errorf("scanning project: %w", err)
	}
	return files, framework, rs, nil
}

// fingerprint hashes file contents together with the framework, every
// enabled rule in full and the scan limits.
func fingerprint(files []domain.SourceFile, framework string, rs ruleSet) string {
	parts := make([]string, 0, len(files)+1)
	for _, f := range files {
		parts = append(parts, f.Path+"="+postprocess.Checksum(f.Content))
	}
	sort.Strings(parts)

	var rules []string
	for _, r := range filterRules(rs.rules, framework) {
		if !r.Enabled {
			continue
		}
		doc, err := json.Marshal(r)
		if err != nil {
			doc = []byte(r.ID)
		}
		rules = append(rules, string(doc))
	}
	sort.Strings(rules)
	limits := fmt.Sprintf("files=%d pairs=%d", rs.limits.MaxFiles, rs.limits.MaxPairs)

	return postprocess.Checksum(framework + "\n" + strings.Join(parts, "\n") + "\n" + strings.Join(rules, "\n") + "\n" + limits)
}

func workerCount(n int) int {
	if n <= 0 {
		return quality.DefaultLimits().Workers
	}
	return n
}
