package quality

import (
	"regexp"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
)

type compiledRule struct {
	rule domain.QualityRule
	re   *regexp.Regexp
}

// Engine holds a compiled rule table. It is safe for concurrent use.
type Engine struct {
	rules []compiledRule
}

// NewEngine compiles the enabled rules. A rule whose pattern does not
// compile is left out and reported as a *domain.RuleEngineError; the
// remaining rules still run.
func NewEngine(rules []domain.QualityRule) (*Engine, []error) {
	e := &Engine{}
	var errs []error
	for _, r := range rules {
		if !r.Enabled || r.Pattern == "" {
			continue
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			errs = append(errs, &domain.RuleEngineError{RuleID: r.ID, Err: err})
			continue
		}
		e.rules = append(e.rules, compiledRule{rule: r, re: re})
	}
	return e, errs
}

// Rules returns the rules the engine evaluates.
func (e *Engine) Rules() []domain.QualityRule {
	out := make([]domain.QualityRule, len(e.rules))
	for i, cr := range e.rules {
		out[i] = cr.rule
	}
	return out
}

// Scan matches every rule that applies to framework against every line of
// file. Each non-overlapping match is one check with a 1-based line and
// column. Checks are ordered by rule, then line, then column.
func (e *Engine) Scan(file domain.SourceFile, framework string) []domain.QualityCheck {
	lines := strings.Split(file.Content, "\n")
	var checks []domain.QualityCheck
	for _, cr := range e.rules {
		if !cr.rule.AppliesTo(framework) {
			continue
		}
		for i, line := range lines {
			for _, loc := range cr.re.FindAllStringIndex(line, -1) {
				checks = append(checks, domain.QualityCheck{
					Rule:       cr.rule.ID,
					Severity:   cr.rule.Severity,
					File:       file.Path,
					Line:       i + 1,
					Column:     loc[0] + 1,
					Message:    cr.rule.Message,
					Suggestion: cr.rule.Suggestion,
					CanAutoFix: cr.rule.AutoFix,
				})
			}
		}
	}
	return checks
}
