package domain

// AppliedFix records one auto-fix applied to a file.
type AppliedFix struct {
	Rule        string `json:"rule"`
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Description string `json:"description"`
}

// FixResult is the outcome of applying auto-fixes to a set of files.
type FixResult struct {
	Files   []SourceFile   `json:"files"`
	Applied []AppliedFix   `json:"applied"`
	Pending []QualityCheck `json:"pending"`
}

type FixOptions struct {
	DryRun bool   `json:"dry_run"`
	Rule   string `json:"rule,omitempty"`
}
