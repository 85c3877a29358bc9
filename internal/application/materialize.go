package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openkraft/lowgen/internal/domain"
)

// MaterializeResult lists what a write pass did.
type MaterializeResult struct {
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
}

// Materializer writes generated files, enforcing the layer policy a second
// time against the file system as it is at write time.
type Materializer struct {
	fs      domain.FileSystem
	history domain.RunHistory
	git     domain.GitInfo
	logger  *slog.Logger
}

// NewMaterializer creates a Materializer. history and git may be nil, in
// which case runs are not recorded.
func NewMaterializer(fs domain.FileSystem, history domain.RunHistory, git domain.GitInfo, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{fs: fs, history: history, git: git, logger: logger}
}

// Write writes every file the options allow. Base, config and doc files are
// written when OverwriteBase is set or the path is new; biz and test files
// only when the path is new or OverwriteBiz is set. Writes are not atomic: a
// failure leaves earlier files in place.
func (m *Materializer) Write(ctx context.Context, result *domain.GenerationResult, opts domain.GenerationOptions) (*MaterializeResult, error) {
	out := &MaterializeResult{Written: []string{}, Skipped: []string{}}
	for _, f := range result.Files {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("writing files: %w", err)
		}

		overwrite := opts.OverwriteBase
		if f.Type == domain.FileTypeBiz || f.Type == domain.FileTypeTest {
			overwrite = opts.OverwriteBiz
		}
		if !overwrite {
			exists, err := m.fs.Exists(f.Path)
			if err != nil {
				return out, fmt.Errorf("checking %s: %w", f.Path, err)
			}
			if exists {
				out.Skipped = append(out.Skipped, f.Path)
				continue
			}
		}

		if err := m.fs.Write(f.Path, f.Content); err != nil {
			return out, fmt.Errorf("writing %s: %w", f.Path, err)
		}
		out.Written = append(out.Written, f.Path)
	}

	m.logger.Info("files written", "written", len(out.Written), "skipped", len(out.Skipped))
	return out, nil
}

// Record appends the run to the history ledger kept in outputDir, stamped
// with the current commit when outputDir is inside a git repository.
func (m *Materializer) Record(outputDir, strategyName string, result *domain.GenerationResult) error {
	if m.history == nil {
		return nil
	}
	entry := domain.RunEntry{
		RunID:     result.RunID,
		Timestamp: time.Now().UTC(),
		Strategy:  strategyName,
		Success:   result.Success,
		FileCount: len(result.Files),
		Skipped:   len(result.Skipped),
		Checksums: make(map[string]string, len(result.Files)),
	}
	for _, f := range result.Files {
		entry.Checksums[f.Path] = f.Checksum
	}
	if m.git != nil && m.git.IsGitRepo(outputDir) {
		if hash, err := m.git.CommitHash(outputDir); err == nil {
			entry.CommitHash = hash
		} else {
			m.logger.Debug("commit hash unavailable", "error", err)
		}
	}
	if err := m.history.Save(outputDir, entry); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}
