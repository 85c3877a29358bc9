package tui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/lowgen/internal/domain"
)

// ── Warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lipgloss.Color("#A3E635"), // lime
		"C":  warning,
		"D":  lipgloss.Color("#FB923C"), // orange
		"F":  danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// issuesShown caps the issue list; the summary line still counts them all.
const issuesShown = 25

// RenderQualityReport formats a quality report for terminal output.
func RenderQualityReport(report *domain.QualityReport) string {
	var b strings.Builder

	// ── Header ──
	score := report.Summary.Score
	grade := Grade(score)
	title := headerStyle.Render("lowgen")
	subtitle := dimStyle.Render("Code Quality")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(fmt.Sprintf("%d / 100", score))
	gradeStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(gradeColor(grade)).
		Render(grade)
	files := dimStyle.Render(fmt.Sprintf("%d files analyzed", report.Summary.TotalFiles))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled + "\n" + files))
	b.WriteString("\n\n")

	// ── Metrics ──
	renderMetrics(&b, report.Metrics)

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Issues ──
	issues := append([]domain.QualityCheck(nil), report.Issues...)
	sortBySeverity(issues)
	if len(issues) > 0 {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render("Issues"))
		b.WriteString("  ")
		if n := report.Summary.ErrorCount; n > 0 {
			b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", n)))
			b.WriteString("  ")
		}
		if n := report.Summary.WarningCount; n > 0 {
			b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", n)))
			b.WriteString("  ")
		}
		if n := report.Summary.InfoCount; n > 0 {
			b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", n)))
		}
		b.WriteString("\n\n")

		shown := min(len(issues), issuesShown)
		for _, issue := range issues[:shown] {
			renderIssue(&b, issue)
		}
		if rest := len(issues) - shown; rest > 0 {
			b.WriteString(faintStyle.Render(fmt.Sprintf("    (%d more issues)", rest)) + "\n")
		}
	} else {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
	}

	// ── Suggestions ──
	if len(report.Suggestions) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Suggestions") + "\n")
		for _, s := range report.Suggestions {
			b.WriteString("    " + warnStyle.Render("→") + " " + dimStyle.Render(s) + "\n")
		}
	}
	for _, e := range report.Errors {
		b.WriteString("  " + errorTagStyle.Render("error") + " " + dimStyle.Render(e) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func renderMetrics(b *strings.Builder, m domain.QualityMetrics) {
	maint := int(m.Maintainability.Index + 0.5)
	renderMetricBar(b, "Maintainability", maint, fmt.Sprintf("%d", maint))

	// Complexity reads better inverted: an average of 1 is full marks.
	cx := max(0, 100-int((m.Complexity.Average-1)*10))
	renderMetricBar(b, "Complexity", cx, fmt.Sprintf("avg %.1f  max %d", m.Complexity.Average, m.Complexity.Max))

	dup := max(0, 100-int(m.Duplication.Percentage+0.5))
	renderMetricBar(b, "Duplication", dup, fmt.Sprintf("%.1f%%", m.Duplication.Percentage))

	cov := int(m.TestCoverage.Percentage + 0.5)
	renderMetricBar(b, "Test coverage", cov, fmt.Sprintf("%.0f%%", m.TestCoverage.Percentage))

	deps := fmt.Sprintf("%d imports", m.Dependencies.Count)
	if n := len(m.Dependencies.Circular); n > 0 {
		deps += "  " + failStyle.Render(fmt.Sprintf("%d circular", n))
	}
	fmt.Fprintf(b, "  %s %s\n", catNameStyle.Render(padRight("Dependencies", 20)), dimStyle.Render(deps))
}

func renderMetricBar(b *strings.Builder, name string, score int, detail string) {
	score = max(0, min(score, 100))
	name = catNameStyle.Render(padRight(name, 20))
	fmt.Fprintf(b, "  %s %s  %s\n", name, coloredBar(score, 20), dimStyle.Render(detail))
}

func renderIssue(b *strings.Builder, issue domain.QualityCheck) {
	tag := severityTag(issue.Severity)
	loc := shortenPath(issue.File)
	if issue.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", loc, issue.Line, issue.Column)
	}

	fmt.Fprintf(b, "    %s %s %s\n", tag, fileStyle.Render(loc), faintStyle.Render(issue.Rule))
	fmt.Fprintf(b, "         %s\n", dimStyle.Render(issue.Message))
	if issue.Suggestion != "" {
		fmt.Fprintf(b, "         %s\n", faintStyle.Render("→ "+issue.Suggestion))
	}
}

func severityTag(severity string) string {
	switch severity {
	case domain.SeverityError:
		return errorTagStyle.Render("error")
	case domain.SeverityWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

func sortBySeverity(issues []domain.QualityCheck) {
	order := map[string]int{
		domain.SeverityError:   0,
		domain.SeverityWarning: 1,
		domain.SeverityInfo:    2,
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return order[issues[i].Severity] < order[issues[j].Severity]
	})
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

// Grade maps a 0-100 quality score to a letter grade.
func Grade(score int) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}

func shortenPath(path string) string {
	path = filepath.ToSlash(path)
	if idx := strings.Index(path, "src/"); idx >= 0 {
		return path[idx:]
	}
	if idx := strings.Index(path, "internal/"); idx >= 0 {
		return path[idx:]
	}
	parts := strings.Split(path, "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncateOrPad(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + "…"
	}
	return padRight(s, width)
}

// RenderHistory formats the generation run ledger, oldest first.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No generation history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Generation History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 60)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		status := passStyle.Render("ok  ")
		if !e.Success {
			status = failStyle.Render("fail")
		}

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			faintStyle.Render(hash),
			status,
			padRight(e.Strategy, 22),
			dimStyle.Render(fmt.Sprintf("%d files, %d skipped", e.FileCount, e.Skipped)),
		)

		if i > 0 {
			diff := e.FileCount - entries[i-1].FileCount
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
