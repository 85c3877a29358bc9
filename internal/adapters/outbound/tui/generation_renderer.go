package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/lowgen/internal/domain"
)

// RenderGenerationResult formats a generation run. written lists the paths
// that reached disk; pass nil for a dry run.
func RenderGenerationResult(result *domain.GenerationResult, written []string, dryRun bool) string {
	var b strings.Builder

	// ── Header box ──
	title := headerStyle.Render("lowgen generate")
	status := passStyle.Render("success")
	if !result.Success {
		status = failStyle.Render("failed")
	}
	mode := ""
	if dryRun {
		mode = "  " + warnStyle.Render("dry run")
	}
	stats := dimStyle.Render(fmt.Sprintf("%d files  ·  %d lines  ·  %d skipped  ·  %s",
		result.Metrics.TotalFiles, result.Metrics.TotalLines, len(result.Skipped),
		result.Metrics.GenerationTime.Round(1e6)))
	b.WriteString(boxStyle.Render(title + "\n\n" + status + mode + "\n" + stats))
	b.WriteString("\n\n")

	// ── Layers ──
	if len(result.Metrics.LayerDistribution) > 0 {
		b.WriteString("  " + titleStyle.Render("Layers") + "\n")
		for _, layer := range sortedKeys(result.Metrics.LayerDistribution) {
			fmt.Fprintf(&b, "    %s %d\n", catNameStyle.Render(padRight(layer, 10)), result.Metrics.LayerDistribution[layer])
		}
		b.WriteString("\n")
	}

	// ── Files ──
	onDisk := make(map[string]bool, len(written))
	for _, p := range written {
		onDisk[p] = true
	}
	if len(result.Files) > 0 {
		b.WriteString("  " + titleStyle.Render("Files") + "\n")
		for _, f := range result.Files {
			icon := dimStyle.Render("○")
			switch {
			case dryRun:
				icon = warnStyle.Render("◌")
			case onDisk[f.Path]:
				icon = passStyle.Render("●")
			}
			fmt.Fprintf(&b, "    %s %s %s\n", icon, fileTypeTag(f.Type), fileStyle.Render(f.Path))
		}
		if !dryRun {
			if kept := len(result.Files) - len(written); kept > 0 {
				b.WriteString(faintStyle.Render(fmt.Sprintf("    (%d existing files left untouched)", kept)) + "\n")
			}
		}
		b.WriteString("\n")
	}

	// ── Skipped ──
	if len(result.Skipped) > 0 {
		b.WriteString("  " + titleStyle.Render("Skipped") + "\n")
		for _, s := range result.Skipped {
			fmt.Fprintf(&b, "    %s %s %s\n", skipStyle.Render("○"), skipStyle.Render(s.Path), faintStyle.Render(s.Reason))
		}
		b.WriteString("\n")
	}

	for _, w := range result.Warnings {
		b.WriteString("  " + warnTagStyle.Render("warn ") + " " + dimStyle.Render(w) + "\n")
	}
	for _, e := range result.Errors {
		b.WriteString("  " + errorTagStyle.Render("error") + " " + dimStyle.Render(e) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

func fileTypeTag(t domain.FileType) string {
	s := padRight(string(t), 6)
	switch t {
	case domain.FileTypeBase:
		return lipgloss.NewStyle().Foreground(accent).Render(s)
	case domain.FileTypeBiz:
		return passStyle.Render(s)
	case domain.FileTypeTest:
		return infoTagStyle.Render(s)
	default:
		return dimStyle.Render(s)
	}
}

// RenderFixResult formats the fixes applied, and the issues left for a human.
func RenderFixResult(result *domain.FixResult, dryRun bool) string {
	var b strings.Builder
	b.WriteString("\n")

	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("%s %d fixes in %d files", verb, len(result.Applied), len(result.Files))) + "\n")
	b.WriteString("  " + separatorLine + "\n")

	for _, fix := range result.Applied {
		loc := shortenPath(fix.Path)
		if fix.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, fix.Line)
		}
		fmt.Fprintf(&b, "    %s %s %s\n", passStyle.Render("✔"), fileStyle.Render(loc), faintStyle.Render(fix.Rule))
		if fix.Description != "" {
			fmt.Fprintf(&b, "      %s\n", dimStyle.Render(fix.Description))
		}
	}

	if len(result.Pending) > 0 {
		pending := append([]domain.QualityCheck(nil), result.Pending...)
		sortBySeverity(pending)
		b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("%d issues need manual attention", len(pending))) + "\n")
		for _, issue := range pending {
			renderIssue(&b, issue)
		}
	}

	b.WriteString("\n")
	return b.String()
}

// RenderOptimizations formats optimization suggestions, highest impact first.
func RenderOptimizations(opts []domain.CodeOptimization) string {
	if len(opts) == 0 {
		return "\n  " + passStyle.Render("No optimizations suggested.") + "\n\n"
	}

	sorted := append([]domain.CodeOptimization(nil), opts...)
	rank := map[string]int{domain.ImpactHigh: 0, domain.ImpactMedium: 1, domain.ImpactLow: 2}
	sort.SliceStable(sorted, func(i, j int) bool { return rank[sorted[i].Impact] < rank[sorted[j].Impact] })

	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render(fmt.Sprintf("%d optimizations", len(sorted))) + "\n")
	b.WriteString("  " + separatorLine + "\n")
	for _, o := range sorted {
		fmt.Fprintf(&b, "    %s %s %s\n", impactTag(o.Impact), fileStyle.Render(shortenPath(o.File)), faintStyle.Render(o.Type))
		fmt.Fprintf(&b, "         %s\n", dimStyle.Render(o.Description))
		if o.Before != "" {
			fmt.Fprintf(&b, "         %s %s\n", failStyle.Render("-"), dimStyle.Render(firstLine(o.Before)))
			fmt.Fprintf(&b, "         %s %s\n", passStyle.Render("+"), dimStyle.Render(firstLine(o.After)))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func impactTag(impact string) string {
	switch impact {
	case domain.ImpactHigh:
		return errorTagStyle.Render("high  ")
	case domain.ImpactMedium:
		return warnTagStyle.Render("medium")
	default:
		return infoTagStyle.Render("low   ")
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
