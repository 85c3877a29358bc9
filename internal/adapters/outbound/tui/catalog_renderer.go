package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openkraft/lowgen/internal/domain"
)

const catalogMaxRows = 15

// RenderStrategies lists registered strategies as a table.
func RenderStrategies(strategies []domain.GenerationStrategy) string {
	if len(strategies) == 0 {
		return "\n  " + dimStyle.Render("No strategies registered.") + "\n\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	hdr := fmt.Sprintf("  %-24s %-12s %9s  %s", "Strategy", "Framework", "Templates", "Layers")
	b.WriteString(titleStyle.Render(hdr) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 64)) + "\n")

	for _, st := range strategies {
		layers := make([]string, len(st.Layers))
		for i, l := range st.Layers {
			layers[i] = string(l)
		}
		fmt.Fprintf(&b, "  %s %s %9d  %s\n",
			catNameStyle.Render(truncateOrPad(st.Name, 24)),
			dimStyle.Render(truncateOrPad(st.Framework, 12)),
			len(st.Templates),
			dimStyle.Render(strings.Join(layers, ", ")))
		if st.Description != "" {
			b.WriteString("    " + faintStyle.Render(st.Description) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderStrategy shows one strategy with its template mappings.
func RenderStrategy(st *domain.GenerationStrategy) string {
	var b strings.Builder
	title := headerStyle.Render(st.Name)
	sub := dimStyle.Render(st.Framework)
	if st.Description != "" {
		sub += "\n" + dimStyle.Render(st.Description)
	}
	b.WriteString(boxStyle.Render(title + "\n" + sub))
	b.WriteString("\n\n")

	if len(st.Features) > 0 {
		b.WriteString("  " + titleStyle.Render("Features") + "  " + dimStyle.Render(strings.Join(st.Features, ", ")) + "\n\n")
	}

	b.WriteString("  " + titleStyle.Render("Templates") + "\n")
	for _, m := range st.Templates {
		cond := ""
		if len(m.Conditions) > 0 {
			cond = "  " + faintStyle.Render("if "+strings.Join(m.Conditions, " && "))
		}
		fmt.Fprintf(&b, "    %s %s %s%s\n",
			fileTypeTag(domain.FileType(m.Layer)),
			catNameStyle.Render(truncateOrPad(m.TemplateID, 24)),
			fileStyle.Render(m.OutputPath),
			cond)
	}

	if len(st.Dependencies) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Dependencies") + "\n")
		for _, d := range st.Dependencies {
			fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(truncateOrPad(d.Name, 32)), faintStyle.Render(d.Version))
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderRules lists quality rules, disabled ones dimmed.
func RenderRules(rules []domain.QualityRule) string {
	if len(rules) == 0 {
		return "\n  " + dimStyle.Render("No rules configured.") + "\n\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	hdr := fmt.Sprintf("  %-28s %-16s %-8s %s", "Rule", "Category", "Severity", "Frameworks")
	b.WriteString(titleStyle.Render(hdr) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 68)) + "\n")

	for _, r := range rules {
		name := truncateOrPad(r.ID, 28)
		if r.AutoFix {
			name = truncateOrPad(r.ID+" *", 28)
		}
		fw := strings.Join(r.Frameworks, ",")
		if !r.Enabled {
			fmt.Fprintf(&b, "  %s %s %s %s\n",
				skipStyle.Render(name), skipStyle.Render(padRight(r.Category, 16)),
				skipStyle.Render("off     "), skipStyle.Render(fw))
			continue
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			catNameStyle.Render(name), dimStyle.Render(padRight(r.Category, 16)),
			severityTag(r.Severity)+"   ", dimStyle.Render(fw))
	}
	b.WriteString("\n  " + faintStyle.Render("* auto-fixable") + "\n\n")
	return b.String()
}

// RenderDependencies shows the import counts per file, then circular chains
// and unused imports.
func RenderDependencies(deps domain.DependencyMetrics) string {
	var b strings.Builder

	circular := passStyle.Render("0 circular")
	if n := len(deps.Circular); n > 0 {
		circular = failStyle.Render(fmt.Sprintf("%d circular", n))
	}
	stats := dimStyle.Render(fmt.Sprintf("%d files  ·  %d imports  ·  ", len(deps.PerFile), deps.Count)) + circular
	b.WriteString(boxStyle.Render(headerStyle.Render("Dependencies") + "\n\n" + stats))
	b.WriteString("\n\n")

	type row struct {
		file string
		n    int
	}
	rows := make([]row, 0, len(deps.PerFile))
	for f, imports := range deps.PerFile {
		rows = append(rows, row{file: f, n: len(imports)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].file < rows[j].file
	})

	shown := min(len(rows), catalogMaxRows)
	for _, r := range rows[:shown] {
		fmt.Fprintf(&b, "  %s %3d\n", dimStyle.Render(truncateOrPad(shortenPath(r.file), 48)), r.n)
	}
	if rest := len(rows) - shown; rest > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  (%d more files)", rest)) + "\n")
	}

	b.WriteString("\n  " + titleStyle.Render("Cycles") + "\n")
	if len(deps.Circular) == 0 {
		b.WriteString("    " + passStyle.Render("(none)") + "\n")
	}
	for _, c := range deps.Circular {
		b.WriteString("    " + failStyle.Render(c) + "\n")
	}

	if len(deps.Unused) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Unused imports") + "\n")
		for _, u := range deps.Unused {
			b.WriteString("    " + warnStyle.Render(u) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
