package postprocess

import (
	"path"
	"strings"
)

// GeneratedMarker is the text every base-layer file carries in a leading comment.
const GeneratedMarker = "Code generated by lowgen. DO NOT EDIT."

// HasHeader reports whether content already carries the generated marker
// within its first few lines.
func HasHeader(content string) bool {
	lines := strings.SplitN(content, "\n", 6)
	for _, l := range lines {
		if strings.Contains(l, GeneratedMarker) {
			return true
		}
	}
	return false
}

// EnsureHeader prefixes content with the generated marker in the comment
// syntax of the file's language. Formats without comments (JSON) are
// returned unchanged.
func EnsureHeader(content, filePath string) string {
	if HasHeader(content) {
		return content
	}
	comment := headerComment(filePath)
	if comment == "" {
		return content
	}
	if strings.HasPrefix(content, "<?xml") {
		decl, rest, _ := strings.Cut(content, "\n")
		return decl + "\n" + comment + "\n" + rest
	}
	return comment + "\n\n" + content
}

func headerComment(filePath string) string {
	switch path.Ext(filePath) {
	case ".go", ".ts", ".tsx", ".js", ".jsx", ".java", ".kt", ".scala":
		return "// " + GeneratedMarker
	case ".yml", ".yaml", ".properties", ".py", ".sh", ".toml":
		return "# " + GeneratedMarker
	case ".xml", ".html", ".md":
		return "<!-- " + GeneratedMarker + " -->"
	case ".sql":
		return "-- " + GeneratedMarker
	default:
		return ""
	}
}
