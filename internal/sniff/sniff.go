// Package sniff implements lightweight format-validation heuristics for the
// validate_format tool. These checks decide whether content "looks like" a
// given format; they are advisory and deliberately shallow, not a parser or
// compiler for the target language.
package sniff

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
	"github.com/tidwall/gjson"
)

// Result reports the outcome of one format check.
type Result struct {
	Valid   bool   `json:"valid"`
	Format  string `json:"format"`
	Details string `json:"details"`
}

// Supported lists the recognized format types.
var Supported = []string{"json", "markdown", "python", "csharp"}

var markdownIndicators = []string{"#", "*", "-", "[", "]", "`"}

var pythonIndicators = []string{"def ", "import ", "class ", "return", "print(", "lambda "}

var csharpIndicators = []string{"class ", "namespace ", "using ", "public ", "private ", "{", "}", ";"}

// Validate checks content against the named format type.
func Validate(content, formatType string) Result {
	res := Result{Format: formatType}

	switch formatType {
	case "json":
		if gjson.Valid(content) {
			res.Valid = true
			res.Details = "Valid JSON structure"
		} else {
			res.Details = "Invalid JSON"
		}

	case "markdown":
		// Markdown has no invalid documents; plain text is acceptable. Report
		// whether the content carries markdown syntax beyond bare paragraphs.
		hasMarkdown := containsAny(content, markdownIndicators)
		res.Valid = hasMarkdown || strings.TrimSpace(content) != ""
		if hasMarkdown {
			res.Details = fmt.Sprintf("Contains markdown indicators (%d block elements)", countBlocks(content))
		} else {
			res.Details = "Plain text (valid as markdown)"
		}

	case "python":
		if containsAny(content, pythonIndicators) {
			res.Valid = true
			res.Details = "Contains Python code patterns"
		} else {
			res.Details = "No Python patterns detected"
		}

	case "csharp":
		if containsAny(content, csharpIndicators) {
			res.Valid = true
			res.Details = "Contains C# code patterns"
		} else {
			res.Details = "No C# patterns detected"
		}

	default:
		res.Details = fmt.Sprintf("Unknown format type: %s. Supported: %s", formatType, strings.Join(Supported, ", "))
	}

	return res
}

func containsAny(content string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(content, ind) {
			return true
		}
	}
	return false
}

// countBlocks parses the content as markdown and counts top-level block nodes.
func countBlocks(content string) int {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(content))
	n := 0
	for _, c := range doc.GetChildren() {
		if _, ok := c.(*ast.Document); ok {
			continue
		}
		n++
	}
	return n
}
