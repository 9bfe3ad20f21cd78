package docgen

import "strings"

// ElementKind labels one line of semi-structured model output.
type ElementKind int

const (
	KindHeading2 ElementKind = iota
	KindHeading3
	KindBold
	KindBullet
	KindNumbered
	KindParagraph
)

// Element is one classified line, with its marker stripped.
type Element struct {
	Kind ElementKind
	Text string
}

// Classify splits text into lines and labels each one. The classifier is
// deliberately tolerant: anything that doesn't match a marker is a plain
// paragraph, and blank lines are skipped. Model output drifts, so unknown
// shapes must degrade to paragraphs rather than fail.
func Classify(text string) []Element {
	var elements []Element

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "### "):
			elements = append(elements, Element{Kind: KindHeading3, Text: strings.TrimSpace(line[4:])})
		case strings.HasPrefix(line, "## "):
			elements = append(elements, Element{Kind: KindHeading2, Text: strings.TrimSpace(line[3:])})
		case isBoldLine(line):
			elements = append(elements, Element{Kind: KindBold, Text: strings.TrimSpace(line[2 : len(line)-2])})
		case strings.HasPrefix(line, "- "):
			elements = append(elements, Element{Kind: KindBullet, Text: strings.TrimSpace(line[2:])})
		case strings.HasPrefix(line, "* "):
			elements = append(elements, Element{Kind: KindBullet, Text: strings.TrimSpace(line[2:])})
		case isNumberedLine(line):
			elements = append(elements, Element{Kind: KindNumbered, Text: line})
		default:
			elements = append(elements, Element{Kind: KindParagraph, Text: line})
		}
	}

	return elements
}

// isBoldLine reports whether the whole line is a single **bold** span.
func isBoldLine(line string) bool {
	return len(line) > 4 &&
		strings.HasPrefix(line, "**") &&
		strings.HasSuffix(line, "**") &&
		!strings.Contains(line[2:len(line)-2], "**")
}

// isNumberedLine reports whether the line starts with digits followed by a
// dot, e.g. "1. First item".
func isNumberedLine(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && line[i] == '.'
}
