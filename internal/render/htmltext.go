// Package render flattens listing descriptions, which may carry HTML
// fragments from the web form, into wrapped plain text for the terminal.
package render

import (
	"strings"

	nethtml "golang.org/x/net/html"
)

// Text strips markup from an HTML fragment and collapses whitespace. Plain
// input passes through unchanged apart from whitespace normalization.
func Text(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return collapse(raw)
	}
	var b strings.Builder
	flatten(doc, &b)
	return collapse(b.String())
}

// Lines is Text wrapped to width, one paragraph per blank-line break.
func Lines(raw string, width int) []string {
	text := Text(raw)
	if text == "" {
		return nil
	}
	return wrapText(text, width)
}

func flatten(n *nethtml.Node, b *strings.Builder) {
	if n.Type == nethtml.ElementNode {
		switch n.Data {
		case "script", "style":
			return
		case "br":
			b.WriteString("\n")
		case "p", "div", "li", "h1", "h2", "h3", "h4", "tr":
			b.WriteString("\n")
		}
	}
	if n.Type == nethtml.TextNode {
		b.WriteString(n.Data)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		flatten(child, b)
	}
	if n.Type == nethtml.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "tr":
			b.WriteString("\n")
		}
	}
}

func collapse(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			if len(out) > 0 {
				out = append(out, "")
			}
			continue
		}
		out = append(out, trimmed)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, word[:width])
				word = word[width:]
			}

			if line == "" {
				line = word
				continue
			}
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}
