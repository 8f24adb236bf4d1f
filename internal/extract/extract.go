// Package extract pulls plain-text lyrics out of a lyrics page.
//
// Lyrics never fails: when nothing can be found it returns [NotFound], and when
// the document cannot be processed it returns [ParseError].
package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

const (
	NotFound   = "Lyrics not found"
	ParseError = "Error parsing lyrics"
)

// Lyrics extracts lyrics from an HTML document.
//
// Every element marked data-lyrics-container="true" contributes its trimmed text, joined by a blank line.
// Without one, the first element with class "lyrics" is used. A <br> becomes a newline.
func Lyrics(doc string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ParseError
		}
	}()

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ParseError
	}
	return fromNode(root)
}

func fromNode(root *html.Node) string {
	containers := findAll(root, isLyricsContainer)
	if len(containers) > 0 {
		parts := make([]string, len(containers))
		for i, n := range containers {
			parts[i] = strings.TrimSpace(textOf(n))
		}
		return strings.Join(parts, "\n\n")
	}

	if legacy := findAll(root, hasClass("lyrics")); len(legacy) > 0 {
		return strings.TrimSpace(textOf(legacy[0]))
	}
	return NotFound
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func isLyricsContainer(n *html.Node) bool {
	v, ok := attr(n, "data-lyrics-container")
	return ok && v == "true"
}

func hasClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attr(n, "class")
		if !ok {
			return false
		}
		for _, c := range strings.Fields(v) {
			if c == class {
				return true
			}
		}
		return false
	}
}

// findAll returns the outermost elements matching match, in document order.
// Matches nested inside a match are not returned separately.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// textOf concatenates the text below n, rendering <br> as a newline and skipping
// scripts, styles and elements excluded from selection.
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.Data {
			case "br":
				b.WriteByte('\n')
				return
			case "script", "style":
				return
			}
			if v, ok := attr(n, "data-exclude-from-selection"); ok && v == "true" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Describe summarizes an extraction result for logs.
func Describe(text string) string {
	switch text {
	case NotFound, ParseError:
		return text
	}
	return fmt.Sprintf("%d lines", strings.Count(text, "\n")+1)
}

// Found reports whether text is real lyrics rather than a sentinel
func Found(text string) bool {
	return text != NotFound && text != ParseError
}
