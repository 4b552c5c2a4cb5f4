package dockerfile

import (
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// Heredoc is an inline document consumed by RUN, COPY or ADD.
//
// Content is newline-terminated per line; for "<<-" (Chomp) leading tabs are
// already stripped.
type Heredoc = parser.Heredoc

// nodeHeredocs returns the heredocs BuildKit attached to node with chomping
// applied.
func nodeHeredocs(node *parser.Node) []Heredoc {
	if len(node.Heredocs) == 0 {
		return nil
	}
	docs := make([]Heredoc, len(node.Heredocs))
	for i, doc := range node.Heredocs {
		if doc.Chomp {
			doc.Content = parser.ChompHeredocContent(doc.Content)
		}
		docs[i] = doc
	}
	return docs
}

// onlyHeredocWords reports whether every word of args is a heredoc marker,
// as in "RUN <<EOF" or "RUN <<one <<two".
func onlyHeredocWords(args string) bool {
	words := strings.Fields(args)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if doc, err := parser.ParseHeredoc(w); err != nil || doc == nil {
			return false
		}
	}
	return true
}

// heredocScript returns the shell text of a RUN with heredocs. A bare
// "RUN <<EOF" runs the bodies; otherwise the bodies are stdin of the named
// program and are kept as shell heredocs after the command line.
func heredocScript(args string, docs []Heredoc) string {
	var b strings.Builder
	if onlyHeredocWords(args) {
		for i, doc := range docs {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(doc.Content)
		}
		return b.String()
	}
	b.WriteString(args)
	for _, doc := range docs {
		b.WriteString("\n")
		b.WriteString(doc.Content)
		b.WriteString(doc.Name)
	}
	return b.String()
}
