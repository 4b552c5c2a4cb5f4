package dockerfile

import (
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
	"github.com/moby/buildkit/frontend/dockerfile/shell"
)

// flagSet holds the "--name=value" flags BuildKit split off an instruction.
// Repeated flags (RUN --mount) keep every value.
type flagSet map[string][]string

func parseFlags(raw []string) flagSet {
	flags := flagSet{}
	for _, f := range raw {
		name, value, _ := strings.Cut(strings.TrimPrefix(f, "--"), "=")
		if name == "" {
			continue
		}
		name = strings.ToLower(name)
		flags[name] = append(flags[name], value)
	}
	return flags
}

func (f flagSet) get(name string) string {
	v := f[name]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

func (f flagSet) has(name string) bool {
	_, ok := f[name]
	return ok
}

// values collects the argument chain of node.
func values(node *parser.Node) []string {
	var out []string
	for n := node.Next; n != nil; n = n.Next {
		out = append(out, n.Value)
	}
	return out
}

// restOf returns the logical line after the keyword, flags included.
func restOf(node *parser.Node) string {
	original := strings.TrimSpace(node.Original)
	if len(original) < len(node.Value) {
		return ""
	}
	return strings.TrimSpace(original[len(node.Value):])
}

func isJSON(node *parser.Node) bool {
	return node.Attributes["json"]
}

// arguments maps a parseMaybeJSON chain onto Arguments.
func arguments(node *parser.Node) Arguments {
	if isJSON(node) {
		return Arguments{Exec: true, Values: values(node)}
	}
	if node.Next == nil {
		return Arguments{}
	}
	return Arguments{Text: node.Next.Value}
}

// keyValues maps the key/value/separator triples BuildKit builds for ENV and
// LABEL. Quotes are removed the way the builder removes them; variables are
// kept as written.
func keyValues(node *parser.Node, escape rune) []KeyValue {
	var pairs []KeyValue
	for n := node.Next; n != nil; {
		kv := KeyValue{Key: unquote(n.Value, escape)}
		v := n.Next
		if v == nil {
			pairs = append(pairs, kv)
			break
		}
		kv.Value = unquote(v.Value, escape)
		pairs = append(pairs, kv)
		n = v.Next
		if n != nil {
			// separator node
			n = n.Next
		}
	}
	return pairs
}

func unquote(word string, escape rune) string {
	if !strings.ContainsAny(word, `"'`+string(escape)) {
		return word
	}
	lex := shell.NewLex(escape)
	lex.SkipUnsetEnv = true
	out, _, err := lex.ProcessWord(word, shell.EnvsFromSlice(nil))
	if err != nil {
		return word
	}
	return out
}

// splitSourcesDest splits a COPY/ADD argument list into sources and the
// final destination.
func splitSourcesDest(words []string) ([]string, string, bool) {
	if len(words) < 2 {
		return nil, "", false
	}
	return words[:len(words)-1], words[len(words)-1], true
}
