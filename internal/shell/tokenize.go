package shell

import (
	"path"
	"strings"
)

// tokenize is the permissive fallback used when the syntax parser rejects a
// script. It honours single and double quotes and backslash escapes, splits
// commands at unquoted &&, ||, ;, |, & and newlines, and lets an
// unterminated quote swallow the rest of the input.
func tokenize(script string) ([]Command, bool) {
	var (
		commands []Command
		words    []string
		cur      strings.Builder
		inWord   bool
		quote    byte
		hasPipes bool
	)

	endWord := func() {
		if inWord {
			words = append(words, cur.String())
			cur.Reset()
			inWord = false
		}
	}
	endCommand := func() {
		endWord()
		if cmd, ok := commandFromWords(words); ok {
			commands = append(commands, cmd)
		}
		words = nil
	}

	for i := 0; i < len(script); i++ {
		c := script[i]
		if quote != 0 {
			switch {
			case c == quote:
				quote = 0
			case c == '\\' && quote == '"' && i+1 < len(script):
				i++
				cur.WriteByte(script[i])
			default:
				cur.WriteByte(c)
			}
			continue
		}

		switch c {
		case '\'', '"':
			quote = c
			inWord = true
		case '\\':
			if i+1 < len(script) {
				i++
				if script[i] != '\n' {
					cur.WriteByte(script[i])
					inWord = true
				}
			}
		case ' ', '\t', '\r':
			endWord()
		case '\n', ';':
			endCommand()
		case '&':
			if i+1 < len(script) && script[i+1] == '&' {
				i++
			}
			endCommand()
		case '|':
			if i+1 < len(script) && script[i+1] == '|' {
				i++
			} else {
				hasPipes = true
			}
			endCommand()
		default:
			cur.WriteByte(c)
			inWord = true
		}
	}
	endCommand()
	return commands, hasPipes
}

// commandFromWords skips leading VAR=value assignments and builds a command.
func commandFromWords(words []string) (Command, bool) {
	for len(words) > 0 && isAssignment(words[0]) {
		words = words[1:]
	}
	if len(words) == 0 {
		return Command{}, false
	}
	args := make([]string, len(words)-1)
	copy(args, words[1:])
	return Command{Name: path.Base(words[0]), Args: args}, true
}

func isAssignment(word string) bool {
	name, _, found := strings.Cut(word, "=")
	if !found || name == "" {
		return false
	}
	for i, r := range name {
		isAlpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlpha && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}
	return true
}
