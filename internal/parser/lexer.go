package parser

import "strings"

// tokenKind tags a lexed token.
type tokenKind int

const (
	tokenBlock tokenKind = iota
	tokenTask
	tokenDuration
	tokenTag
	tokenPriority
	tokenDependsOn
	tokenNewline
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
	deps []string
	line int
}

// tokenize splits .zbx source into a flat token stream. The grammar is
// line-oriented: a line is either blank, a "@block" header, or a task name
// followed by attribute words ([duration], #tag, p:priority, after:a,b).
// Unrecognized attribute words are dropped here; the parser never sees them.
func tokenize(input string) []token {
	var tokens []token
	for i, line := range strings.Split(input, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			tokens = append(tokens, token{kind: tokenNewline, line: lineNo})
			continue
		}
		if name, ok := strings.CutPrefix(trimmed, "@"); ok {
			tokens = append(tokens,
				token{kind: tokenBlock, text: name, line: lineNo},
				token{kind: tokenNewline, line: lineNo})
			continue
		}

		fields := strings.Fields(trimmed)
		tokens = append(tokens, token{kind: tokenTask, text: fields[0], line: lineNo})
		for _, field := range fields[1:] {
			switch {
			case strings.HasPrefix(field, "[") && strings.HasSuffix(field, "]"):
				tokens = append(tokens, token{kind: tokenDuration, text: strings.Trim(field, "[]"), line: lineNo})
			case strings.HasPrefix(field, "#"):
				tokens = append(tokens, token{kind: tokenTag, text: field[1:], line: lineNo})
			case strings.HasPrefix(field, "p:"):
				tokens = append(tokens, token{kind: tokenPriority, text: field[2:], line: lineNo})
			case strings.HasPrefix(field, "after:"):
				tokens = append(tokens, token{kind: tokenDependsOn, deps: strings.Split(field[6:], ","), line: lineNo})
			}
		}
		tokens = append(tokens, token{kind: tokenNewline, line: lineNo})
	}
	tokens = append(tokens, token{kind: tokenEOF})
	return tokens
}

// splitTaskName pulls parameters out of a task word like "write(report,q3)".
// A word without a well-formed parameter list comes back whole.
func splitTaskName(word string) (string, []string) {
	open := strings.Index(word, "(")
	end := strings.Index(word, ")")
	if open < 0 || end < 0 || open >= end {
		return word, nil
	}
	var params []string
	for _, p := range strings.Split(word[open+1:end], ",") {
		params = append(params, strings.TrimSpace(p))
	}
	return word[:open], params
}
