// Package parser turns .zbx source text into an ast.Block sequence. The
// language is small enough that the lexer and parser together fit in two
// files; there is no lookahead beyond the current token.
package parser

import (
	"fmt"
	"os"

	"github.com/yourusername/zibox/internal/ast"
)

// Parse tokenizes and parses a complete source buffer. Tasks that appear
// before any @block header are collected into a block named "default".
func Parse(input string) ([]ast.Block, error) {
	tokens := tokenize(input)
	var blocks []ast.Block
	defaultBlock := ast.Block{Name: "default"}

	i := 0
	for i < len(tokens) {
		switch tok := tokens[i]; tok.kind {
		case tokenBlock:
			// Loose tasks seen so far keep their position ahead of the
			// first named block.
			if len(defaultBlock.Tasks) > 0 {
				blocks = append(blocks, defaultBlock)
				defaultBlock = ast.Block{Name: "default"}
			}
			block := ast.Block{Name: tok.text}
			i++
			for i < len(tokens) {
				inner := tokens[i]
				if inner.kind == tokenNewline {
					i++
					continue
				}
				if inner.kind != tokenTask {
					break
				}
				task, next, err := parseTask(tokens, i)
				if err != nil {
					return nil, err
				}
				block.Tasks = append(block.Tasks, task)
				i = next
			}
			blocks = append(blocks, block)
		case tokenTask:
			task, next, err := parseTask(tokens, i)
			if err != nil {
				return nil, err
			}
			defaultBlock.Tasks = append(defaultBlock.Tasks, task)
			i = next
		case tokenNewline:
			i++
		case tokenEOF:
			i = len(tokens)
		default:
			return nil, fmt.Errorf("line %d: unexpected token", tok.line)
		}
	}

	if len(defaultBlock.Tasks) > 0 {
		blocks = append(blocks, defaultBlock)
	}
	return blocks, nil
}

// ParseFile reads and parses a .zbx file.
func ParseFile(path string) ([]ast.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	blocks, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return blocks, nil
}

// parseTask consumes a task token plus its trailing attribute tokens and
// returns the index of the first unconsumed token.
func parseTask(tokens []token, i int) (ast.Task, int, error) {
	name, params := splitTaskName(tokens[i].text)
	task := ast.NewTask(name)
	task.Params = params
	i++

attrs:
	for i < len(tokens) {
		switch tok := tokens[i]; tok.kind {
		case tokenDuration:
			d, err := ast.ParseDuration(tok.text)
			if err != nil {
				return ast.Task{}, 0, fmt.Errorf("line %d: %w", tok.line, err)
			}
			task.Duration = &d
			i++
		case tokenTag:
			task.Tags[tok.text] = struct{}{}
			i++
		case tokenPriority:
			p, err := ast.ParsePriority(tok.text)
			if err != nil {
				return ast.Task{}, 0, fmt.Errorf("line %d: %w", tok.line, err)
			}
			task.Priority = p
			i++
		case tokenDependsOn:
			task.DependsOn = append(task.DependsOn, tok.deps...)
			i++
		default:
			break attrs
		}
	}
	return task, i, nil
}
