// Package parse compiles directive-laced template source into a part tree.
//
// Source alternates between raw text and <? ... ?> directives.  Block
// directives (if/ifexist, for) nest; the parser tracks open blocks on an
// explicit stack and rejects terminators that do not close the innermost
// open block.
package parse

import (
	"os"
	"path/filepath"

	"github.com/tmplkit/jsont/ast"
)

// blockKind tags an entry of the nesting stack.
type blockKind int

const (
	blockIf blockKind = iota
	blockFor
)

func (k blockKind) String() string {
	if k == blockFor {
		return "for"
	}
	return "if"
}

// openBlock is one level of the parse-time nesting stack: the composite
// node still being filled in, and the sequence to restore as the accumulation
// point once the block closes.
type openBlock struct {
	kind blockKind
	cond *ast.IfNode  // set when kind == blockIf
	loop *ast.ForNode // set when kind == blockFor
	encl *ast.ListNode
}

type tree struct {
	path    string
	scan    *scanner
	root    *ast.ListNode
	current *ast.ListNode // the sequence new parts append to
	stack   []openBlock
}

// Template compiles template source into its part tree.  path locates the
// template on disk and anchors relative include paths; it may be empty for
// in-memory sources.
func Template(path, text string) (*ast.ListNode, error) {
	var t = &tree{
		path: path,
		scan: newScanner(text),
		root: &ast.ListNode{},
	}
	t.current = t.root
	if err := t.parse(); err != nil {
		return nil, err
	}
	return t.root, nil
}

func (t *tree) parse() error {
	for {
		var pos = ast.Pos(t.scan.pos)
		var text = t.scan.readText()
		if text != "" {
			t.current.Nodes = append(t.current.Nodes, &ast.RawTextNode{Pos: pos, Text: text})
		}

		var line, col = t.scan.line, t.scan.col
		var command = t.scan.readTemplateCommand()
		if command == "" {
			break // end of input
		}
		pos = ast.Pos(t.scan.pos)
		t.scan.readWhiteSpace()

		switch command {
		case "echo":
			var query = t.scan.readQuery()
			if query == "" {
				return compileErrorf(line, col, command, "%s in <? echo ?>", ErrMsgMissingQuery)
			}
			t.current.Nodes = append(t.current.Nodes, &ast.EchoNode{Pos: pos, Query: query})

		case "if", "ifexist":
			var query = t.scan.readQuery()
			if query == "" {
				return compileErrorf(line, col, command, "%s in <? %s ?>", ErrMsgMissingQuery, command)
			}
			var kind = ast.GuardTruthy
			if command == "ifexist" {
				kind = ast.GuardExists
			}
			var body = &ast.ListNode{Pos: pos}
			var cond = &ast.IfNode{Pos: pos, Conds: []*ast.CondNode{{Pos: pos, Kind: kind, Query: query, Body: body}}}
			t.current.Nodes = append(t.current.Nodes, cond)
			t.stack = append(t.stack, openBlock{kind: blockIf, cond: cond, encl: t.current})
			t.current = body

		case "elsif", "elif":
			var query = t.scan.readQuery()
			if query == "" {
				return compileErrorf(line, col, command, "%s in <? %s ?>", ErrMsgMissingQuery, command)
			}
			var frame, err = t.top(blockIf, line, col, command)
			if err != nil {
				return err
			}
			var body = &ast.ListNode{Pos: pos}
			frame.cond.Conds = append(frame.cond.Conds, &ast.CondNode{Pos: pos, Kind: ast.GuardTruthy, Query: query, Body: body})
			t.current = body

		case "else":
			var frame, err = t.top(blockIf, line, col, command)
			if err != nil {
				return err
			}
			var body = &ast.ListNode{Pos: pos}
			frame.cond.Conds = append(frame.cond.Conds, &ast.CondNode{Pos: pos, Kind: ast.GuardElse, Body: body})
			t.current = body

		case "endif":
			var frame, err = t.top(blockIf, line, col, command)
			if err != nil {
				return err
			}
			t.stack = t.stack[:len(t.stack)-1]
			t.current = frame.encl

		case "for":
			var name = t.scan.readWord()
			if name == "" {
				return compileErrorf(line, col, command, "%s in <? for ?>", ErrMsgMissingLoopVar)
			}
			t.scan.readWhiteSpace()
			var query = t.scan.readQuery()
			if query == "" {
				return compileErrorf(line, col, command, "%s in <? for ?>", ErrMsgMissingQuery)
			}
			var loop = &ast.ForNode{Pos: pos, Var: name, Query: query, Body: &ast.ListNode{Pos: pos}}
			t.current.Nodes = append(t.current.Nodes, loop)
			t.stack = append(t.stack, openBlock{kind: blockFor, loop: loop, encl: t.current})
			t.current = loop.Body

		case "endfor":
			var frame, err = t.top(blockFor, line, col, command)
			if err != nil {
				return err
			}
			t.stack = t.stack[:len(t.stack)-1]
			t.current = frame.encl

		case "include":
			t.scan.readWhiteSpace()
			var filename = t.scan.readString()
			if filename == "" {
				return compileErrorf(line, col, command, "%s in <? include ?>", ErrMsgMissingFilename)
			}
			t.current.Nodes = append(t.current.Nodes, &ast.IncludeNode{Pos: pos, Path: t.resolveInclude(filename)})

		default:
			return compileErrorf(line, col, command, "%s %q", ErrMsgUnknownCommand, command)
		}

		t.scan.readWhiteSpace()
		if !t.scan.atCloser() {
			return compileErrorf(t.scan.line, t.scan.col, command, "%s after <? %s ?>", ErrMsgMissingCloser, command)
		}
		t.scan.next()
		t.scan.next()

		// A block directive on its own line should not inject a blank
		// line into output: swallow one trailing CR and one LF.  Echo
		// output is inline, so echo keeps its newline.
		if command != "echo" {
			if t.scan.peek() == '\r' {
				t.scan.next()
			}
			if t.scan.peek() == '\n' {
				t.scan.next()
			}
		}
	}

	if len(t.stack) > 0 {
		var frame = t.stack[len(t.stack)-1]
		return compileErrorf(t.scan.line, t.scan.col, frame.kind.String(),
			"%s: <? %s ?> is never closed", ErrMsgUnclosedBlock, frame.kind)
	}
	return nil
}

// top returns the innermost open block, requiring it to be of the given
// kind.  A terminator with no open block, or one closing the wrong kind of
// block, is a compile error.
func (t *tree) top(kind blockKind, line, col int, command string) (openBlock, error) {
	if len(t.stack) == 0 {
		return openBlock{}, compileErrorf(line, col, command, "%s: unexpected <? %s ?>", ErrMsgUnexpectedEnd, command)
	}
	var frame = t.stack[len(t.stack)-1]
	if frame.kind != kind {
		return openBlock{}, compileErrorf(line, col, command,
			"%s: <? %s ?> closes an open <? %s ?>", ErrMsgMismatchedEnd, command, frame.kind)
	}
	return frame, nil
}

// resolveInclude rewrites a relative include path to be relative to this
// template's own location, when a file exists there.  Otherwise the path is
// left as given, for the cache to resolve at render time.
func (t *tree) resolveInclude(name string) string {
	if t.path == "" || filepath.IsAbs(name) {
		return name
	}
	var resolved = filepath.Join(filepath.Dir(t.path), name)
	if _, err := os.Stat(resolved); err == nil {
		return resolved
	}
	return name
}
