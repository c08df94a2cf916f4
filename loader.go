// loader.go
//
// The text→statement stage. Luma source is line-oriented: each physical line
// is classified by its trailing character, with `//` comments stripped and
// blank lines skipped.
//
// Top level:
//
//	x: int = 3;               set — evaluated immediately into the root scope
//	utils.rs!                 import — binds file-stem alias → path
//	main: int(a, b) {         function header; body lines follow until }
//
// Inside a function body:
//
//	x: int = 3;               set
//	loop!                     mark
//	loop if x:int < 10:int?   do — first word is the jump target
//	x                         anything else is a return expression, carrying
//	                          the function's declared return type
package luma

import (
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads a Luma source file and loads it into the root scope.
func (ip *Interpreter) LoadFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return ip.LoadSource(string(src))
}

// LoadSource scans src line by line, binding top-level sets, imports and
// function definitions into the interpreter's root scope.
func (ip *Interpreter) LoadSource(src string) error {
	lines := strings.Split(src, "\n")

	for i := 0; i < len(lines); i++ {
		line := stripLine(lines[i])
		if line == "" {
			continue
		}

		body := line[:len(line)-1]
		switch line[len(line)-1] {
		case ';':
			name, typeTag, valText, err := splitSet(body)
			if err != nil {
				return err
			}
			v, err := ip.evaluate(valText, typeTag, ip.Global)
			if err != nil {
				return err
			}
			ip.Global.Bind(name, v)

		case '!':
			ip.bindImport(strings.TrimSpace(body))

		case '{':
			fn, err := parseHeader(body)
			if err != nil {
				return err
			}
			end := i + 1
			for end < len(lines) && stripLine(lines[end]) != "}" {
				end++
			}
			if end == len(lines) {
				return &ParseError{Text: line, Msg: "function body without closing }"}
			}
			if err := fn.parseBody(lines[i+1 : end]); err != nil {
				return err
			}
			ip.Global.Bind(fn.Name, FunVal(fn))
			i = end

		default:
			return &ParseError{Text: line, Msg: "unknown trailing character"}
		}
	}

	return nil
}

// bindImport records a top-level import. The operand is a path, or a bare
// package name resolved through the manifest; the alias is the file stem.
func (ip *Interpreter) bindImport(operand string) {
	path := operand
	if p, ok := ip.Manifest[operand]; ok {
		path = p
	}
	alias := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ip.Global.BindImport(alias, path)
}

// parseHeader parses `name: returnType(p1, p2)` (trailing { already removed).
func parseHeader(body string) (*Function, error) {
	open := strings.IndexByte(body, '(')
	if open < 0 {
		return nil, &ParseError{Text: body, Msg: "function header without parameter list"}
	}
	traits := body[:open]
	paramsText := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(body[open+1:]), ")"))

	name, retType, ok := strings.Cut(traits, ":")
	if !ok {
		return nil, &ParseError{Text: body, Msg: "function header without return type"}
	}

	var params []string
	for _, p := range strings.Split(paramsText, ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}

	return &Function{
		Name:       strings.TrimSpace(name),
		Params:     params,
		ReturnType: strings.TrimSpace(retType),
	}, nil
}

// parseBody classifies each body line into a statement.
func (fn *Function) parseBody(lines []string) error {
	for _, raw := range lines {
		line := stripLine(raw)
		if line == "" {
			continue
		}

		body := line[:len(line)-1]
		switch line[len(line)-1] {
		case '?':
			target, cond, ok := strings.Cut(strings.TrimSpace(body), " ")
			if !ok {
				return &ParseError{Text: line, Msg: "do statement without a conditional"}
			}
			fn.Body = append(fn.Body, Statement{
				Verb:  VerbDo,
				Nouns: []string{target, strings.TrimSpace(cond)},
			})

		case ';':
			name, typeTag, valText, err := splitSet(body)
			if err != nil {
				return err
			}
			fn.Body = append(fn.Body, Statement{
				Verb:  VerbSet,
				Nouns: []string{name, typeTag, valText},
			})

		case '!':
			fn.Body = append(fn.Body, Statement{
				Verb:  VerbMark,
				Nouns: []string{strings.TrimSpace(body)},
			})

		default:
			fn.Body = append(fn.Body, Statement{
				Verb:  VerbReturn,
				Nouns: []string{line, fn.ReturnType},
			})
		}
	}
	return nil
}

// splitSet parses `name: type = value` (trailing ; already removed).
func splitSet(body string) (name, typeTag, valText string, err error) {
	decl, val, ok := strings.Cut(body, "=")
	if !ok {
		return "", "", "", &ParseError{Text: body, Msg: "set statement without ="}
	}
	n, t, ok := strings.Cut(decl, ":")
	if !ok {
		return "", "", "", &ParseError{Text: body, Msg: "declaration without :type"}
	}
	return strings.TrimSpace(n), strings.TrimSpace(t), strings.TrimSpace(val), nil
}

// stripLine removes a trailing // comment and surrounding whitespace.
func stripLine(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}
