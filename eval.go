// eval.go
//
// Textual expression evaluation. evaluate resolves an operand string plus its
// declared type tag, in the context of an optional environment, into a Value.
//
// Dispatch order (first match wins):
//  1. call expression  — text ends with ')'; runs an in-language function or,
//     with the '#' prefix, a bridged external program.
//  2. variable lookup  — a bound name anywhere on the scope chain beats
//     literal parsing.
//  3. literal parsing  — according to the declared type tag. Unknown tags
//     degrade to Undefined rather than erroring.
//
// Calls receive the *caller's* environment as their enclosing scope. That is
// dynamic scoping of the enclosing chain and it is deliberate: a callee sees
// whoever called it, not where it was defined.
package luma

import (
	"fmt"
	"strings"
)

// foreignMarker prefixes a call whose target is a separately built program
// resolved through the import table.
const foreignMarker = '#'

// moduleSep separates an import alias from a member name in a call target.
const moduleSep = "::"

func (ip *Interpreter) evaluate(text, declaredType string, env *Env) (Value, error) {
	text = strings.TrimSpace(text)

	if env != nil {
		if strings.HasSuffix(text, ")") {
			return ip.evalCall(text, env)
		}
		if v := env.Lookup(text); !v.IsUndefined() {
			return v, nil
		}
	}

	switch declaredType {
	case "bool":
		if strings.HasPrefix(text, conditionalPrefix) {
			ok, err := ip.checkConditional(text, env)
			if err != nil {
				return Undefined, err
			}
			return Bool(ok), nil
		}
		switch text {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return Undefined, nil

	case "list":
		return ip.evalList(text, env)

	case "undefined":
		return Undefined, nil

	case "none":
		return Null, nil

	case "env":
		return EnvVal(NewEnv(nil)), nil

	case "int", "float", "str":
		return ParseLiteral(text, declaredType)
	}

	// Unknown declared types degrade to the unresolved sentinel.
	return Undefined, nil
}

// evalList evaluates a comma-joined sequence of value:type items, optionally
// wrapped in one pair of brackets (the serialized form).
func (ip *Interpreter) evalList(text string, env *Env) (Value, error) {
	text = stripBrackets(text)
	if strings.TrimSpace(text) == "" {
		return List(nil), nil
	}
	items := splitTopLevel(text, ',')
	out := make([]Value, 0, len(items))
	for _, item := range items {
		valText, typeTag, ok := cutOperand(item)
		if !ok {
			return Undefined, &ParseError{Text: item, Msg: "list item without :type suffix"}
		}
		v, err := ip.evaluate(valText, typeTag, env)
		if err != nil {
			return Undefined, err
		}
		out = append(out, v)
	}
	return List(out), nil
}

// evalCall evaluates `target(arg1:type1, arg2:type2, ...)`, dispatching to
// the external bridge when the whole call text starts with the foreign
// marker, and to a nested statement runner otherwise.
func (ip *Interpreter) evalCall(text string, env *Env) (Value, error) {
	callText := text
	foreign := len(callText) > 0 && callText[0] == foreignMarker
	if foreign {
		callText = callText[1:]
	}

	open := strings.IndexByte(callText, '(')
	if open < 0 {
		return Undefined, &ParseError{Text: text, Msg: "call without opening parenthesis"}
	}
	target := strings.TrimSpace(callText[:open])
	argsText := strings.TrimSpace(callText[open+1 : len(callText)-1])

	var alias, name string
	if i := strings.Index(target, moduleSep); i >= 0 {
		alias = strings.TrimSpace(target[:i])
		name = strings.TrimSpace(target[i+len(moduleSep):])
	} else {
		name = target
	}

	args, err := ip.evalArgs(argsText, env)
	if err != nil {
		return Undefined, err
	}

	if foreign {
		lookup := alias
		if lookup == "" {
			lookup = name
		}
		path, ok := env.ResolveImport(lookup)
		if !ok {
			return Undefined, &UndefinedError{Name: lookup, Kind: "import"}
		}
		return ip.Bridge.Invoke(path, args)
	}

	fnVal := env.Lookup(name)
	if fnVal.IsUndefined() {
		return Undefined, &UndefinedError{Name: name, Kind: "function"}
	}
	if fnVal.Tag != VTFun {
		return Undefined, &NotCallableError{Name: name, Got: fnVal.TypeName()}
	}
	fn := fnVal.Data.(*Function)

	if len(args) != len(fn.Params) {
		return Undefined, &TypeError{
			Text: name,
			Want: fmt.Sprintf("call with %d arguments", len(fn.Params)),
			Msg:  fmt.Sprintf("%s expects %d arguments, got %d", name, len(fn.Params), len(args)),
		}
	}
	params := make(map[string]Value, len(args))
	for i, p := range fn.Params {
		params[p] = args[i]
	}

	// The callee's enclosing scope is the caller's environment.
	return ip.runFunction(fn, env, params)
}

func (ip *Interpreter) evalArgs(argsText string, env *Env) ([]Value, error) {
	if argsText == "" {
		return nil, nil
	}
	parts := splitTopLevel(argsText, ',')
	args := make([]Value, 0, len(parts))
	for _, part := range parts {
		valText, typeTag, ok := cutOperand(part)
		if !ok {
			return nil, &ParseError{Text: part, Msg: "argument without :type suffix"}
		}
		v, err := ip.evaluate(valText, typeTag, env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// splitTopLevel splits s on sep occurring outside of (), [] and double
// quotes, so nested calls and list literals survive as single items.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	inStr := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inStr:
			if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// stripBrackets removes one surrounding [ ] pair when the opening bracket
// really closes at the end of the text.
func stripBrackets(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		}
		if depth == 0 && i < len(s)-1 {
			return s // the leading bracket closes before the end
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}

// cutOperand splits a value:type operand at its last top-level colon, so a
// nested call or list in the value position keeps its own annotations.
func cutOperand(s string) (valText, typeTag string, ok bool) {
	depth := 0
	inStr := false
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		switch {
		case inStr:
			if c == '"' {
				inStr = false
			}
		case c == '"':
			inStr = true
		case c == ')' || c == ']':
			depth++
		case c == '(' || c == '[':
			depth--
		case c == ':' && depth == 0:
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
		}
	}
	return "", "", false
}
