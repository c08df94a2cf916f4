// runner.go
//
// Statement execution. runFunction executes one invocation of a function: a
// program counter over the statement sequence, a fresh child environment
// whose parent is the caller-supplied scope, and the bound parameters
// pre-loaded into that child.
//
// Control flow is marker-based. A mark statement binds its label to the
// current statement index in the running environment — dynamically, per
// execution, so re-executing a mark rebinds the label. A do statement jumps
// when its conditional holds:
//
//	~label  — absolute jump to the integer previously recorded under label
//	*label  — absolute jump to the position of the first mark named label,
//	          scanning the whole sequence from the start
//	label   — relative forward jump: count non-mark statements from the
//	          current position until a mark named label, add the count
//
// A taken jump resumes the loop without the usual +1 advance. Running past
// the end of the sequence returns Undefined; a return statement is the only
// other exit.
package luma

import "strings"

const (
	recordedJumpPrefix = '~'
	absoluteJumpPrefix = '*'
)

// runFunction executes fn with parent as its enclosing scope and params
// pre-bound in the fresh child frame. Call depth is metered here; recursion
// past the configured limit surfaces as *DepthError instead of exhausting
// the host stack.
func (ip *Interpreter) runFunction(fn *Function, parent *Env, params map[string]Value) (Value, error) {
	ip.depth++
	defer func() { ip.depth-- }()
	if ip.depth > ip.MaxDepth {
		return Undefined, &DepthError{Limit: ip.MaxDepth}
	}

	env := NewEnv(parent)
	for name, v := range params {
		env.Bind(name, v)
	}

	index := 0
	for index < len(fn.Body) {
		stmt := fn.Body[index]

		switch stmt.Verb {
		case VerbSet:
			name, typeTag, valText := stmt.Nouns[0], stmt.Nouns[1], stmt.Nouns[2]
			v, err := ip.evaluate(valText, typeTag, env)
			if err != nil {
				return Undefined, atStatement(err, index, stmt.String())
			}
			env.Bind(name, v)

		case VerbReturn:
			valText, typeTag := stmt.Nouns[0], stmt.Nouns[1]
			v, err := ip.evaluate(valText, typeTag, env)
			if err != nil {
				return Undefined, atStatement(err, index, stmt.String())
			}
			return v, nil

		case VerbMark:
			env.Bind(stmt.Nouns[0], Int(int64(index)))

		case VerbDo:
			target, cond := stmt.Nouns[0], stmt.Nouns[1]
			taken, err := ip.branchTaken(cond, env)
			if err != nil {
				return Undefined, atStatement(err, index, stmt.String())
			}
			if taken {
				next, err := ip.jumpTarget(fn, target, index, env)
				if err != nil {
					return Undefined, atStatement(err, index, stmt.String())
				}
				index = next
				continue
			}
		}

		index++
	}

	return Undefined, nil
}

// branchTaken decides a do statement's condition. Both paths are attempted
// deliberately: the text may be a plain expression that evaluates to true
// (a bool variable, a call) or conditional text for the mini-language.
func (ip *Interpreter) branchTaken(cond string, env *Env) (bool, error) {
	v, err := ip.evaluate(cond, "bool", env)
	if err != nil {
		return false, err
	}
	if v.Truthy() {
		return true, nil
	}
	if strings.HasPrefix(strings.TrimSpace(cond), conditionalPrefix) {
		return ip.checkConditional(cond, env)
	}
	return false, nil
}

// jumpTarget resolves a taken do statement's target into the next program
// counter value.
func (ip *Interpreter) jumpTarget(fn *Function, target string, index int, env *Env) (int, error) {
	if target == "" {
		return 0, &ParseError{Text: target, Msg: "do statement without a target"}
	}

	switch target[0] {
	case recordedJumpPrefix:
		name := target[1:]
		v := env.Lookup(name)
		if v.IsUndefined() {
			return 0, &UndefinedError{Name: name, Kind: "marker"}
		}
		if v.Tag != VTInt {
			return 0, &TypeError{
				Text: name,
				Want: "int",
				Msg:  name + " does not hold an integer statement index",
			}
		}
		return int(v.Data.(int64)), nil

	case absoluteJumpPrefix:
		name := target[1:]
		for i, stmt := range fn.Body {
			if stmt.Verb == VerbMark && stmt.Nouns[0] == name {
				return i, nil
			}
		}
		return 0, &UndefinedError{Name: name, Kind: "marker"}

	default:
		count := 0
		for _, stmt := range fn.Body[index:] {
			if stmt.Verb == VerbMark {
				if stmt.Nouns[0] == target {
					return index + count, nil
				}
			} else {
				count++
			}
		}
		return 0, &UndefinedError{Name: target, Kind: "marker"}
	}
}
