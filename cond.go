// cond.go
//
// The boolean mini-language used inside `if ...` expressions and do
// statements. The input, after the fixed "if " prefix, is a single pass over
// space-separated tokens with no operator precedence and no parentheses:
//
//	if 3:int == 3:int and x:int > 2:int
//
// Per token, checked in priority order:
//   - contains = < >          → pending comparison operator
//   - and / or / xor          → pending logical combinator
//   - not                     → negation applied to the next comparison
//   - otherwise               → a value:type operand (left side when no
//     operator is pending, right side otherwise)
//
// Completing a comparison folds it into the running result through the
// pending combinator, then clears all pending state.
package luma

import "strings"

// conditionalPrefix marks conditional text; its length is stripped before
// tokenizing.
const conditionalPrefix = "if "

// checkConditional parses and evaluates conditional text against env.
func (ip *Interpreter) checkConditional(text string, env *Env) (bool, error) {
	body := strings.TrimSpace(text)
	if strings.HasPrefix(body, conditionalPrefix) {
		body = body[len(conditionalPrefix):]
	} else if body == "if" {
		body = ""
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return false, &ParseError{Text: text, Msg: "conditional without body"}
	}

	var (
		finalResult bool
		current     bool
		pendingOp   string
		combinator  string
		negate      bool
		left        Value
		haveLeft    bool
	)

	for _, token := range strings.Fields(body) {
		switch {
		case strings.ContainsAny(token, "=<>"):
			pendingOp = token

		case token == "and" || token == "or" || token == "xor":
			combinator = token

		case token == "not":
			negate = true

		case pendingOp == "":
			valText, typeTag, ok := cutOperand(token)
			if !ok {
				return false, &ParseError{Text: token, Msg: "conditional operand without :type suffix"}
			}
			v, err := ip.evaluate(valText, typeTag, env)
			if err != nil {
				return false, err
			}
			left = v
			haveLeft = true

		default:
			valText, typeTag, ok := cutOperand(token)
			if !ok {
				return false, &ParseError{Text: token, Msg: "conditional operand without :type suffix"}
			}
			right, err := ip.evaluate(valText, typeTag, env)
			if err != nil {
				return false, err
			}
			if !haveLeft {
				return false, &ParseError{Text: token, Msg: "comparison without a left-hand operand"}
			}
			current = applyComparison(pendingOp, left, right)
			pendingOp = ""
			left = Undefined
			haveLeft = false

			if negate {
				current = !current
				negate = false
			}

			switch combinator {
			case "":
				finalResult = current
			case "and":
				finalResult = finalResult && current
			case "or":
				finalResult = finalResult || current
			case "xor":
				finalResult = finalResult != current
			}
			combinator = ""
		}
	}

	return finalResult, nil
}

// applyComparison evaluates left <op> right under Value equality and
// ordering. Incomparable operands make every comparison false.
func applyComparison(op string, left, right Value) bool {
	switch op {
	case "==":
		return left.Equal(right)
	case "<=":
		ord, ok := left.Compare(right)
		return ok && ord <= 0
	case ">=":
		ord, ok := left.Compare(right)
		return ok && ord >= 0
	case "<":
		ord, ok := left.Compare(right)
		return ok && ord < 0
	case ">":
		ord, ok := left.Compare(right)
		return ok && ord > 0
	}
	return false
}
