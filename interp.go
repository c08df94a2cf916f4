// interp.go
//
// Public entry points. An Interpreter owns the root environment, the foreign
// call bridge, and the call-depth limit. Typical embedding:
//
//	ip := luma.New()
//	if err := ip.LoadFile("plan.luma"); err != nil { ... }
//	result, err := ip.Run("main")
//
// Execution is single-threaded and synchronous; an Interpreter must not be
// shared between goroutines.
package luma

// Version is reported by the CLI.
const Version = "0.2.0"

// DefaultMaxDepth bounds language-level call recursion.
const DefaultMaxDepth = 1000

// Interpreter evaluates Luma programs.
//
// Public fields may be adjusted between New and the first Load/Run call:
//   - Bridge   — foreign call implementation (a *ProcessBridge by default;
//     swap in a stub to forbid or fake process spawning).
//   - MaxDepth — language-level call depth limit.
//   - Manifest — alias→path table consulted for bare-name imports.
type Interpreter struct {
	Global   *Env
	Bridge   Invoker
	MaxDepth int
	Manifest map[string]string

	depth int
}

// New returns a ready interpreter with an empty root scope.
func New() *Interpreter {
	return &Interpreter{
		Global:   NewEnv(nil),
		Bridge:   NewProcessBridge(),
		MaxDepth: DefaultMaxDepth,
		Manifest: map[string]string{},
	}
}

// Run invokes a zero-argument top-level function by name and returns its
// value. The usual entry point is Run("main") after LoadFile.
func (ip *Interpreter) Run(name string) (Value, error) {
	return ip.Call(name, nil)
}

// Call invokes a top-level function with positional arguments.
func (ip *Interpreter) Call(name string, args []Value) (Value, error) {
	v := ip.Global.Lookup(name)
	if v.IsUndefined() {
		return Undefined, &UndefinedError{Name: name, Kind: "function"}
	}
	if v.Tag != VTFun {
		return Undefined, &NotCallableError{Name: name, Got: v.TypeName()}
	}
	fn := v.Data.(*Function)
	if len(args) != len(fn.Params) {
		return Undefined, &TypeError{
			Text: name,
			Want: "call",
			Msg:  name + " arity mismatch",
		}
	}
	params := make(map[string]Value, len(args))
	for i, p := range fn.Params {
		params[p] = args[i]
	}
	return ip.runFunction(fn, ip.Global, params)
}

// Eval resolves one value:type expression against the root scope. It backs
// the REPL and is handy for embedding.
func (ip *Interpreter) Eval(text, declaredType string) (Value, error) {
	return ip.evaluate(text, declaredType, ip.Global)
}

// Bind exposes root-scope binding for hosts.
func (ip *Interpreter) Bind(name string, v Value) {
	ip.Global.Bind(name, v)
}
