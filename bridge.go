// bridge.go
//
// Foreign calls. A Luma program can invoke a separately compiled program as
// if it were a function: arguments cross the boundary as serialized process
// arguments, and the child signals success by printing exactly one line of
// the form
//
//	<literalValue>:<typeTag>
//
// to stdout before exiting 0. Nonzero exit surfaces the child's stderr as an
// *ExternalProcessError; so does any malformed output line.
//
// The evaluator only ever sees the Invoker interface, so tests (and embedders
// that disallow process spawning) substitute an in-process stub.
package luma

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Invoker is the capability boundary for foreign calls.
type Invoker interface {
	Invoke(path string, args []Value) (Value, error)
}

// ProcessBridge runs foreign calls as child processes. Source files are
// built first through a per-extension build command and the produced binary
// is cached next to the source; paths without a registered builder are
// executed directly.
type ProcessBridge struct {
	// Timeout bounds build + run of one invocation. Zero means no limit.
	Timeout time.Duration

	// Builders maps a source extension (".rs", ".go") to the argv that
	// compiles the source into the binary path. The placeholders {src} and
	// {out} are substituted.
	Builders map[string][]string
}

// NewProcessBridge returns a bridge with the stock builders and no timeout.
func NewProcessBridge() *ProcessBridge {
	return &ProcessBridge{
		Builders: map[string][]string{
			".rs": {"rustc", "{src}", "-o", "{out}"},
			".go": {"go", "build", "-o", "{out}", "{src}"},
		},
	}
}

func (b *ProcessBridge) context() (context.Context, context.CancelFunc) {
	if b.Timeout <= 0 {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), b.Timeout)
}

// Invoke builds path if needed, executes it with the serialized arguments,
// and parses the single value:type result line.
func (b *ProcessBridge) Invoke(path string, args []Value) (Value, error) {
	ctx, cancel := b.context()
	defer cancel()

	bin, err := b.ensureBuilt(ctx, path)
	if err != nil {
		return Undefined, err
	}

	argv := make([]string, len(args))
	for i, a := range args {
		argv[i] = a.Serialize()
	}

	cmd := exec.CommandContext(ctx, bin, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Undefined, &ExternalProcessError{Path: path, Stderr: msg}
	}

	return parseResultLine(path, stdout.String())
}

// ensureBuilt compiles path when a builder is registered for its extension,
// reusing a previously built binary that is newer than the source.
func (b *ProcessBridge) ensureBuilt(ctx context.Context, path string) (string, error) {
	build, ok := b.Builders[filepath.Ext(path)]
	if !ok {
		return path, nil
	}

	out := strings.TrimSuffix(path, filepath.Ext(path))
	srcInfo, err := os.Stat(path)
	if err != nil {
		return "", &ExternalProcessError{Path: path, Stderr: err.Error()}
	}
	if binInfo, err := os.Stat(out); err == nil && binInfo.ModTime().After(srcInfo.ModTime()) {
		return out, nil
	}

	argv := make([]string, len(build))
	for i, a := range build {
		a = strings.ReplaceAll(a, "{src}", path)
		a = strings.ReplaceAll(a, "{out}", out)
		argv[i] = a
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", &ExternalProcessError{Path: path, Stderr: "build failed: " + msg}
	}
	return out, nil
}

// parseResultLine parses the child's single value:type output line.
func parseResultLine(path, out string) (Value, error) {
	line := strings.TrimSpace(out)
	valText, typeTag, ok := cutOperand(line)
	if !ok || strings.ContainsRune(line, '\n') {
		return Undefined, &ExternalProcessError{
			Path:   path,
			Stderr: "expected a single value:type output line, got " + clip(line),
		}
	}

	switch typeTag {
	case "none":
		return Null, nil
	case "undefined":
		return Undefined, nil
	case "str":
		return Str(strings.Trim(valText, "\"")), nil
	}
	v, err := ParseLiteral(valText, typeTag)
	if err != nil {
		return Undefined, &ExternalProcessError{
			Path:   path,
			Stderr: "bad result literal " + clip(line),
		}
	}
	return v, nil
}

func clip(s string) string {
	if len(s) > 64 {
		s = s[:64] + "..."
	}
	return "\"" + s + "\""
}
