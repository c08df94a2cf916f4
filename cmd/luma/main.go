// Command luma runs Luma programs and provides an interactive REPL.
//
// Usage:
//
//	luma [flags] program.luma    run program's main function
//	luma [flags]                 start the REPL
//
// Configuration comes from flags, falling back to the environment (a .env
// file in the working directory is honored): LUMA_MANIFEST, LUMA_MAX_DEPTH,
// LUMA_EXEC_TIMEOUT.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/peterh/liner"

	luma "github.com/anb2473/Luma"
)

const (
	appName     = "luma"
	historyFile = ".luma_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var (
	errColor    = color.New(color.FgRed)
	valueColor  = color.New(color.FgBlue)
	typeColor   = color.New(color.FgGreen)
	bannerColor = color.New(color.Bold)
)

func main() {
	_ = godotenv.Load()

	manifest := flag.String("manifest", os.Getenv("LUMA_MANIFEST"), "package manifest path (default: luma.yaml next to the program)")
	maxDepth := flag.Int("max-depth", envInt("LUMA_MAX_DEPTH", luma.DefaultMaxDepth), "call depth limit")
	timeout := flag.Duration("exec-timeout", envDuration("LUMA_EXEC_TIMEOUT", 0), "foreign call timeout (0 = none)")
	flag.Parse()

	ip := luma.New()
	ip.MaxDepth = *maxDepth
	if bridge, ok := ip.Bridge.(*luma.ProcessBridge); ok {
		bridge.Timeout = *timeout
	}

	if flag.NArg() == 0 {
		repl(ip, *manifest)
		return
	}

	program := flag.Arg(0)
	if err := loadManifest(ip, *manifest, filepath.Dir(program)); err != nil {
		fatal(err)
	}
	if err := ip.LoadFile(program); err != nil {
		fatal(err)
	}
	result, err := ip.Run("main")
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Value: %s\n", valueColor.Sprint(result.Render()))
	fmt.Printf("Type: %s\n", typeColor.Sprint(result.TypeName()))
}

func loadManifest(ip *luma.Interpreter, explicit, programDir string) error {
	path := explicit
	if path == "" {
		path = filepath.Join(programDir, luma.DefaultManifestName)
		if _, err := os.Stat(path); err != nil {
			return nil // optional when not named explicitly
		}
	}
	pkgs, err := luma.LoadManifest(path)
	if err != nil {
		return err
	}
	ip.Manifest = pkgs
	return nil
}

// repl reads statements and expressions interactively. A line ending in ';'
// binds into the persistent root scope; anything else is evaluated as a
// value:type expression.
func repl(ip *luma.Interpreter, manifest string) {
	if err := loadManifest(ip, manifest, "."); err != nil {
		fatal(err)
	}

	bannerColor.Printf("Luma %s REPL\n", luma.Version)
	fmt.Println("Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := filepath.Join(homeDir(), historyFile)
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt(promptMain)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil { // io.EOF on Ctrl+D
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch input {
		case ":quit", ":q":
			return
		}

		// A function header opens a multi-line definition; collect body
		// lines until the closing brace.
		if strings.HasSuffix(input, "{") {
			block, ok := readBlock(line, input)
			if !ok {
				continue
			}
			input = block
		}

		if err := replLine(ip, input); err != nil {
			errColor.Fprintln(os.Stderr, err)
		}
	}
}

// readBlock collects function body lines until the closing brace. Returns
// false when the user aborts mid-definition.
func readBlock(line *liner.State, header string) (string, bool) {
	var sb strings.Builder
	sb.WriteString(header)
	for {
		input, err := line.Prompt(promptCont)
		if err != nil {
			return "", false
		}
		line.AppendHistory(input)
		sb.WriteByte('\n')
		sb.WriteString(input)
		if strings.TrimSpace(input) == "}" {
			return sb.String(), true
		}
	}
}

func replLine(ip *luma.Interpreter, input string) error {
	if strings.HasSuffix(input, ";") || strings.HasSuffix(input, "!") ||
		strings.HasSuffix(input, "}") {
		return ip.LoadSource(input)
	}

	var result luma.Value
	var err error
	if i := strings.LastIndex(input, ":"); i > 0 && !strings.HasSuffix(input, ")") {
		result, err = ip.Eval(input[:i], input[i+1:])
	} else {
		result, err = ip.Eval(input, "str")
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s : %s\n", valueColor.Sprint(result.Render()), typeColor.Sprint(result.TypeName()))
	return nil
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			return d
		}
	}
	return def
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return "."
}

func fatal(err error) {
	errColor.Fprintf(os.Stderr, "%s: %v\n", appName, err)
	os.Exit(1)
}
