// Package repl is the interactive surface over the dialect world: parse a
// line, intern it, show the result and its type.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/sunholo/tir/internal/config"
	"github.com/sunholo/tir/internal/ir"
	"github.com/sunholo/tir/internal/parser"
	"github.com/sunholo/tir/internal/prim"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// REPL holds one session's world and name bindings.
type REPL struct {
	pw  *prim.World
	env parser.Env
	cfg *config.Config
	out io.Writer
}

// New builds a session over a fresh dialect world.
func New(cfg *config.Config, out io.Writer) *REPL {
	r := &REPL{pw: prim.NewWorld(), cfg: cfg, out: out}
	r.env = r.pw.Env()
	if cfg.Color != nil {
		color.NoColor = !*cfg.Color
	}
	return r
}

// Eval processes one input line: a `:command`, a `name = expr` binding, or
// an expression to build and display.
func (r *REPL) Eval(line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return true
	case strings.HasPrefix(line, ":"):
		return r.command(line)
	}

	if name, rest, ok := bindingSplit(line); ok {
		def, err := parser.Parse(r.pw.World, rest, r.env)
		if err != nil {
			fmt.Fprintf(r.out, "%s %v\n", red("error:"), err)
			return true
		}
		r.env[name] = def
		r.show(name, def)
		return true
	}

	def, err := parser.Parse(r.pw.World, line, r.env)
	if err != nil {
		fmt.Fprintf(r.out, "%s %v\n", red("error:"), err)
		return true
	}
	r.show("", def)
	return true
}

// bindingSplit recognizes a top-level `name = expr` line.
func bindingSplit(line string) (string, string, bool) {
	eq := strings.Index(line, "=")
	if eq <= 0 {
		return "", "", false
	}
	name := strings.TrimSpace(line[:eq])
	for _, r := range name {
		if !isNameRune(r) {
			return "", "", false
		}
	}
	return name, strings.TrimSpace(line[eq+1:]), true
}

func isNameRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func (r *REPL) show(name string, def *ir.Def) {
	prefix := ""
	if name != "" {
		prefix = bold(name) + " = "
	}
	if def.IsError() {
		fmt.Fprintf(r.out, "%s%s : %s\n", prefix, red(def.String()), cyan(typeString(def)))
		return
	}
	fmt.Fprintf(r.out, "%s%s : %s\n", prefix, green(def.String()), cyan(typeString(def)))
}

func typeString(def *ir.Def) string {
	if def.Type() == nil {
		return "<universe>"
	}
	return def.Type().String()
}

func (r *REPL) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return false
	case ":help", ":h":
		r.help()
	case ":type", ":t":
		rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		def, err := parser.Parse(r.pw.World, rest, r.env)
		if err != nil {
			fmt.Fprintf(r.out, "%s %v\n", red("error:"), err)
			return true
		}
		fmt.Fprintf(r.out, "%s\n", cyan(typeString(def)))
	case ":defs":
		fmt.Fprintf(r.out, "%d defs interned\n", r.pw.NumDefs())
	case ":reset":
		r.pw = prim.NewWorld()
		r.env = r.pw.Env()
		fmt.Fprintf(r.out, "%s\n", yellow("world reset"))
	default:
		fmt.Fprintf(r.out, "%s unknown command %s\n", red("error:"), fields[0])
	}
	return true
}

func (r *REPL) help() {
	fmt.Fprintln(r.out, bold("Commands:"))
	fmt.Fprintln(r.out, "  :help            Show this help")
	fmt.Fprintln(r.out, "  :type <expr>     Show the type of an expression")
	fmt.Fprintln(r.out, "  :defs            Show the interned node count")
	fmt.Fprintln(r.out, "  :reset           Start a fresh world")
	fmt.Fprintln(r.out, "  :quit            Leave")
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "  name = expr      Bind a name for the session")
}

// LoadPrelude binds every `name = expr` line of the configured prelude
// files.
func (r *REPL) LoadPrelude() error {
	for _, path := range r.cfg.Prelude {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			name, rest, ok := bindingSplit(line)
			if !ok {
				return fmt.Errorf("repl: %s: not a binding: %q", path, line)
			}
			def, err := parser.Parse(r.pw.World, rest, r.env)
			if err != nil {
				return fmt.Errorf("repl: %s: %w", path, err)
			}
			r.env[name] = def
		}
	}
	return nil
}

// Run drives the line editor until :quit or EOF.
func (r *REPL) Run() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	commands := []string{":help", ":quit", ":type", ":defs", ":reset"}
	line.SetCompleter(func(l string) (c []string) {
		if strings.HasPrefix(l, ":") {
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, l) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	if f, err := os.Open(r.cfg.History); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(r.cfg.History); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(r.out, "%s — dependently-typed IR workbench (:help for help)\n", bold("tir"))
	for {
		input, err := line.Prompt("tir> ")
		if err != nil {
			fmt.Fprintln(r.out)
			return
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}
		if !r.Eval(input) {
			return
		}
	}
}
