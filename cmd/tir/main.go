package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/sunholo/tir/internal/config"
	"github.com/sunholo/tir/internal/parser"
	"github.com/sunholo/tir/internal/prim"
	"github.com/sunholo/tir/internal/repl"
)

var (
	// Version info - set by ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"

	red  = color.New(color.FgRed).SprintFunc()
	cyan = color.New(color.FgCyan).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		configPath  = flag.String("config", "tir.yaml", "Project configuration file")
	)
	flag.Parse()

	if *versionFlag {
		printVersion()
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}

	switch command := flag.Arg(0); command {
	case "repl":
		r := repl.New(cfg, os.Stdout)
		if err := r.LoadPrelude(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		r.Run()

	case "parse":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
			fmt.Println("Usage: tir parse <file.tir>")
			os.Exit(1)
		}
		parseFile(flag.Arg(1))

	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

// parseFile builds every expression line of a file and prints it with its
// type; `name = expr` lines extend the environment.
func parseFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	defer f.Close()

	pw := prim.NewWorld()
	env := pw.Env()
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		name := ""
		src := text
		if eq := strings.Index(text, "="); eq > 0 {
			if cand := strings.TrimSpace(text[:eq]); isName(cand) {
				name = cand
				src = strings.TrimSpace(text[eq+1:])
			}
		}
		def, err := parser.Parse(pw.World, src, env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %s:%d: %v\n", red("Error"), path, line, err)
			os.Exit(1)
		}
		if name != "" {
			env[name] = def
			fmt.Printf("%s = %s : %s\n", bold(name), def, cyan(def.Type().String()))
		} else {
			fmt.Printf("%s : %s\n", def, cyan(def.Type().String()))
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		ok := r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
		if !ok {
			return false
		}
	}
	return true
}

func printVersion() {
	fmt.Printf("tir %s (%s, built %s)\n", Version, Commit, BuildTime)
}

func printHelp() {
	fmt.Println(bold("tir") + " — dependently-typed IR workbench")
	fmt.Println()
	fmt.Println("Usage: tir [flags] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  repl            Interactive session")
	fmt.Println("  parse <file>    Build each line of a file and print it")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  --config path   Project file (default tir.yaml)")
	fmt.Println("  --version       Print version")
}
