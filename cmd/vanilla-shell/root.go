package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nicomt/vanilla-shell/pkg/builtins"
	"github.com/nicomt/vanilla-shell/pkg/diag"
	"github.com/nicomt/vanilla-shell/pkg/env"
	"github.com/nicomt/vanilla-shell/pkg/eval"
	"github.com/nicomt/vanilla-shell/pkg/histstore"
	"github.com/nicomt/vanilla-shell/pkg/parse"
	"github.com/nicomt/vanilla-shell/pkg/registry"
	"github.com/nicomt/vanilla-shell/pkg/vfs"
)

var (
	flagCommand   string
	flagRcFile    string
	flagNoRc      bool
	flagHistory   string
	flagParseOnly bool
)

// debugLog is enabled by setting VANILLA_SHELL_DEBUG_LOG in the host
// environment.
var debugLog = newDebugLog()

func newDebugLog() *log.Logger {
	w := io.Discard
	if os.Getenv("VANILLA_SHELL_DEBUG_LOG") != "" {
		w = os.Stderr
	}
	return log.New(w, "vanilla-shell: ", log.LstdFlags)
}

var rootCmd = &cobra.Command{
	Use:   "vanilla-shell [script]",
	Short: "An embeddable POSIX-inspired command interpreter",
	Long: `vanilla-shell runs a POSIX-inspired command language against a sandboxed
in-memory filesystem and a registry of built-in commands.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vanilla-shell: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagCommand, "command", "c", "", "execute the given command and exit")
	rootCmd.Flags().StringVar(&flagRcFile, "rcfile", "", "startup file (default ~/.vanillashellrc.yaml)")
	rootCmd.Flags().BoolVar(&flagNoRc, "norc", false, "skip the startup file")
	rootCmd.Flags().StringVar(&flagHistory, "history", "", "persist command history to the given file")
	rootCmd.Flags().BoolVarP(&flagParseOnly, "parse-only", "n", false, "parse the input and dump the syntax tree instead of executing")
}

// dumpAST parses src and pretty-prints the resulting tree. Parse errors are
// shown with the culprit source underlined.
func dumpAST(src string) int {
	prog, err := parse.Parse("vanilla-shell", src)
	if err != nil {
		if shower, ok := err.(diag.Shower); ok {
			fmt.Fprintln(os.Stderr, shower.Show(""))
		} else {
			fmt.Fprintf(os.Stderr, "vanilla-shell: %v\n", err)
		}
		return 2
	}
	parse.PprintAST(os.Stdout, prog)
	return 0
}

func run(cmd *cobra.Command, args []string) error {
	color.NoColor = color.NoColor || !isatty.IsTerminal(os.Stdout.Fd())

	sh, err := newShell()
	if err != nil {
		return err
	}

	var code int
	switch {
	case flagCommand != "":
		debugLog.Printf("running -c command")
		if flagParseOnly {
			code = dumpAST(flagCommand)
			break
		}
		code = sh.Execute(flagCommand)
	case len(args) == 1:
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		debugLog.Printf("running script %s", args[0])
		if flagParseOnly {
			code = dumpAST(string(src))
			break
		}
		code = sh.Execute(string(src))
	case flagParseOnly:
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		code = dumpAST(string(src))
	case isatty.IsTerminal(os.Stdin.Fd()):
		code, err = runInteractive(sh)
		if err != nil {
			return err
		}
	default:
		code, err = runPiped(sh)
		if err != nil {
			return err
		}
	}
	os.Exit(code)
	return nil
}

// newShell builds a shell over a fresh in-memory filesystem, applying the
// startup file and registering the sample builtins.
func newShell() (*eval.Shell, error) {
	rc, err := loadRC()
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	builtins.RegisterAll(reg)

	seed := map[string]string{
		env.USER:     "user",
		env.HOSTNAME: "vanilla",
	}
	for name, value := range rc.Env {
		seed[name] = value
	}
	if rc.Prompt != "" {
		seed[env.PS1] = rc.Prompt
	}

	home := seed[env.HOME]
	if home == "" {
		home = "/home/user"
	}
	sh := eval.New(eval.Config{
		FS:       vfs.NewMemFSWith(home),
		Registry: reg,
		Stdout:   func(s string) { stdout.Write([]byte(s)) },
		Stderr:   func(s string) { os.Stderr.WriteString(s) },
		Env:      seed,
	})
	for name, value := range rc.Aliases {
		sh.SetAlias(name, value)
	}
	return sh, nil
}

// stdout is the shell's output sink. The interactive loop swaps it for the
// raw-mode terminal.
var stdout io.Writer = os.Stdout

func openHistory() histstore.Store {
	if flagHistory == "" {
		return nil
	}
	st, err := histstore.NewStore(flagHistory)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vanilla-shell: cannot open history %s: %v\n", flagHistory, err)
		return nil
	}
	debugLog.Printf("history session %s", st.SessionID())
	return st
}
