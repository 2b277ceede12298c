package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nicomt/vanilla-shell/pkg/eval"
)

// runInteractive reads and executes lines from a raw-mode terminal until the
// shell exits or the input closes.
func runInteractive(sh *eval.Shell) (int, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return 1, err
	}
	defer term.Restore(fd, oldState)

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(screen, sh.Prompt())

	savedStdout := stdout
	stdout = t
	defer func() { stdout = savedStdout }()

	hist := openHistory()
	if hist != nil {
		defer hist.Close()
	}

	for sh.IsRunning() {
		t.SetPrompt(sh.Prompt())
		line, err := t.ReadLine()
		if err != nil { // io.EOF or a closed terminal
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if hist != nil {
			if _, err := hist.AddCmd(line); err != nil {
				debugLog.Printf("history write failed: %v", err)
			}
		}
		sh.Execute(line)
	}
	return sh.LastExitCode(), nil
}

// runPiped executes stdin as a script.
func runPiped(sh *eval.Shell) (int, error) {
	src, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return 1, err
	}
	return sh.Execute(string(src)), nil
}
