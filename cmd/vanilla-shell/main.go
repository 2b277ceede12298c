// Command vanilla-shell is a small host process around the embeddable shell:
// it wires the sandboxed filesystem, the sample builtins and persistent
// command history to an interactive terminal or a script.
package main

func main() {
	Execute()
}
