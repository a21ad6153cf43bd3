// Package cli is the interactive console front end. It reads one line per
// prompt from an io.Reader and writes every message to an io.Writer, so a
// scripted session behaves exactly like a person at the keyboard.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Console pairs the line reader with the output writer.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Prompt prints label and returns the next input line without its line
// ending. ok is false once input is exhausted.
func (c *Console) Prompt(label string) (line string, ok bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false
	}
	return strings.TrimRight(c.in.Text(), "\r"), true
}

func (c *Console) Println(a ...any) { fmt.Fprintln(c.out, a...) }

func (c *Console) Printf(format string, a ...any) { fmt.Fprintf(c.out, format, a...) }
