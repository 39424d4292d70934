package main

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads one line of input at a time and is where replies are printed.
type prompter interface {
	io.Writer
	ReadLine() (string, error)
	SetPrompt(p string)
	Close() error
}

// newPrompter gives line editing and history on an interactive terminal, and
// plain line reads when stdin is a pipe or file.
func newPrompter(in *os.File, out io.Writer, prompt string) (prompter, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return &linePrompter{scanner: bufio.NewScanner(in), out: out, prompt: prompt}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	t := term.NewTerminal(rw, prompt)
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}
	return &ttyPrompter{Terminal: t, fd: fd, state: state}, nil
}

type ttyPrompter struct {
	*term.Terminal
	fd    int
	state *term.State
}

func (p *ttyPrompter) Close() error { return term.Restore(p.fd, p.state) }

// linePrompter echoes the prompt so transcripts of piped sessions stay readable.
type linePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func (p *linePrompter) Write(b []byte) (int, error) { return p.out.Write(b) }

func (p *linePrompter) SetPrompt(prompt string) { p.prompt = prompt }

func (p *linePrompter) ReadLine() (string, error) {
	if _, err := io.WriteString(p.out, p.prompt); err != nil {
		return "", err
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimRight(p.scanner.Text(), "\r")
	_, _ = io.WriteString(p.out, line+"\n")
	return line, nil
}

func (p *linePrompter) Close() error { return nil }

// isExit reports whether a line ends the interactive loop.
func isExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "exit", "quit", "/q", "종료", "그만":
		return true
	}
	return false
}
