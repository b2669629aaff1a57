package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Stdio struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

func NewStdio() IO {
	return &Stdio{
		in:     os.Stdin,
		out:    os.Stdout,
		reader: newReader(os.Stdin),
	}
}

func newReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(r)
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	// Приглашение имеет смысл только в терминале
	if s.Interactive() {
		s.Printf("%s", prompt)
	}
	input, err := s.reader.ReadString('\n')
	if err != nil {
		// последняя строка без перевода строки
		if err == io.EOF && input != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) Interactive() bool {
	return term.IsTerminal(int(s.in.Fd()))
}
