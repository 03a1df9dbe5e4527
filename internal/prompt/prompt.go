// Package prompt implements line-oriented interactive input for the CLI.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// Reader asks questions on out and reads answers from in. Answers are
// line-oriented so tests can feed scripted input through any io.Reader.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Reader over the given input and output streams.
func New(in io.Reader, out io.Writer) *Reader {
	return &Reader{in: bufio.NewReader(in), out: out}
}

// IsInteractive reports whether in is a terminal. Non-file readers are
// never interactive.
func IsInteractive(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Input asks for a free-form value. An empty answer selects defaultValue.
func (r *Reader) Input(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(r.out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(r.out, "%s: ", label)
	}
	answer, err := r.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question. An empty answer selects the default and
// anything unrecognized re-prompts.
func (r *Reader) Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(r.out, "%s [%s]: ", label, hint)
		answer, err := r.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(r.out, "Please answer yes or no")
	}
}

// SelectIndex asks the user to pick one of count numbered items and returns
// the zero-based index. Choices are presented 1-based and anything outside
// the range re-prompts.
func (r *Reader) SelectIndex(label string, count int) (int, error) {
	if count <= 0 {
		return 0, errors.New("no items to select from")
	}
	for {
		fmt.Fprintf(r.out, "%s [1-%d]: ", label, count)
		answer, err := r.readLine()
		if err != nil {
			return 0, err
		}
		choice, convErr := strconv.Atoi(answer)
		if convErr == nil && choice >= 1 && choice <= count {
			return choice - 1, nil
		}
		fmt.Fprintf(r.out, "Please enter a number between 1 and %d\n", count)
	}
}

func (r *Reader) readLine() (string, error) {
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
