package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// A TerminalPrompter asks the user for a line of input.
type TerminalPrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewTerminalPrompter creates a new TerminalPrompter.
func NewTerminalPrompter(r io.Reader, w io.Writer) *TerminalPrompter {
	return &TerminalPrompter{r: bufio.NewReader(r), w: w}
}

// Prompt shows the prompt p to the user and returns the next line read,
// without the line ending. A last line without a line ending is returned as
// is; io.EOF is returned only when there is nothing left to read.
func (tp *TerminalPrompter) Prompt(p string) (string, error) {
	fmt.Fprint(tp.w, p)
	line, err := tp.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
