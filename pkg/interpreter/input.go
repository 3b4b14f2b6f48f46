package interpreter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineReader supplies the text for input(). The prompt is shown without a
// trailing newline.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// StreamReader reads lines from an io.Reader and writes prompts to an
// io.Writer.
type StreamReader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStreamReader wraps r for line reads. Prompts go to w, which may be nil.
func NewStreamReader(r io.Reader, w io.Writer) *StreamReader {
	return &StreamReader{in: bufio.NewReader(r), out: w}
}

// ReadLine returns the next line without its line terminator. At end of
// input it returns whatever partial line was read, possibly empty, along
// with io.EOF.
func (s *StreamReader) ReadLine(prompt string) (string, error) {
	if s.out != nil && prompt != "" {
		fmt.Fprint(s.out, prompt)
	}
	line, err := s.in.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if err != nil && !errors.Is(err, io.EOF) {
		return line, fmt.Errorf("read input: %w", err)
	}
	return line, err
}
