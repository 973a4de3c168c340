package plain

import (
	"bufio"
	"io"
)

// ScanReader is a LineReader over a non-terminal input such as a pipe. It
// writes each prompt to out before reading.
type ScanReader struct {
	sc     *bufio.Scanner
	out    io.Writer
	prompt string
}

// NewScanReader returns a ScanReader reading lines from in.
func NewScanReader(in io.Reader, out io.Writer) *ScanReader {
	return &ScanReader{sc: bufio.NewScanner(in), out: out}
}

// SetPrompt sets the text written before the next read.
func (r *ScanReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// Readline returns the next line without its terminator, or io.EOF.
func (r *ScanReader) Readline() (string, error) {
	if r.out != nil && r.prompt != "" {
		if _, err := io.WriteString(r.out, r.prompt); err != nil {
			return "", err
		}
	}
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}
