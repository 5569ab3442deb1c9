package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// ErrMaxRetries is returned by Ask once every attempt has failed its rule.
var ErrMaxRetries = errors.New("max retries reached")

// Prompter reads single-line answers, re-asking on invalid input up to a
// fixed number of attempts.
type Prompter struct {
	in         *bufio.Reader
	out        io.Writer
	logger     *zap.Logger
	maxRetries int
}

// NewPrompter returns a prompter reading from in and writing prompts to out.
// maxRetries below 1 is treated as 1.
func NewPrompter(in io.Reader, out io.Writer, logger *zap.Logger, maxRetries int) *Prompter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prompter{
		in:         bufio.NewReader(in),
		out:        out,
		logger:     logger,
		maxRetries: max(maxRetries, 1),
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is still returned; io.EOF only comes back when there is
// nothing left at all.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Line prints label and returns one line of input without validation.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return p.readLine()
}

// Ask prints label and reads until rule accepts the input or the attempts
// run out, in which case it returns ErrMaxRetries.
func (p *Prompter) Ask(label string, rule Rule) (string, error) {
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		value, err := p.Line(label)
		if err != nil {
			return "", err
		}
		if rule.Valid(value) {
			return value, nil
		}
		fmt.Fprintln(p.out, rule.Message)
		p.logger.Warn("invalid input",
			zap.String("value", value),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", p.maxRetries))
	}
	fmt.Fprintln(p.out, "Max retries reached.")
	p.logger.Error("max retries reached for input", zap.String("prompt", strings.TrimSpace(label)))
	return "", ErrMaxRetries
}
