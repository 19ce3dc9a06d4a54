package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/ytbatch/internal/domain"
)

const invalidChoice = "Invalid input. Choose a valid option (number): "

// LinePrompter implements ports.Prompter over line-based terminal input
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer

	// MaxAttempts bounds the invalid answers accepted by PromptChoice; 0 retries forever
	MaxAttempts int

	labelStyle  lipgloss.Style
	optionStyle lipgloss.Style
	warnStyle   lipgloss.Style
}

// NewPrompter creates a prompter reading answers from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *LinePrompter {
	r := lipgloss.NewRenderer(out)
	return &LinePrompter{
		in:          bufio.NewReader(in),
		out:         out,
		labelStyle:  r.NewStyle().Bold(true),
		optionStyle: r.NewStyle().Foreground(lipgloss.Color("252")),
		warnStyle:   r.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// PromptChoice prints the numbered options and returns the chosen one
func (p *LinePrompter) PromptChoice(label string, options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options to choose from")
	}

	fmt.Fprintln(p.out, p.labelStyle.Render(label))
	for i, option := range options {
		fmt.Fprintln(p.out, p.optionStyle.Render(fmt.Sprintf("  %d. %s", i+1, option)))
	}
	fmt.Fprint(p.out, "Choose an option (number): ")

	attempts := 0
	for {
		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		if n, ok := choiceNumber(line); ok && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}

		attempts++
		if p.MaxAttempts > 0 && attempts >= p.MaxAttempts {
			return "", fmt.Errorf("%w: %d invalid answers", domain.ErrTooManyAttempts, attempts)
		}
		fmt.Fprint(p.out, p.warnStyle.Render(invalidChoice))
	}
}

// PromptText returns the trimmed answer, or def when it is empty
func (p *LinePrompter) PromptText(label string, def string) (string, error) {
	fmt.Fprint(p.out, p.labelStyle.Render(label)+" ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// choiceNumber accepts unsigned decimal digits only
func choiceNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// readLine returns the next trimmed line. A final line without newline is still an answer.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
