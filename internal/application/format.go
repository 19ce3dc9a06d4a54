package application

import (
	"fmt"
	"strings"

	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

const formatPrompt = "Select desired quality ID (e.g., 18, 22, 137):"

// FormatsOf lists the entry's video-bearing formats as menu lines, in gateway order
func FormatsOf(entry *domain.Entry) []string {
	eligible := entry.EligibleFormats()
	lines := make([]string, 0, len(eligible))
	for _, f := range eligible {
		lines = append(lines, f.Label())
	}
	return lines
}

// ChooseFormat asks the user to pick one of the entry's formats and returns its id
func ChooseFormat(p ports.Prompter, entry *domain.Entry) (string, error) {
	options := FormatsOf(entry)
	if len(options) == 0 {
		return "", fmt.Errorf("%s: %w", entry.Title, domain.ErrNoEligibleFormats)
	}

	choice, err := p.PromptChoice(formatPrompt, options)
	if err != nil {
		return "", err
	}

	// The id is the leading token of the menu line
	fields := strings.Fields(choice)
	if len(fields) == 0 {
		return "", fmt.Errorf("%s: %w", entry.Title, domain.ErrNoEligibleFormats)
	}
	return fields[0], nil
}
