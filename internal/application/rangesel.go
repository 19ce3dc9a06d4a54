package application

import (
	"fmt"
	"strconv"

	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

// RangePolicy turns the raw start/end answers into a download range
type RangePolicy interface {
	Parse(start, end string, total int) (domain.DownloadRange, error)
}

// PermissiveRangeParsing substitutes the default for any bound that is not a plain
// number and passes the rest through unchecked.
type PermissiveRangeParsing struct{}

func (PermissiveRangeParsing) Parse(start, end string, total int) (domain.DownloadRange, error) {
	first := 1
	if n, ok := parseDigits(start); ok {
		first = n
	}
	last := total
	if n, ok := parseDigits(end); ok {
		last = n
	}
	return domain.DownloadRange{Start: first - 1, End: last}, nil
}

// StrictRangeParsing rejects malformed, out-of-range or inverted bounds.
// Empty answers still select the defaults.
type StrictRangeParsing struct{}

func (StrictRangeParsing) Parse(start, end string, total int) (domain.DownloadRange, error) {
	first, err := strictBound(start, 1)
	if err != nil {
		return domain.DownloadRange{}, err
	}
	last, err := strictBound(end, total)
	if err != nil {
		return domain.DownloadRange{}, err
	}

	if first < 1 || last > total || first > last {
		return domain.DownloadRange{}, fmt.Errorf("%w: %d-%d is outside 1-%d", domain.ErrInvalidRange, first, last, total)
	}
	return domain.DownloadRange{Start: first - 1, End: last}, nil
}

func strictBound(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, ok := parseDigits(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a video number", domain.ErrInvalidRange, s)
	}
	return n, nil
}

// ParseRangePolicy maps a configured name to a policy
func ParseRangePolicy(name string) (RangePolicy, error) {
	switch name {
	case "", "permissive":
		return PermissiveRangeParsing{}, nil
	case "strict":
		return StrictRangeParsing{}, nil
	}
	return nil, fmt.Errorf("unknown range parsing policy: %s (use permissive or strict)", name)
}

// ChooseRange asks for a 1-based start and inclusive end and returns the 0-based half-open range
func ChooseRange(p ports.Prompter, policy RangePolicy, total int) (domain.DownloadRange, error) {
	start, err := p.PromptText("Start from video number (default 1):", "")
	if err != nil {
		return domain.DownloadRange{}, err
	}
	end, err := p.PromptText("End at video number (default last):", "")
	if err != nil {
		return domain.DownloadRange{}, err
	}
	return policy.Parse(start, end, total)
}

// parseDigits accepts only unsigned decimal numbers
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
