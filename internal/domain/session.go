package domain

import "fmt"

// SamplingKind selects where the format menu is sampled from
type SamplingKind string

const (
	SampleExplicitURL SamplingKind = "sample-url"
	SampleFirstEntry  SamplingKind = "first-entry"
)

// SamplingStrategy picks the entry whose formats are offered to the user
type SamplingStrategy struct {
	Kind      SamplingKind
	SampleURL string // only for SampleExplicitURL
}

// ExplicitSampleURL samples formats from a separately supplied video URL
func ExplicitSampleURL(url string) SamplingStrategy {
	return SamplingStrategy{Kind: SampleExplicitURL, SampleURL: url}
}

// FirstEntryOfRange samples formats from the first available entry of the selected range
func FirstEntryOfRange() SamplingStrategy {
	return SamplingStrategy{Kind: SampleFirstEntry}
}

// ParseSamplingKind validates a configured sampling mode
func ParseSamplingKind(s string) (SamplingKind, error) {
	switch SamplingKind(s) {
	case SampleExplicitURL, SampleFirstEntry:
		return SamplingKind(s), nil
	}
	return "", fmt.Errorf("unknown sampling mode: %s (use sample-url or first-entry)", s)
}

// CredentialProfile names a browser profile to borrow cookies from
type CredentialProfile struct {
	Browser string
	Profile string
}

// String renders the profile as browser:profile
func (c CredentialProfile) String() string {
	if c.Profile == "" {
		return c.Browser
	}
	return c.Browser + ":" + c.Profile
}

// FailurePolicy decides what a failed download does to the rest of the batch
type FailurePolicy string

const (
	ContinueOnError FailurePolicy = "continue"
	AbortOnError    FailurePolicy = "abort"
)

// ParseFailurePolicy validates a configured failure policy
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case ContinueOnError, AbortOnError:
		return FailurePolicy(s), nil
	}
	return "", fmt.Errorf("unknown failure policy: %s (use continue or abort)", s)
}
