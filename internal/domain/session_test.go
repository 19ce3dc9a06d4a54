package domain

import "testing"

func TestParseSamplingKind(t *testing.T) {
	for _, s := range []string{"sample-url", "first-entry"} {
		if _, err := ParseSamplingKind(s); err != nil {
			t.Errorf("ParseSamplingKind(%s) error = %v", s, err)
		}
	}
	if _, err := ParseSamplingKind("random"); err == nil {
		t.Error("ParseSamplingKind(random) should fail")
	}
}

func TestParseFailurePolicy(t *testing.T) {
	p, err := ParseFailurePolicy("abort")
	if err != nil || p != AbortOnError {
		t.Errorf("ParseFailurePolicy(abort) = %v, %v", p, err)
	}
	if _, err := ParseFailurePolicy("ignore"); err == nil {
		t.Error("ParseFailurePolicy(ignore) should fail")
	}
}

func TestCredentialProfile_String(t *testing.T) {
	if got := (CredentialProfile{Browser: "chrome", Profile: "Default"}).String(); got != "chrome:Default" {
		t.Errorf("String() = %s, want chrome:Default", got)
	}
	if got := (CredentialProfile{Browser: "firefox"}).String(); got != "firefox" {
		t.Errorf("String() = %s, want firefox", got)
	}
}

func TestOutputTemplate_Render(t *testing.T) {
	tmpl := OutputTemplate(DefaultOutputTemplate)

	tests := []struct {
		index, total int
		want         string
	}{
		{3, 9, "3 - %(title)s.%(ext)s"},
		{3, 120, "003 - %(title)s.%(ext)s"},
		{12, 12, "12 - %(title)s.%(ext)s"},
		{0, 12, DefaultOutputTemplate},
	}

	for _, tt := range tests {
		if got := tmpl.Render(tt.index, tt.total); got != tt.want {
			t.Errorf("Render(%d, %d) = %q, want %q", tt.index, tt.total, got, tt.want)
		}
	}
}

func TestProgressEvent_Total(t *testing.T) {
	if got := (ProgressEvent{TotalBytes: 1000, TotalBytesEstimate: 900}).Total(); got != 1000 {
		t.Errorf("Total() = %d, want 1000", got)
	}
	if got := (ProgressEvent{TotalBytesEstimate: 900}).Total(); got != 900 {
		t.Errorf("Total() = %d, want 900", got)
	}
	if got := (ProgressEvent{}).Total(); got != 0 {
		t.Errorf("Total() = %d, want 0", got)
	}
}
