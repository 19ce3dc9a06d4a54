package domain

import "strings"

// FormatDescriptor is one downloadable media-stream option of an entry
type FormatDescriptor struct {
	ID         string
	Resolution string // empty for audio-only streams
	Ext        string
	Note       string
	VCodec     string
}

// HasVideo reports whether the stream carries a video track.
// Unknown codecs count as video, only an explicit "none" excludes the stream.
func (f FormatDescriptor) HasVideo() bool {
	return f.VCodec != "none"
}

// Label renders the descriptor as "{id} - {resolution|audio} - {ext} - {note}"
func (f FormatDescriptor) Label() string {
	resolution := f.Resolution
	if resolution == "" {
		resolution = "audio"
	}
	return strings.Join([]string{f.ID, resolution, f.Ext, f.Note}, " - ")
}

// Entry is one video of a playlist
type Entry struct {
	Index   int // 1-based playlist position, 0 when unknown
	Title   string
	PageURL string
	Formats []FormatDescriptor
}

// EligibleFormats returns the video-bearing formats in the order the gateway reported them
func (e *Entry) EligibleFormats() []FormatDescriptor {
	var eligible []FormatDescriptor
	for _, f := range e.Formats {
		if f.HasVideo() {
			eligible = append(eligible, f)
		}
	}
	return eligible
}

// HasFormat reports whether id is one of the entry's eligible format ids
func (e *Entry) HasFormat(id string) bool {
	for _, f := range e.EligibleFormats() {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Playlist is an ordered list of entries. Nil entries are unavailable videos.
type Playlist struct {
	ID      string
	Title   string
	URL     string
	Entries []*Entry
}

// Total returns the number of entries including unavailable ones
func (p *Playlist) Total() int {
	return len(p.Entries)
}

// DownloadRange is a 0-based half-open interval over playlist entries
type DownloadRange struct {
	Start int
	End   int
}

// Apply slices entries to the range, clamping bounds that fall outside it
func (r DownloadRange) Apply(entries []*Entry) []*Entry {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > len(entries) {
		end = len(entries)
	}
	if start >= end {
		return nil
	}
	return entries[start:end]
}
