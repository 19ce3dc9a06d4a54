package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultOutputTemplate names files "<playlistIndex> - <title>.<ext>"
const DefaultOutputTemplate = "%(playlist_index)s - %(title)s.%(ext)s"

const indexField = "%(playlist_index)s"

// OutputTemplate is a yt-dlp output template
type OutputTemplate string

// Render fills in the playlist index, zero-padded to the width of total.
// Entries downloaded by their own URL carry no playlist index upstream, so it is substituted here.
func (t OutputTemplate) Render(index, total int) string {
	s := string(t)
	if index <= 0 || !strings.Contains(s, indexField) {
		return s
	}
	width := len(strconv.Itoa(total))
	return strings.ReplaceAll(s, indexField, fmt.Sprintf("%0*d", width, index))
}
