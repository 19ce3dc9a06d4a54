package ytdlp

import (
	"encoding/json"
	"fmt"

	"github.com/devbush/ytbatch/internal/domain"
)

type formatInfo struct {
	FormatID   string `json:"format_id"`
	VCodec     string `json:"vcodec"`
	Resolution string `json:"resolution"`
	Ext        string `json:"ext"`
	FormatNote string `json:"format_note"`
}

// videoInfo is the subset of yt-dlp's info dict that ytbatch reads.
// A playlist carries Entries; null entries are unavailable videos.
type videoInfo struct {
	Type          string       `json:"_type"`
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	WebpageURL    string       `json:"webpage_url"`
	OriginalURL   string       `json:"original_url"`
	PlaylistIndex int          `json:"playlist_index"`
	Formats       []formatInfo `json:"formats"`
	Entries       []*videoInfo `json:"entries"`
}

func decodeInfo(data []byte) (*videoInfo, error) {
	var info videoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	return &info, nil
}

func (v *videoInfo) pageURL() string {
	if v.WebpageURL != "" {
		return v.WebpageURL
	}
	return v.OriginalURL
}

func (v *videoInfo) toEntry(position int) *domain.Entry {
	index := v.PlaylistIndex
	if index == 0 {
		index = position
	}

	formats := make([]domain.FormatDescriptor, 0, len(v.Formats))
	for _, f := range v.Formats {
		formats = append(formats, domain.FormatDescriptor{
			ID:         f.FormatID,
			Resolution: f.Resolution,
			Ext:        f.Ext,
			Note:       f.FormatNote,
			VCodec:     f.VCodec,
		})
	}

	return &domain.Entry{
		Index:   index,
		Title:   v.Title,
		PageURL: v.pageURL(),
		Formats: formats,
	}
}

// toPlaylist converts the info dict; a single video becomes a one-entry playlist
func (v *videoInfo) toPlaylist(url string) *domain.Playlist {
	playlist := &domain.Playlist{
		ID:    v.ID,
		Title: v.Title,
		URL:   url,
	}

	if v.Type != "playlist" && v.Type != "multi_video" {
		playlist.Entries = []*domain.Entry{v.toEntry(1)}
		return playlist
	}

	playlist.Entries = make([]*domain.Entry, len(v.Entries))
	for i, e := range v.Entries {
		if e == nil {
			continue
		}
		playlist.Entries[i] = e.toEntry(i + 1)
	}
	return playlist
}
