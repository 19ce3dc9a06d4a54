package domain

import "errors"

var (
	// Playlist and entry errors
	ErrNoSampleEntry     = errors.New("no available entry in the selected range to sample formats from")
	ErrNoEligibleFormats = errors.New("no video formats available")
	ErrVideoUnavailable  = errors.New("video is private or unavailable")

	// Network, rate limiting and authentication errors
	ErrRateLimited  = errors.New("rate limited by the video platform")
	ErrAuthRequired = errors.New("sign-in required, configure a browser credential profile")

	// Input errors
	ErrInvalidRange    = errors.New("invalid range")
	ErrTooManyAttempts = errors.New("too many invalid answers")

	// Dependency errors
	ErrYtDlpNotFound = errors.New("yt-dlp not found")
)
