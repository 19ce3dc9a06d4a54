package domain

// ProgressStatus tags a progress event
type ProgressStatus string

const (
	StatusDownloading ProgressStatus = "downloading"
	StatusFinished    ProgressStatus = "finished"
	StatusError       ProgressStatus = "error"
)

// ProgressEvent is one progress report from a running download.
// Byte counts are zero when the gateway did not know them.
type ProgressEvent struct {
	Status             ProgressStatus
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
}

// Total returns the exact total when known, otherwise the estimate
func (e ProgressEvent) Total() int64 {
	if e.TotalBytes > 0 {
		return e.TotalBytes
	}
	return e.TotalBytesEstimate
}
