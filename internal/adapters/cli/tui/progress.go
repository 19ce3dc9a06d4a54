package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

const barWidth = 40

// positionMsg moves the bar to an absolute byte position
type positionMsg int64

// downloadModel is the bubbletea model of a single download bar.
// It is driven synchronously through Update instead of a tea.Program so that
// rendering stays on the goroutine reading yt-dlp output.
type downloadModel struct {
	bar      progress.Model
	total    int64
	position int64
}

func newDownloadModel(total int64) downloadModel {
	return downloadModel{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		total: total,
	}
}

func (m downloadModel) Init() tea.Cmd {
	return nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case positionMsg:
		m.position = int64(msg)
	case tea.WindowSizeMsg:
		if w := msg.Width / 2; w > 10 {
			m.bar.Width = w
		}
	}
	return m, nil
}

func (m downloadModel) View() string {
	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.position) / float64(m.total)
	}
	if ratio > 1 {
		ratio = 1
	}
	return fmt.Sprintf("%s %s / %s", m.bar.ViewAs(ratio), FormatBytes(m.position), FormatBytes(m.total))
}

// ProgressReporter renders the progress events of one download as a bar.
// The bar is bound to the first usable total and closed on the finished or error event.
type ProgressReporter struct {
	out     io.Writer
	model   downloadModel
	started bool
	done    bool
}

// NewProgressReporter creates a reporter writing to out
func NewProgressReporter(out io.Writer) *ProgressReporter {
	return &ProgressReporter{out: out}
}

// OnProgress implements ports.ProgressSink
func (r *ProgressReporter) OnProgress(event domain.ProgressEvent) {
	if r.done {
		return
	}

	switch event.Status {
	case domain.StatusDownloading:
		// NA counts arrive as zero; such events neither start nor move the bar
		total := event.Total()
		if total <= 0 {
			return
		}
		if !r.started {
			r.model = newDownloadModel(total)
			r.started = true
		}
		r.update(event.DownloadedBytes)
		r.render()
	case domain.StatusFinished:
		if !r.started {
			return
		}
		r.update(r.model.total)
		r.render()
		fmt.Fprintln(r.out)
		r.done = true
	case domain.StatusError:
		// leave the partial bar in place and end its line
		if r.started {
			fmt.Fprintln(r.out)
		}
		r.done = true
	}
}

func (r *ProgressReporter) update(position int64) {
	m, _ := r.model.Update(positionMsg(position))
	r.model = m.(downloadModel)
}

func (r *ProgressReporter) render() {
	fmt.Fprint(r.out, "\r"+r.model.View())
}

// Started reports whether a bar was shown
func (r *ProgressReporter) Started() bool {
	return r.started
}

// Position returns the last rendered byte position
func (r *ProgressReporter) Position() int64 {
	return r.model.position
}

// Total returns the byte total the bar is bound to
func (r *ProgressReporter) Total() int64 {
	return r.model.total
}

// ProgressSinks returns a factory creating one reporter per download, or no-op sinks when quiet
func ProgressSinks(out io.Writer, quiet bool) ports.ProgressSinkFactory {
	if quiet {
		return func() ports.ProgressSink { return ports.NopSink }
	}
	return func() ports.ProgressSink { return NewProgressReporter(out) }
}
