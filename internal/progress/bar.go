package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// barSink renders progress with a terminal progress bar.
type barSink struct {
	bar         *progressbar.ProgressBar
	description string
}

// Bar returns a factory rendering a progress bar to w.
//
// With leave=false the bar is cleared once the pass completes, so only the
// caller's summary line remains on screen.
func Bar(w io.Writer, leave bool) Factory {
	return func(total int, description string) Sink {
		opts := []progressbar.Option{
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("batch"),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionSetRenderBlankState(true),
		}
		if !leave {
			opts = append(opts, progressbar.OptionClearOnFinish())
		}
		return &barSink{
			bar:         progressbar.NewOptions(total, opts...),
			description: description,
		}
	}
}

func (s *barSink) Advance(fields Fields) {
	if len(fields) > 0 {
		desc := fields.String()
		if s.description != "" {
			desc = s.description + " " + desc
		}
		s.bar.Describe(desc)
	}
	_ = s.bar.Add(1)
}

func (s *barSink) Close() error {
	return s.bar.Finish()
}
