package commands

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const progressThrottle = 65 * time.Millisecond

// newInspectProgressBar returns a stderr progress bar for the clone
// loop, or nil when there is nothing worth animating: a single
// repository, or a stderr that is not a terminal. Callers check for
// nil before ticking.
func newInspectProgressBar(total int) *progressbar.ProgressBar {
	if total <= 1 {
		return nil
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}

	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetDescription("inspecting repositories"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(progressThrottle),
	)
}
