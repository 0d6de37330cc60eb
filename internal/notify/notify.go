package notify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Console writes notices to a terminal stream. The duration is what a host
// with timed notices would display it for; on a terminal it is only logged.
type Console struct {
	out io.Writer
}

// NewConsole creates a notifier writing to w, defaulting to stderr.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{out: w}
}

// Notify shows a one-line notice.
func (c *Console) Notify(message string, d time.Duration) {
	fmt.Fprintln(c.out, message)
	log.Debug().Dur("duration", d).Str("notice", message).Msg("notice shown")
}
