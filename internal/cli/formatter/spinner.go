package formatter

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// StartSpinner draws message behind an animated frame on w until the
// returned stop func is called. stop clears the line and may be called
// more than once.
func StartSpinner(w io.Writer, message string) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				fmt.Fprint(w, "\r\033[K")
				return
			case <-tick.C:
				glyph := string(spinnerFrames[frame%len(spinnerFrames)])
				fmt.Fprintf(w, "\r  %s %s", StylePurple.Render(glyph), Dim(message))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-finished
		})
	}
}
