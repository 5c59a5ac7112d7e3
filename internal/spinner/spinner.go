package spinner

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/eduardofuncao/pgenv/internal/styles"
)

var stages = []string{" ", ".", "o", "O", "@", "*"}

// Out is where the animation is drawn. Stderr keeps piped stdout clean.
var Out io.Writer = os.Stderr

// CircleWait pulses with label until done is closed or receives.
func CircleWait(done <-chan struct{}, label string) {
	animate(done, func(s string, _ time.Duration) string {
		return fmt.Sprintf("%s %s", styles.Success.Render(s), label)
	})
}

// CircleWaitWithTimer pulses with the elapsed time until done.
func CircleWaitWithTimer(done <-chan struct{}) {
	animate(done, func(s string, passed time.Duration) string {
		return fmt.Sprintf("%s %.2fs", styles.Success.Render(s), passed.Seconds())
	})
}

func animate(done <-chan struct{}, frame func(string, time.Duration) string) {
	var passed time.Duration
	for {
		for _, s := range stages {
			select {
			case <-done:
				fmt.Fprint(Out, "\r\033[2K")
				return
			default:
				fmt.Fprintf(Out, "\r%s", frame(s, passed))
				passed += 100 * time.Millisecond
				time.Sleep(100 * time.Millisecond)
			}
		}
	}
}

// Start animates in the background. An empty label shows the timer.
// The returned stop blocks until the line is cleared.
func Start(label string) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		if label == "" {
			CircleWaitWithTimer(done)
			return
		}
		CircleWait(done, label)
	}()
	return func() {
		close(done)
		<-finished
	}
}
