package timespan

import (
	"context"
	"time"
)

// Ticker emits the formatted elapsed duration of an in-progress activity on
// every interval until ctx is cancelled, then closes the channel. Callers
// that lose interest must cancel the context or the timer leaks.
func Ticker(ctx context.Context, date, start string, interval time.Duration) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case out <- Elapsed(date, start, now):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
