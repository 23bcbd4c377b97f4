package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// RunSweeper calls Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, s Sweeper, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("expired sessions swept")
			}
		}
	}
}
