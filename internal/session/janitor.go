package session

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.sweep(s.now()); n > 0 {
					log.Debug().Int("evicted", n).Msg("session janitor sweep")
				}
			}
		}
	}()
}

// sweep drops empty slots and resolved sessions older than the TTL. Slots
// busy with an operation are skipped until the next tick.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for chatID, sl := range s.slots {
		if !sl.mu.TryLock() {
			continue
		}
		sess := sl.session
		expired := sess == nil || (!sess.Active() && now.Sub(sess.ResolvedAt) >= s.ttl)
		if expired {
			sl.evicted = true
			sl.session = nil
			delete(s.slots, chatID)
			evicted++
		}
		sl.mu.Unlock()
	}
	return evicted
}
