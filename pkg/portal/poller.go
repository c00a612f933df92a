package portal

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is how often the poller refreshes when no interval is
// given.
const DefaultPollInterval = 30 * time.Second

// NotificationSource is the slice of the gateway client the poller needs.
type NotificationSource interface {
	Notifications(ctx context.Context, userID string, unreadOnly bool, limit int) (*NotificationList, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

// Poller periodically fetches a user's notifications. A failed fetch keeps
// the previously known list rather than blanking it. Read-flips go to the
// server first and then refetch, so local state never diverges from a write
// that silently failed.
type Poller struct {
	source   NotificationSource
	userID   string
	interval time.Duration
	log      zerolog.Logger

	mu            sync.Mutex
	notifications []Notification
	unreadCount   int
	cancel        context.CancelFunc
	done          chan struct{}
}

func NewPoller(source NotificationSource, userID string, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		source:   source,
		userID:   userID,
		interval: interval,
		log:      log.With().Str("component", "poller").Logger(),
	}
}

// Start begins polling: one immediate fetch, then one per interval. It
// returns after the first fetch completes. Stop (or cancelling ctx) ends
// the loop and releases the ticker; Start after Stop is a fresh loop.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return // already running
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	p.refresh(runCtx)

	go func() {
		defer close(done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				p.refresh(runCtx)
			}
		}
	}()
}

// Stop ends the polling loop and waits for it to exit. Safe to call twice
// and required on teardown so no timer outlives the session.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// refresh fetches once. On failure the previous list stays in place.
func (p *Poller) refresh(ctx context.Context) {
	list, err := p.source.Notifications(ctx, p.userID, false, 50)
	if err != nil {
		p.log.Warn().Err(err).Msg("notification fetch failed, keeping previous list")
		return
	}

	p.mu.Lock()
	p.notifications = list.Notifications
	p.unreadCount = list.UnreadCount
	p.mu.Unlock()
}

// Notifications returns the latest successfully fetched list.
func (p *Poller) Notifications() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, len(p.notifications))
	copy(out, p.notifications)
	return out
}

func (p *Poller) UnreadCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unreadCount
}

// MarkRead flips one notification to read on the server, then refetches.
func (p *Poller) MarkRead(ctx context.Context, id string) error {
	if err := p.source.MarkNotificationRead(ctx, id); err != nil {
		return err
	}
	p.refresh(ctx)
	return nil
}

// MarkAllRead flips every notification for the user, then refetches.
func (p *Poller) MarkAllRead(ctx context.Context) error {
	if err := p.source.MarkAllNotificationsRead(ctx, p.userID); err != nil {
		return err
	}
	p.refresh(ctx)
	return nil
}
