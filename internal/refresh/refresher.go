package refresh

import (
	"bytes"
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"yasno-outages/internal/outage"
)

// Fetcher supplies the raw schedule document.
type Fetcher interface {
	FetchSchedule(ctx context.Context) ([]byte, error)
}

// Status describes the outcome of the most recent refreshes.
type Status struct {
	LastAttempt time.Time
	LastSuccess time.Time
	LastError   error
	Intervals   int
	Issues      int
}

// Refresher periodically fetches the schedule, rebuilds the interval list and
// publishes it as a new Snapshot. Readers always see a complete snapshot; a
// failed fetch leaves the previous one in place.
type Refresher struct {
	fetcher Fetcher
	builder *outage.Builder
	period  time.Duration
	log     *log.Logger
	now     func() time.Time

	snapshot atomic.Pointer[outage.Snapshot]

	refreshMu sync.Mutex // one refresh at a time
	lastBody  []byte

	mu     sync.RWMutex
	status Status

	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
}

func New(fetcher Fetcher, builder *outage.Builder, period time.Duration, logger *log.Logger) *Refresher {
	if logger == nil {
		logger = log.Default()
	}
	return &Refresher{
		fetcher: fetcher,
		builder: builder,
		period:  period,
		log:     logger,
		now:     time.Now,
	}
}

// Begin performs a first refresh synchronously and then keeps refreshing
// every period until End is called or ctx is done. The first refresh's error
// is returned, but the loop starts regardless.
func (r *Refresher) Begin(ctx context.Context) error {
	r.stopChan = make(chan struct{})
	r.done = make(chan struct{})
	r.ticker = time.NewTicker(r.period)

	r.log.Println("[Refresher] Starting")
	err := r.Refresh(ctx)
	if err != nil {
		r.log.Printf("[Refresher] First refresh failed: %v", err)
	} else {
		r.log.Println("[Refresher] Completed first fetch")
	}
	go r.loop(ctx)
	return err
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-r.ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.log.Printf("[Refresher] Refresh failed: %v", err)
			}
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

// End stops the refresh loop and waits for it to exit.
func (r *Refresher) End() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	select {
	case <-r.stopChan:
	default:
		close(r.stopChan)
	}
	<-r.done
}

// Refresh runs one fetch and build cycle.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	attempt := r.now()
	body, err := r.fetcher.FetchSchedule(ctx)
	if err != nil {
		r.mu.Lock()
		r.status.LastAttempt = attempt
		r.status.LastError = err
		r.mu.Unlock()
		return err
	}

	if r.snapshot.Load() == nil || !bytes.Equal(body, r.lastBody) {
		res := r.builder.BuildDocument(body)
		snap := outage.NewSnapshot(res.Intervals, attempt, len(res.Issues))
		r.snapshot.Store(snap)
		r.lastBody = body
		r.log.Printf("[Refresher] Published %d outages (%d issues)", snap.Len(), snap.Issues())
	}

	snap := r.snapshot.Load()
	r.mu.Lock()
	r.status = Status{
		LastAttempt: attempt,
		LastSuccess: attempt,
		Intervals:   snap.Len(),
		Issues:      snap.Issues(),
	}
	r.mu.Unlock()
	return nil
}

// Snapshot returns the latest published snapshot, or an empty one before the
// first successful refresh. Never nil.
func (r *Refresher) Snapshot() *outage.Snapshot {
	if s := r.snapshot.Load(); s != nil {
		return s
	}
	return outage.NewSnapshot(nil, time.Time{}, 0)
}

func (r *Refresher) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}
