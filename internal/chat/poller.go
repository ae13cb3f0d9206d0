package chat

import (
	"context"
	"sync"
	"time"

	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
	"github.com/freshmart/admin-console/pkg/logger"
	"github.com/freshmart/admin-console/pkg/metrics"
)

// PanelState tracks the customer panel lifecycle. Unavailable is absorbing:
// once the backend answers the conversation list with a bare 404 the feature
// is considered undeployed and polling never resumes this session.
type PanelState int

const (
	PanelInactive PanelState = iota
	PanelActive
	PanelUnavailable
)

const defaultPollInterval = 3 * time.Second

// Snapshot is one atomic view of the panel, produced at most once per poll
// cycle or user action. Renderers consume snapshots whole; there is no
// partially updated state to observe.
type Snapshot struct {
	State         PanelState
	Conversations []ConversationView
	TotalUnread   int
	ActiveID      int64
	ActiveName    string
	Timeline      []TimelineItem
	Notice        string
}

// PollerParams configure the conversation poller.
type PollerParams struct {
	Service   *Service
	Cursors   *ReadCursors
	Logger    *logger.Logger
	Metrics   *metrics.PollMetrics
	Interval  time.Duration
	Threshold time.Duration
	Now       func() time.Time
	OnUpdate  func(Snapshot)
}

// Poller owns the 3-second refresh loop behind the customer panel. The
// ticker runs only between Start and Stop; panel switches tear it down and
// a later Start acquires a fresh one.
type Poller struct {
	svc       *Service
	cursors   *ReadCursors
	logg      *logger.Logger
	metrics   *metrics.PollMetrics
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time
	onUpdate  func(Snapshot)

	mu         sync.Mutex
	state      PanelState
	activeID   int64
	activeName string
	lastList   []ConversationSummary
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewPoller builds a poller in the Inactive state.
func NewPoller(params PollerParams) (*Poller, error) {
	if params.Service == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "chat service required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	cursors := params.Cursors
	if cursors == nil {
		cursors = NewReadCursors()
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	threshold := params.Threshold
	if threshold <= 0 {
		threshold = DefaultSeparatorThreshold
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Poller{
		svc:       params.Service,
		cursors:   cursors,
		logg:      params.Logger,
		metrics:   params.Metrics,
		interval:  interval,
		threshold: threshold,
		now:       now,
		onUpdate:  params.OnUpdate,
	}, nil
}

// State returns the current panel state.
func (p *Poller) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// ActiveID returns the currently open conversation, zero when none.
func (p *Poller) ActiveID() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeID
}

// Start brings the panel active and begins polling. Calling Start on an
// already active poller is a no-op; calling it after the feature was found
// missing fails with a terminal error.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	switch p.state {
	case PanelUnavailable:
		p.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeFeatureMissing, "customer service api not deployed")
	case PanelActive:
		p.mu.Unlock()
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.state = PanelActive
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	go p.run(runCtx, done)
	return nil
}

// Stop tears the poll ticker down. Safe to call repeatedly; it leaves the
// Unavailable state untouched so the panel stays dead for the session.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	if p.state == PanelActive {
		p.state = PanelInactive
	}
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ctx = p.logg.WithPanel(ctx, "customer")
	if !p.cycle(ctx) {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logg.Debug(ctx, "chat poll loop stopped")
			return
		case <-ticker.C:
			if !p.cycle(ctx) {
				return
			}
		}
	}
}

// cycle runs one list (and, with a selection, message) refresh. It returns
// false when polling must end for good.
func (p *Poller) cycle(ctx context.Context) bool {
	items, err := p.svc.Conversations(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.metrics.IncFailure("customer")
		if pkgerrors.IsTerminal(err) {
			p.absorb(ctx, err)
			return false
		}
		p.logg.Warn(p.logg.WithField(ctx, "error", err.Error()), "conversation list refresh failed")
		p.emit(p.snapshot(nil, pkgerrors.UserMessage(err)))
		return true
	}
	p.metrics.IncCycle("customer")

	p.mu.Lock()
	p.lastList = items
	if p.activeID == 0 && len(items) > 0 {
		// First successful load: open the newest conversation and mark
		// it read before anything renders.
		p.activeID = items[0].ID
		p.activeName = items[0].CustomerName
		p.cursors.MarkRead(p.activeID, p.now())
	}
	activeID := p.activeID
	p.mu.Unlock()

	var timeline []TimelineItem
	notice := ""
	if activeID != 0 {
		messages, msgErr := p.svc.Messages(ctx, activeID)
		if msgErr != nil {
			if ctx.Err() != nil {
				return false
			}
			notice = pkgerrors.UserMessage(msgErr)
			p.logg.Warn(p.logg.WithConversationID(ctx, activeID), "message refresh failed")
		} else {
			timeline = BuildTimeline(messages, p.threshold)
		}
	}

	p.emit(p.snapshot(timeline, notice))
	return true
}

// Select opens a conversation: the read cursor advances and the unread
// marker clears immediately, without waiting for the next poll tick.
func (p *Poller) Select(ctx context.Context, conversationID int64) error {
	p.mu.Lock()
	if p.state == PanelUnavailable {
		p.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeFeatureMissing, "customer service api not deployed")
	}
	p.activeID = conversationID
	p.activeName = ""
	for _, item := range p.lastList {
		if item.ID == conversationID {
			p.activeName = item.CustomerName
			break
		}
	}
	p.cursors.MarkRead(conversationID, p.now())
	p.mu.Unlock()

	messages, err := p.svc.Messages(ctx, conversationID)
	if err != nil {
		p.emit(p.snapshot(nil, pkgerrors.UserMessage(err)))
		return err
	}
	p.emit(p.snapshot(BuildTimeline(messages, p.threshold), ""))
	return nil
}

// Send posts a staff message to the open conversation and refreshes both the
// timeline and the list from the backend. The message is never appended
// locally; the backend stays the single source of truth.
func (p *Poller) Send(ctx context.Context, content, imageURL string) error {
	p.mu.Lock()
	activeID := p.activeID
	p.mu.Unlock()
	if activeID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no conversation selected")
	}
	if err := p.svc.Send(ctx, activeID, content, imageURL); err != nil {
		return err
	}
	p.cycle(ctx)
	return nil
}

func (p *Poller) absorb(ctx context.Context, err error) {
	p.mu.Lock()
	p.state = PanelUnavailable
	p.mu.Unlock()
	p.logg.Warn(ctx, "customer service api missing, polling disabled for this session")
	p.emit(p.snapshot(nil, pkgerrors.UserMessage(err)))
}

func (p *Poller) snapshot(timeline []TimelineItem, notice string) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	views, total := DeriveUnread(p.lastList, p.cursors, p.activeID)
	return Snapshot{
		State:         p.state,
		Conversations: views,
		TotalUnread:   total,
		ActiveID:      p.activeID,
		ActiveName:    p.activeName,
		Timeline:      timeline,
		Notice:        notice,
	}
}

func (p *Poller) emit(snapshot Snapshot) {
	if p.onUpdate == nil {
		return
	}
	p.onUpdate(snapshot)
}
