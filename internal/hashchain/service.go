package hashchain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
	"github.com/osse101/ProvablyFair_Go/internal/event"
	"github.com/osse101/ProvablyFair_Go/internal/logger"
	"github.com/osse101/ProvablyFair_Go/internal/rng"
)

// Store persists chain state. AppendSegment must reject a segment whose Start
// is not the current link count, so two writers can never interleave.
type Store interface {
	Load(ctx context.Context) (*domain.ChainState, error)
	AppendSegment(ctx context.Context, seg domain.ChainSegment, links []string) error
	SaveNext(ctx context.Context, next int64) error
}

// IssuerLocker is implemented by stores shared between processes. Only the
// holder of the claim may issue links; release gives it up.
type IssuerLocker interface {
	ClaimIssuer(ctx context.Context) (release func(), err error)
}

// Config sizes generated segments
type Config struct {
	SegmentLength   int
	SaveInterval    int
	ExtendThreshold int64
}

// DefaultConfig returns the standard segment sizing
func DefaultConfig() Config {
	return Config{
		SegmentLength:   DefaultSegmentLength,
		SaveInterval:    DefaultSaveInterval,
		ExtendThreshold: DefaultExtendThreshold,
	}
}

// Service issues chain links and extends the chain when it runs low
type Service struct {
	store Store
	bus   event.Bus
	cfg   Config
	seed  func() (string, error)

	mu       sync.Mutex // guards state
	extendMu sync.Mutex // single appender
	state    *domain.ChainState
	lowSent  atomic.Bool
	release  func()
}

// NewService creates a service. bus may be nil, in which case running low
// is only logged and exhaustion is handled by extending inline.
func NewService(store Store, bus event.Bus, cfg Config) *Service {
	if cfg.SegmentLength < 2 {
		cfg.SegmentLength = DefaultSegmentLength
	}
	return &Service{
		store: store,
		bus:   bus,
		cfg:   cfg,
		seed:  rng.GenerateSeed,
	}
}

// Init loads persisted state, generating the first segment when there is none
func (s *Service) Init(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if locker, ok := s.store.(IssuerLocker); ok {
		release, err := locker.ClaimIssuer(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgIssuerClaimed, err)
		}
		s.mu.Lock()
		s.release = release
		s.mu.Unlock()
	}

	state, err := s.store.Load(ctx)
	if err != nil {
		s.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadChain, err)
	}

	s.mu.Lock()
	if state == nil {
		state = &domain.ChainState{}
	}
	s.state = state
	s.mu.Unlock()

	if len(state.Segments) == 0 {
		if _, err := s.Extend(ctx); err != nil {
			s.Close()
			return err
		}
		return nil
	}

	log.Info(LogMsgChainLoaded, "segments", len(state.Segments), "next", state.Next, "remaining", state.Remaining())
	return nil
}

// Next issues the next unrevealed link together with its predecessor
func (s *Service) Next(ctx context.Context) (domain.ChainLink, error) {
	link, err := s.next(ctx)
	if errors.Is(err, domain.ErrChainExhausted) {
		logger.FromContext(ctx).Warn(LogMsgChainExhausted)
		if _, err := s.Extend(ctx); err != nil {
			return domain.ChainLink{}, err
		}
		link, err = s.next(ctx)
	}
	if err != nil {
		return domain.ChainLink{}, err
	}

	s.checkLow(ctx)
	return link, nil
}

func (s *Service) next(ctx context.Context) (domain.ChainLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil || len(s.state.Segments) == 0 {
		return domain.ChainLink{}, domain.ErrChainEmpty
	}

	idx := s.state.Next
	seg, ok := s.state.SegmentFor(idx)
	if ok && idx == seg.Start {
		idx++
	}
	if idx >= int64(len(s.state.Links)) {
		return domain.ChainLink{}, domain.ErrChainExhausted
	}
	if seg, ok = s.state.SegmentFor(idx); !ok {
		return domain.ChainLink{}, domain.ErrChainExhausted
	}

	if err := s.store.SaveNext(ctx, idx+1); err != nil {
		return domain.ChainLink{}, fmt.Errorf("%s: %w", ErrMsgFailedToSaveNext, err)
	}
	s.state.Next = idx + 1

	return domain.ChainLink{
		OrderIndex: idx,
		Hash:       s.state.Links[idx],
		Prev:       s.state.Links[idx-1],
		Segment:    seg.Index,
	}, nil
}

func (s *Service) checkLow(ctx context.Context) {
	remaining := s.Remaining()
	if remaining >= s.cfg.ExtendThreshold || !s.lowSent.CompareAndSwap(false, true) {
		return
	}

	logger.FromContext(ctx).Info(LogMsgChainLow, "remaining", remaining, "threshold", s.cfg.ExtendThreshold)
	if s.bus == nil {
		s.lowSent.Store(false)
		return
	}
	if err := s.bus.Publish(ctx, event.NewChainLowEvent(remaining, s.cfg.ExtendThreshold)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgChainExtendFailed, "error", err)
		s.lowSent.Store(false)
	}
}

// Extend appends a segment generated from a fresh secret seed. Appends are
// serialized; earlier segments are never rewritten.
func (s *Service) Extend(ctx context.Context) (domain.ChainSegment, error) {
	s.extendMu.Lock()
	defer s.extendMu.Unlock()

	seed, err := s.seed()
	if err != nil {
		return domain.ChainSegment{}, err
	}
	links, err := Generate(seed, s.cfg.SegmentLength, s.cfg.SaveInterval, nil)
	if err != nil {
		return domain.ChainSegment{}, err
	}

	s.mu.Lock()
	if s.state == nil {
		s.state = &domain.ChainState{}
	}
	seg := domain.ChainSegment{
		Index:     len(s.state.Segments),
		Start:     int64(len(s.state.Links)),
		Length:    len(links),
		FinalHash: links[0],
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.AppendSegment(ctx, seg, links); err != nil {
		s.mu.Unlock()
		return domain.ChainSegment{}, fmt.Errorf("%s: %w", ErrMsgFailedToAppendSegment, err)
	}
	s.state.Links = append(s.state.Links, links...)
	s.state.Segments = append(s.state.Segments, seg)
	s.mu.Unlock()

	s.lowSent.Store(false)
	logger.FromContext(ctx).Info(LogMsgChainGenerated, "segment", seg.Index, "start", seg.Start, "length", seg.Length, "final_hash", seg.FinalHash)

	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewChainExtendedEvent(seg)); err != nil {
			logger.FromContext(ctx).Warn(LogMsgChainExtendFailed, "error", err)
		}
	}
	return seg, nil
}

// ExtendIfLow appends a segment only while remaining links are below the threshold
func (s *Service) ExtendIfLow(ctx context.Context) error {
	if s.Remaining() >= s.cfg.ExtendThreshold {
		s.lowSent.Store(false)
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, extendTimeout)
	defer cancel()
	_, err := s.Extend(ctx)
	return err
}

// Remaining returns the count of links that can still be issued
func (s *Service) Remaining() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return 0
	}
	return s.state.Remaining()
}

// Commitment returns the public view of the chain. FinalHash is the newest
// segment's commitment.
func (s *Service) Commitment() domain.Commitment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return domain.Commitment{}
	}
	c := domain.Commitment{
		Segments:  append([]domain.ChainSegment(nil), s.state.Segments...),
		Next:      s.state.Next,
		Remaining: s.state.Remaining(),
	}
	if n := len(c.Segments); n > 0 {
		c.FinalHash = c.Segments[n-1].FinalHash
	}
	return c
}

// Revealed returns the issued links of one segment, commitment first
func (s *Service) Revealed(segment int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil || segment < 0 || segment >= len(s.state.Segments) {
		return nil, fmt.Errorf("%w: segment %d", domain.ErrInvalidInput, segment)
	}
	seg := s.state.Segments[segment]
	end := seg.End()
	if s.state.Next < end {
		end = s.state.Next
	}
	if end <= seg.Start {
		end = seg.Start + 1
	}
	return append([]string(nil), s.state.Links[seg.Start:end]...), nil
}

// VerifyAll checks every segment against its recorded commitment. Links are
// append-only, so a capped view taken under mu stays valid while Extend runs.
func (s *Service) VerifyAll(ctx context.Context) error {
	s.mu.Lock()
	if s.state == nil || len(s.state.Segments) == 0 {
		s.mu.Unlock()
		return domain.ErrChainEmpty
	}
	n := len(s.state.Links)
	snapshot := &domain.ChainState{
		Links:    s.state.Links[:n:n],
		Segments: append([]domain.ChainSegment(nil), s.state.Segments...),
		Next:     s.state.Next,
	}
	s.mu.Unlock()
	return VerifyState(snapshot)
}

// Close gives up the issuer claim taken by Init. Safe to call more than once.
func (s *Service) Close() {
	s.mu.Lock()
	release := s.release
	s.release = nil
	s.mu.Unlock()
	if release != nil {
		release()
	}
}

// VerifyState checks each segment of a persisted chain independently
func VerifyState(state *domain.ChainState) error {
	for _, seg := range state.Segments {
		if seg.End() > int64(len(state.Links)) {
			return fmt.Errorf("%w: segment %d truncated", domain.ErrChainMismatch, seg.Index)
		}
		links := state.Links[seg.Start:seg.End()]
		if links[0] != seg.FinalHash {
			return fmt.Errorf("%w: segment %d commitment", domain.ErrChainMismatch, seg.Index)
		}
		if err := Verify(links); err != nil {
			return fmt.Errorf("segment %d: %w", seg.Index, err)
		}
	}
	return nil
}
