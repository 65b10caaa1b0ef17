package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/portfolio-api/internal/observability"
	"github.com/noah-isme/portfolio-api/internal/repository"
)

// StoreDialer opens the backing store and returns its repository and a closer.
type StoreDialer func(ctx context.Context) (repository.ContactRepository, func(context.Context) error, error)

// StoreAvailability records whether the backing store is reachable.
// It starts unavailable and becomes available at most once; request
// outcomes never change it.
type StoreAvailability struct {
	mu     sync.RWMutex
	repo   repository.ContactRepository
	closer func(context.Context) error
}

// NewStoreAvailability returns a state with no store attached.
func NewStoreAvailability() *StoreAvailability {
	observability.ContactStoreAvailable().Set(0)
	return &StoreAvailability{}
}

// NewAvailableStore returns a state already attached to repo.
func NewAvailableStore(repo repository.ContactRepository) *StoreAvailability {
	state := NewStoreAvailability()
	state.attach(repo, nil)
	return state
}

// Available reports whether submissions are persisted.
func (a *StoreAvailability) Available() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.repo != nil
}

// Repository returns the attached repository, if any.
func (a *StoreAvailability) Repository() (repository.ContactRepository, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.repo, a.repo != nil
}

// Close releases the store connection, if one was attached.
func (a *StoreAvailability) Close(ctx context.Context) error {
	a.mu.RLock()
	closer := a.closer
	a.mu.RUnlock()

	if closer == nil {
		return nil
	}
	return closer(ctx)
}

func (a *StoreAvailability) attach(repo repository.ContactRepository, closer func(context.Context) error) bool {
	if repo == nil {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.repo != nil {
		return false
	}
	a.repo = repo
	a.closer = closer
	observability.ContactStoreAvailable().Set(1)
	return true
}

// StoreConnector performs the startup connection attempt and, when a retry
// interval is configured, keeps trying in the background until it succeeds.
type StoreConnector struct {
	dial           StoreDialer
	state          *StoreAvailability
	connectTimeout time.Duration
	retryInterval  time.Duration
	logger         zerolog.Logger
}

// NewStoreConnector constructs a connector. A zero retryInterval keeps the
// service degraded for its whole lifetime after a failed startup attempt.
func NewStoreConnector(dial StoreDialer, state *StoreAvailability, connectTimeout, retryInterval time.Duration, logger zerolog.Logger) *StoreConnector {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	return &StoreConnector{
		dial:           dial,
		state:          state,
		connectTimeout: connectTimeout,
		retryInterval:  retryInterval,
		logger:         logger.With().Str("component", "store_connector").Logger(),
	}
}

// Connect makes one connection attempt and reports whether the store is now attached.
func (c *StoreConnector) Connect(ctx context.Context) bool {
	if c.state.Available() {
		return true
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	repo, closer, err := c.dial(attemptCtx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("backing store unavailable, contact messages will not be persisted")
		return false
	}

	if !c.state.attach(repo, closer) {
		if closer != nil {
			_ = closer(context.Background())
		}
		return c.state.Available()
	}

	c.logger.Info().Msg("connected to backing store")
	return true
}

// KeepTrying retries Connect every retry interval until the store is attached
// or ctx is cancelled. It returns immediately when retries are disabled.
func (c *StoreConnector) KeepTrying(ctx context.Context) {
	if c.retryInterval <= 0 || c.state.Available() {
		return
	}

	ticker := time.NewTicker(c.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.Connect(ctx) {
				return
			}
		}
	}
}
