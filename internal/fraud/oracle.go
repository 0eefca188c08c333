package fraud

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"LinkRewards-Backend/pkg/useragent"

	"go.uber.org/zap"
)

// ErrCheckTimeout is returned when a fraud check does not complete within
// the caller's deadline.
var ErrCheckTimeout = errors.New("fraud check timed out")

// Signal carries the click context the oracle may inspect.
type Signal struct {
	ClickID   int64
	LinkID    int64
	UserAgent string
	IPAddress string
}

// Oracle decides, after a variable delay, whether a click is reward-eligible.
// It may fail instead of answering; callers must treat latency as unbounded
// beyond their own timeout.
type Oracle interface {
	Check(ctx context.Context, sig Signal) (bool, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(ctx context.Context, sig Signal) (bool, error)

func (f OracleFunc) Check(ctx context.Context, sig Signal) (bool, error) {
	return f(ctx, sig)
}

// SimulatedConfig controls the stand-in oracle used until a real fraud
// service is wired in.
type SimulatedConfig struct {
	MinLatency  time.Duration
	MaxLatency  time.Duration
	ValidRate   float64 // probability a non-bot click is ruled valid
	FailureRate float64 // probability the check errors out instead of answering
}

// DefaultSimulatedConfig returns the default simulation parameters.
func DefaultSimulatedConfig() SimulatedConfig {
	return SimulatedConfig{
		MinLatency:  50 * time.Millisecond,
		MaxLatency:  2 * time.Second,
		ValidRate:   0.9,
		FailureRate: 0.02,
	}
}

// SimulatedOracle emulates an external fraud service: it sleeps a randomized
// interval, deterministically rejects bot User-Agents, and otherwise answers
// probabilistically. It occasionally fails outright, which exercises the
// caller's failure containment.
type SimulatedOracle struct {
	cfg        SimulatedConfig
	classifier *useragent.Classifier
	log        *zap.Logger
}

// NewSimulatedOracle creates a simulated fraud oracle.
func NewSimulatedOracle(cfg SimulatedConfig, log *zap.Logger) *SimulatedOracle {
	return &SimulatedOracle{
		cfg:        cfg,
		classifier: useragent.NewClassifier(),
		log:        log,
	}
}

// Check implements the Oracle interface.
func (o *SimulatedOracle) Check(ctx context.Context, sig Signal) (bool, error) {
	delay := o.cfg.MinLatency
	if spread := o.cfg.MaxLatency - o.cfg.MinLatency; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return false, ErrCheckTimeout
	}

	if o.cfg.FailureRate > 0 && rand.Float64() < o.cfg.FailureRate {
		return false, errors.New("fraud check unavailable")
	}

	if o.classifier.IsBot(sig.UserAgent) {
		o.log.Debug("rejected bot click",
			zap.Int64("click_id", sig.ClickID),
			zap.String("user_agent", sig.UserAgent))
		return false, nil
	}

	return rand.Float64() < o.cfg.ValidRate, nil
}
