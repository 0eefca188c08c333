package fraud

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSimulatedOracle_RejectsBots(t *testing.T) {
	oracle := NewSimulatedOracle(SimulatedConfig{
		MinLatency:  0,
		MaxLatency:  time.Millisecond,
		ValidRate:   1.0,
		FailureRate: 0,
	}, zap.NewNop())

	valid, err := oracle.Check(context.Background(), Signal{
		ClickID:   1,
		UserAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
	})
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSimulatedOracle_AcceptsBrowserWhenValidRateIsOne(t *testing.T) {
	oracle := NewSimulatedOracle(SimulatedConfig{
		MinLatency:  0,
		MaxLatency:  time.Millisecond,
		ValidRate:   1.0,
		FailureRate: 0,
	}, zap.NewNop())

	valid, err := oracle.Check(context.Background(), Signal{
		ClickID:   1,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	})
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestSimulatedOracle_TimesOut(t *testing.T) {
	oracle := NewSimulatedOracle(SimulatedConfig{
		MinLatency: time.Minute,
		MaxLatency: time.Minute,
		ValidRate:  1.0,
	}, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := oracle.Check(ctx, Signal{ClickID: 1})
	assert.ErrorIs(t, err, ErrCheckTimeout)
}

func TestSimulatedOracle_AlwaysFails(t *testing.T) {
	oracle := NewSimulatedOracle(SimulatedConfig{
		MinLatency:  0,
		MaxLatency:  time.Millisecond,
		ValidRate:   1.0,
		FailureRate: 1.0,
	}, zap.NewNop())

	_, err := oracle.Check(context.Background(), Signal{ClickID: 1})
	assert.Error(t, err)
}
