package spot

import (
	"context"
	"testing"
	"time"

	"pricenode/internal/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_DefaultsPruneIntervalWhenInvalid(t *testing.T) {
	s := NewScheduler(nil, 0)
	require.Equal(t, defaultPruneInterval, s.pruneInterval)

	s = NewScheduler(nil, 5*time.Second)
	require.Equal(t, 5*time.Second, s.pruneInterval)
}

func TestScheduler_Shutdown_NoScheduler_ReturnsNil(t *testing.T) {
	s := NewScheduler(nil, time.Minute)
	require.NoError(t, s.Shutdown())
	require.Nil(t, s.sched)
}

func TestScheduler_Start_PollsProviderImmediately(t *testing.T) {
	venue := new(MockVenueClient)
	venue.On("TradablePairs", mock.Anything).Return([]domain.CurrencyPair{}, nil)
	venue.On("Tickers", mock.Anything, mock.Anything).Return([]domain.Ticker{}, nil)
	venue.On("Ticker", mock.Anything, mock.Anything).Return(domain.Ticker{}, nil)

	p := newTestProvider(Config{RefreshInterval: time.Hour}, venue)
	s := NewScheduler([]*Provider{p}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))
	defer func() { require.NoError(t, s.Shutdown()) }()

	// the poll job starts immediately; wait for the first snapshot
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if p.Rates() != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, p.Rates())
}

func TestScheduler_Start_And_ContextCancel_ShutsDown(t *testing.T) {
	s := NewScheduler(nil, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	require.NotNil(t, s.sched)

	cancel()

	// Wait until s.sched becomes nil (Shutdown sets it to nil)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.sched == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	require.Nil(t, s.sched, "expected scheduler to be shutdown after ctx cancel")
}

func TestScheduler_Shutdown_Idempotent(t *testing.T) {
	s := NewScheduler(nil, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.NotNil(t, s.sched)

	require.NoError(t, s.Shutdown())
	require.Nil(t, s.sched)

	require.NoError(t, s.Shutdown())
}
