package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/orayew2002/rast-attendance/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRunStore(t *testing.T) {
	s := NewRunStore()

	_, err := s.Current()
	assert.ErrorIs(t, err, domain.ErrNoRun)

	require.NoError(t, s.Begin())
	assert.ErrorIs(t, s.Begin(), domain.ErrRunInProgress)

	run := &Run{ID: "r1", Result: &domain.Result{}}
	s.Finish(run)

	got, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, run, got)

	require.NoError(t, s.Begin())
	_, err = s.Current()
	assert.ErrorIs(t, err, domain.ErrNoRun, "a new run discards the previous one")
	s.Finish(nil)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "192.0.2.10", clientIP(req))

	req.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}

func TestIPLimiterSweep(t *testing.T) {
	ipl := newIPLimiter(rate.Every(time.Minute), 1)
	now := time.Now()

	first := ipl.getLimiter("a", now)
	assert.Same(t, first, ipl.getLimiter("a", now.Add(time.Minute)))

	ipl.getLimiter("b", now.Add(30*time.Minute))
	assert.NotContains(t, ipl.limiters, "a")
	assert.Contains(t, ipl.limiters, "b")
}
