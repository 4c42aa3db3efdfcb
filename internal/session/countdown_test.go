package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdownExpires(t *testing.T) {
	c := NewCountdown(3, time.Millisecond)

	var mu sync.Mutex
	var ticks []int
	expired := make(chan struct{})

	c.OnTick(func(remaining int) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	})
	c.OnExpire(func() { close(expired) })
	c.Start()

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("countdown never expired")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{2, 1, 0}, ticks)
	assert.Equal(t, 0, c.Remaining())
}

func TestCountdownWarnsOnce(t *testing.T) {
	c := NewCountdown(4, time.Millisecond)
	c.warnAt = 2

	var mu sync.Mutex
	warns := 0
	expired := make(chan struct{})

	c.OnWarn(func() {
		mu.Lock()
		warns++
		mu.Unlock()
	})
	c.OnExpire(func() { close(expired) })
	c.Start()

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("countdown never expired")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, warns, "warning should fire exactly once")
}

func TestCountdownStop(t *testing.T) {
	c := NewCountdown(1000, time.Millisecond)

	expired := make(chan struct{})
	c.OnExpire(func() { close(expired) })
	c.Start()

	time.Sleep(5 * time.Millisecond)
	c.Stop()
	c.Stop() // idempotent

	select {
	case <-expired:
		t.Fatal("expire fired after Stop")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Greater(t, c.Remaining(), 0)
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{2700, "45:00"},
		{305, "5:05"},
		{59, "0:59"},
		{0, "0:00"},
		{-3, "0:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRemaining(tc.seconds))
	}
}
