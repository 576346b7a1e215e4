package offline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMonitor_Transitions(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	m := NewMonitor(true, logger)

	assert.True(t, m.Online())
	assert.False(t, m.LastOnlineAt().IsZero())

	m.HandleOffline()
	assert.False(t, m.Online())

	m.HandleOnline()
	assert.True(t, m.Online())
}

func TestMonitor_Listeners(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	m := NewMonitor(false, logger)

	fired := 0
	m.Subscribe("test", func() { fired++ })

	// Listeners fire only on the offline-to-online edge
	m.HandleOnline()
	assert.Equal(t, 1, fired)

	// A repeated online report is collapsed
	m.HandleOnline()
	assert.Equal(t, 1, fired)

	m.HandleOffline()
	m.HandleOnline()
	assert.Equal(t, 2, fired)
}

func TestMonitor_Unsubscribe(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	m := NewMonitor(false, logger)

	fired := 0
	m.Subscribe("test", func() { fired++ })
	m.Unsubscribe("test")

	m.HandleOnline()
	assert.Zero(t, fired)
}

func TestMonitor_NeverOnline(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	m := NewMonitor(false, logger)

	assert.False(t, m.Online())
	assert.True(t, m.LastOnlineAt().IsZero())
}

func TestMonitor_RepeatedOfflineCollapsed(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	m := NewMonitor(true, logger)

	m.HandleOffline()
	m.HandleOffline()
	assert.False(t, m.Online())
}
