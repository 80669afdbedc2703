package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeek_IsLocked(t *testing.T) {
	now := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

	// Неделя без lock_time никогда не блокируется
	week := &Week{}
	assert.False(t, week.IsLocked(now))

	future := now.Add(time.Minute)
	week.LockTime = &future
	assert.False(t, week.IsLocked(now))

	// Момент lock_time уже считается блокировкой
	week.LockTime = &now
	assert.True(t, week.IsLocked(now))

	past := now.Add(-time.Minute)
	week.LockTime = &past
	assert.True(t, week.IsLocked(now))
}

func TestWeek_CountdownSeconds(t *testing.T) {
	now := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

	week := &Week{}
	assert.Nil(t, week.CountdownSeconds(now))

	lock := now.Add(90 * time.Second)
	week.LockTime = &lock
	assert.Equal(t, 90, *week.CountdownSeconds(now))

	// После lock_time отсчет уходит в минус, а не обнуляется
	lock = now.Add(-30 * time.Second)
	week.LockTime = &lock
	assert.Equal(t, -30, *week.CountdownSeconds(now))
}
