package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/expressx/internal/adapters/watcher"
	"go.trai.ch/expressx/internal/core/domain"
)

type recorder struct {
	mu     sync.Mutex
	events []domain.FileEvent
}

func (r *recorder) emit(ev domain.FileEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []domain.FileEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.FileEvent, len(r.events))
	copy(out, r.events)
	return out
}

func TestSettler_SingleChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		s := watcher.NewSettler(100*time.Millisecond, rec.emit)

		held := s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/a.ts"})
		assert.False(t, held)

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		events := rec.snapshot()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventChanged, events[0].Kind)
		assert.Equal(t, "/p/src/a.ts", events[0].Path)
		assert.Equal(t, 0, s.Pending())
	})
}

func TestSettler_ChunkedWritesCollapse(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		s := watcher.NewSettler(100*time.Millisecond, rec.emit)

		s.Add(domain.FileEvent{Kind: domain.EventAdded, Path: "/p/src/a.ts"})
		for range 5 {
			time.Sleep(40 * time.Millisecond)
			s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/a.ts"})
		}

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		events := rec.snapshot()
		require.Len(t, events, 1)
		assert.Equal(t, domain.EventAdded, events[0].Kind)
	})
}

func TestSettler_PathsSettleIndependently(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		s := watcher.NewSettler(100*time.Millisecond, rec.emit)

		s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/a.ts"})
		time.Sleep(60 * time.Millisecond)
		s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/b.ts"})

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		events := rec.snapshot()
		require.Len(t, events, 1)
		assert.Equal(t, "/p/src/a.ts", events[0].Path)

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.snapshot(), 2)
	})
}

func TestSettler_DeleteCancelsPending(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		s := watcher.NewSettler(100*time.Millisecond, rec.emit)

		s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/a.ts"})
		immediate := s.Add(domain.FileEvent{Kind: domain.EventDeleted, Path: "/p/src/a.ts"})
		assert.True(t, immediate)
		assert.Equal(t, 0, s.Pending())

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())
	})
}

func TestSettler_ZeroWindow(t *testing.T) {
	rec := &recorder{}
	s := watcher.NewSettler(0, rec.emit)

	assert.True(t, s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/a.ts"}))
	assert.Equal(t, 0, s.Pending())
}

func TestSettler_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		s := watcher.NewSettler(100*time.Millisecond, rec.emit)

		s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/a.ts"})
		s.Add(domain.FileEvent{Kind: domain.EventChanged, Path: "/p/src/b.ts"})
		assert.Equal(t, 2, s.Pending())

		s.Stop()
		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.snapshot())
	})
}
