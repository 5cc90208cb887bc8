// Package reconciler keeps a decorator cache in agreement with the file
// system, in bulk at startup and incrementally per watch event.
package reconciler

import (
	"slices"

	"go.trai.ch/expressx/internal/core/domain"
)

// Effect is a side effect requested by Apply.
type Effect uint8

const (
	// EffectPersist asks for the cache to be written to disk.
	EffectPersist Effect = iota + 1
	// EffectRestart asks for a debounced restart of the application.
	EffectRestart
)

// Change describes what Apply did to the entry of the event's path.
type Change uint8

const (
	// ChangeNone leaves the cache untouched.
	ChangeNone Change = iota
	// ChangeInserted adds a new entry.
	ChangeInserted
	// ChangeUpdated refreshes the metadata of an existing entry.
	ChangeUpdated
	// ChangeRemoved drops an entry.
	ChangeRemoved
)

// String implements fmt.Stringer.
func (c Change) String() string {
	switch c {
	case ChangeInserted:
		return "added"
	case ChangeUpdated:
		return "updated"
	case ChangeRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}

// Observation is the state of an event's file gathered after the event.
type Observation struct {
	// Path is the cache key of the file.
	Path string
	// Found is false when the file could not be statted or read.
	Found     bool
	Meta      domain.FileMeta
	Decorated bool
	// Hash is the decorator digest, empty when content hashing is disabled.
	Hash string
}

// Decision is the outcome of applying one event.
type Decision struct {
	// Cache is the next cache state. It is the input cache itself when Change is ChangeNone.
	Cache   *domain.DecoratorCache
	Change  Change
	Effects []Effect
}

// Has reports whether the decision requests effect.
func (d Decision) Has(effect Effect) bool {
	return slices.Contains(d.Effects, effect)
}

// Apply computes the cache that results from ev given what was observed on
// disk. It never mutates cache. Every event requests a restart; events that
// change an entry also request persistence and stamp the event time as the
// new generation time.
func Apply(cache *domain.DecoratorCache, ev domain.FileEvent, obs Observation) Decision {
	idx := cache.Index(obs.Path)
	decorated := ev.Kind != domain.EventDeleted && obs.Found && obs.Decorated

	var (
		next   *domain.DecoratorCache
		change Change
	)

	switch {
	case !decorated && idx >= 0:
		next = cache.Clone()
		next.Entries = slices.Delete(next.Entries, idx, idx+1)
		change = ChangeRemoved

	case decorated && idx < 0:
		next = cache.Clone()
		next.Entries = append(next.Entries, entryFor(obs))
		change = ChangeInserted

	case decorated && stale(cache.Entries[idx], obs):
		next = cache.Clone()
		next.Entries[idx] = entryFor(obs)
		change = ChangeUpdated
	}

	if next == nil {
		return Decision{Cache: cache, Change: ChangeNone, Effects: []Effect{EffectRestart}}
	}

	if !ev.Time.IsZero() {
		next.GeneratedAt = ev.Time.UTC()
	} else {
		next.Touch()
	}
	return Decision{Cache: next, Change: change, Effects: []Effect{EffectPersist, EffectRestart}}
}

// stale reports whether the stored entry no longer describes the observed file.
func stale(entry domain.CacheEntry, obs Observation) bool {
	if entry.ModTime != obs.Meta.ModTime {
		return true
	}
	return obs.Hash != "" && obs.Hash != entry.Hash
}

func entryFor(obs Observation) domain.CacheEntry {
	return domain.CacheEntry{
		Path:    obs.Path,
		ModTime: obs.Meta.ModTime,
		Size:    obs.Meta.Size,
		Hash:    obs.Hash,
	}
}
