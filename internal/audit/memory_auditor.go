package audit

import (
	"sync"

	"github.com/jdscolam/mndp-firebase-auth/internal/config"
	"github.com/jdscolam/mndp-firebase-auth/internal/core"
)

var (
	_ core.Auditor     = (*InMemoryAuditor)(nil)
	_ core.AuditReader = (*InMemoryAuditor)(nil)
)

// InMemoryAuditor keeps the latest capacity entries in a ring buffer.
type InMemoryAuditor struct {
	mu      sync.Mutex
	entries []core.AuditEntry
	next    int
	full    bool
}

// NewInMemoryAuditor creates an auditor retaining at most capacity entries.
// A non-positive capacity falls back to config.DefaultAuditCapacity.
func NewInMemoryAuditor(capacity int) *InMemoryAuditor {
	if capacity <= 0 {
		capacity = config.DefaultAuditCapacity
	}
	return &InMemoryAuditor{
		entries: make([]core.AuditEntry, capacity),
	}
}

func (i *InMemoryAuditor) Log(entry core.AuditEntry) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.entries[i.next] = entry
	i.next = (i.next + 1) % len(i.entries)
	if i.next == 0 {
		i.full = true
	}
	return nil
}

// Len returns the number of retained entries.
func (i *InMemoryAuditor) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.full {
		return len(i.entries)
	}
	return i.next
}

// ordered returns the retained entries oldest first. Callers must hold mu.
func (i *InMemoryAuditor) ordered() []core.AuditEntry {
	if !i.full {
		return i.entries[:i.next]
	}
	out := make([]core.AuditEntry, 0, len(i.entries))
	out = append(out, i.entries[i.next:]...)
	return append(out, i.entries[:i.next]...)
}

// GetRecent returns up to limit of the latest entries, oldest first.
func (i *InMemoryAuditor) GetRecent(limit int) ([]core.AuditEntry, error) {
	return i.Find(func(core.AuditEntry) bool { return true }, limit)
}

// Find returns up to limit of the latest entries matching filter, oldest first.
func (i *InMemoryAuditor) Find(filter func(entry core.AuditEntry) bool, limit int) ([]core.AuditEntry, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var matches []core.AuditEntry
	for _, entry := range i.ordered() {
		if filter(entry) {
			matches = append(matches, entry)
		}
	}
	return lastN(matches, limit), nil
}

func (i *InMemoryAuditor) Close() error {
	return nil // nothing to close :)
}

// lastN keeps the last limit entries. A negative limit keeps all of them.
func lastN(entries []core.AuditEntry, limit int) []core.AuditEntry {
	if limit >= 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries
}
