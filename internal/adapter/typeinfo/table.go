// Package typeinfo provides a static metadata table describing event record types.
//
// Each record type is registered once with its name, capability tags and ancestors.
// Records implementing domain.Described are described by themselves and need no entry.
package typeinfo

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/tejashwikalptaru/eventhub/internal/domain"
	"github.com/tejashwikalptaru/eventhub/internal/ports"
)

// Table implements ports.TypeDescriber with statically registered metadata.
//
// Thread-safe: All operations protected by sync.RWMutex.
type Table struct {
	entries map[reflect.Type]domain.TypeInfo
	mu      sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries: make(map[reflect.Type]domain.TypeInfo),
	}
}

// Register records the metadata for the dynamic type of sample. Pointer and value
// types are distinct entries. Registering a type again replaces its metadata.
func (t *Table) Register(sample any, info domain.TypeInfo) error {
	if sample == nil {
		return fmt.Errorf("typeinfo: register nil sample: %w", domain.ErrInvalidEvent)
	}
	if info.Name == "" {
		return fmt.Errorf("typeinfo: register %T without a name: %w", sample, domain.ErrNoTypeMetadata)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[reflect.TypeOf(sample)] = info
	return nil
}

// Describe returns the metadata of a record.
func (t *Table) Describe(record any) (domain.TypeInfo, error) {
	if described, ok := record.(domain.Described); ok {
		return described.EventType(), nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	info, ok := t.entries[reflect.TypeOf(record)]
	if !ok {
		return domain.TypeInfo{}, fmt.Errorf("typeinfo: describe %T: %w", record, domain.ErrNoTypeMetadata)
	}
	return info, nil
}

// Len returns the number of registered types.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Verify that Table implements the TypeDescriber interface
var _ ports.TypeDescriber = (*Table)(nil)
