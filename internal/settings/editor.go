// ABOUTME: Configuration reconciliation engine for system settings
// ABOUTME: Tracks local edits against server values and saves minimal diffs

package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ryunnet/rfrp-sub001/internal/api"
)

// Editor errors
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrSaveInFlight = errors.New("save already in progress")
	ErrNotLoaded    = errors.New("configs not loaded")
)

// State describes a loaded configuration set.
type State int

const (
	// StateClean means the edited set matches the server values.
	StateClean State = iota
	// StateDirty means at least one key differs under type-aware equality.
	StateDirty
	// StateSaving means a batch submission is in flight.
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

// ConfigService is the slice of the API client the editor needs.
type ConfigService interface {
	ListSystemConfigs(ctx context.Context) ([]api.ConfigItem, error)
	BatchUpdateSystemConfigs(ctx context.Context, updates []api.ConfigUpdate) error
}

// Editor holds a loaded configuration set together with pending local edits
// and saves only the changed subset. It is not safe for concurrent use; the
// design assumes one interactive caller driving one action at a time.
type Editor struct {
	svc    ConfigService
	logger *slog.Logger

	items  []api.ConfigItem // server-of-record, insertion order preserved
	server map[string]any   // key -> last-known server value, verbatim
	edited map[string]any   // key -> pending value
	saving bool
	loaded bool
}

// NewEditor creates an editor over the given config service.
func NewEditor(svc ConfigService) *Editor {
	return &Editor{
		svc:    svc,
		logger: slog.Default().With("component", "settings"),
	}
}

// Load fetches the full config list and replaces both the server-of-record
// set and the edited set (a verbatim copy of server values, no parsing).
// On failure the prior state is left untouched.
func (e *Editor) Load(ctx context.Context) error {
	items, err := e.svc.ListSystemConfigs(ctx)
	if err != nil {
		return fmt.Errorf("loading system configs: %w", err)
	}

	server := make(map[string]any, len(items))
	edited := make(map[string]any, len(items))
	for _, item := range items {
		server[item.Key] = item.Value
		edited[item.Key] = item.Value
	}

	e.items = items
	e.server = server
	e.edited = edited
	e.loaded = true
	return nil
}

// Items returns the loaded items in server order.
func (e *Editor) Items() []api.ConfigItem {
	return e.items
}

// Value returns the pending edited value for key.
func (e *Editor) Value(key string) (any, bool) {
	v, ok := e.edited[key]
	return v, ok
}

// SetValue parses raw according to the item's declared value type and
// records it as the pending value for key. For numbers the empty string
// coerces to 0; for booleans only true or "true" yield true.
func (e *Editor) SetValue(key string, raw any) error {
	item, ok := e.item(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	parsed, err := parseValue(item.ValueType, raw)
	if err != nil {
		return fmt.Errorf("config %q: %w", key, err)
	}
	e.edited[key] = parsed
	return nil
}

// HasChanges reports whether any key's edited value differs from the server
// value under type-aware equality.
func (e *Editor) HasChanges() bool {
	for _, item := range e.items {
		if e.keyDirty(item) {
			return true
		}
	}
	return false
}

// Diff returns the changed key/value pairs in server order. Unchanged keys
// are never included.
func (e *Editor) Diff() []api.ConfigUpdate {
	var updates []api.ConfigUpdate
	for _, item := range e.items {
		if e.keyDirty(item) {
			updates = append(updates, api.ConfigUpdate{Key: item.Key, Value: e.edited[item.Key]})
		}
	}
	return updates
}

// Reset discards all pending edits, restoring the edited set to the
// last-loaded server values.
func (e *Editor) Reset() {
	for key, value := range e.server {
		e.edited[key] = value
	}
}

// State returns the current reconciliation state.
func (e *Editor) State() State {
	if e.saving {
		return StateSaving
	}
	if e.HasChanges() {
		return StateDirty
	}
	return StateClean
}

// Save submits the changed subset as one batch and, on success, reloads the
// full set from the server as the authoritative refresh. An empty diff is a
// successful no-op with no network call. On failure pending edits are
// preserved so no work is lost.
func (e *Editor) Save(ctx context.Context) error {
	if !e.loaded {
		return ErrNotLoaded
	}
	if e.saving {
		return ErrSaveInFlight
	}

	diff := e.Diff()
	if len(diff) == 0 {
		e.logger.Debug("save skipped, no pending changes")
		return nil
	}

	e.saving = true
	defer func() { e.saving = false }()

	if err := e.svc.BatchUpdateSystemConfigs(ctx, diff); err != nil {
		return fmt.Errorf("saving %d config(s): %w", len(diff), err)
	}

	// The server is the source of truth after a write; reload instead of
	// patching the local copy.
	if err := e.Load(ctx); err != nil {
		return fmt.Errorf("refreshing after save: %w", err)
	}
	e.logger.Info("saved system configs", "changed", len(diff))
	return nil
}

func (e *Editor) item(key string) (api.ConfigItem, bool) {
	for _, item := range e.items {
		if item.Key == key {
			return item, true
		}
	}
	return api.ConfigItem{}, false
}

func (e *Editor) keyDirty(item api.ConfigItem) bool {
	return !Equal(item.ValueType, e.server[item.Key], e.edited[item.Key])
}
