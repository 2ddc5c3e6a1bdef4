// ABOUTME: Tests for the reconciliation editor: diffing, coercion, save flow
// ABOUTME: Uses a fake config service to observe exactly what goes on the wire

package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryunnet/rfrp-sub001/internal/api"
)

// fakeConfigService records batch submissions and serves a mutable item set.
type fakeConfigService struct {
	items     []api.ConfigItem
	listCalls int
	batches   [][]api.ConfigUpdate
	listErr   error
	batchErr  error
	onBatch   func([]api.ConfigUpdate)
}

func (f *fakeConfigService) ListSystemConfigs(ctx context.Context) ([]api.ConfigItem, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]api.ConfigItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeConfigService) BatchUpdateSystemConfigs(ctx context.Context, updates []api.ConfigUpdate) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	f.batches = append(f.batches, updates)
	if f.onBatch != nil {
		f.onBatch(updates)
	}
	return nil
}

func testItems() []api.ConfigItem {
	return []api.ConfigItem{
		{ID: 1, Key: "web_port", Value: float64(8080), Description: "Web UI port", ValueType: "number"},
		{ID: 2, Key: "grpc_tls_enabled", Value: "false", Description: "TLS on gRPC", ValueType: "boolean"},
		{ID: 3, Key: "server_name", Value: "rfrp", Description: "Display name", ValueType: "string"},
	}
}

func loadedEditor(t *testing.T, svc *fakeConfigService) *Editor {
	t.Helper()
	editor := NewEditor(svc)
	require.NoError(t, editor.Load(context.Background()))
	return editor
}

func TestEditor_LoadSeedsCleanState(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := loadedEditor(t, svc)

	assert.False(t, editor.HasChanges())
	assert.Equal(t, StateClean, editor.State())
	assert.Empty(t, editor.Diff())

	// A second identical load stays clean
	require.NoError(t, editor.Load(context.Background()))
	assert.False(t, editor.HasChanges())
	assert.Empty(t, editor.Diff())
}

func TestEditor_LoadFailureKeepsPriorState(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := loadedEditor(t, svc)
	require.NoError(t, editor.SetValue("web_port", "9090"))

	svc.listErr = errors.New("controller down")
	require.Error(t, editor.Load(context.Background()))

	// The pending edit survives the failed reload
	assert.True(t, editor.HasChanges())
	value, _ := editor.Value("web_port")
	assert.Equal(t, float64(9090), value)
}

func TestEditor_NumberCoercion(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := loadedEditor(t, svc)

	// Empty string coerces to 0
	require.NoError(t, editor.SetValue("web_port", ""))
	value, _ := editor.Value("web_port")
	assert.Equal(t, float64(0), value)
	assert.True(t, editor.HasChanges())

	// String and number representations compare numerically
	require.NoError(t, editor.SetValue("web_port", "8080"))
	assert.False(t, editor.HasChanges())

	// Garbage is rejected instead of silently stored
	require.Error(t, editor.SetValue("web_port", "not-a-port"))
}

func TestEditor_BooleanNormalization(t *testing.T) {
	tests := []struct {
		name        string
		serverValue any
		edit        any
		wantChanged bool
	}{
		{"string false to bool true", "false", true, true},
		{"string false to string true", "false", "true", true},
		{"string false to bool false", "false", false, false},
		{"string false to string false", "false", "false", false},
		{"bool true to string true", true, "true", false},
		{"bool true to string yes", true, "yes", true}, // anything but "true" is false
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeConfigService{items: []api.ConfigItem{
				{ID: 1, Key: "flag", Value: tt.serverValue, ValueType: "boolean"},
			}}
			editor := loadedEditor(t, svc)
			require.NoError(t, editor.SetValue("flag", tt.edit))
			assert.Equal(t, tt.wantChanged, editor.HasChanges())
		})
	}
}

func TestEditor_UnknownKey(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := loadedEditor(t, svc)

	err := editor.SetValue("no_such_key", "x")
	require.ErrorIs(t, err, ErrUnknownKey)
}

func TestEditor_SaveEmptyDiffIsNoOp(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := loadedEditor(t, svc)

	require.NoError(t, editor.Save(context.Background()))

	assert.Empty(t, svc.batches, "no-op save must not issue a network request")
	assert.Equal(t, 1, svc.listCalls, "no-op save must not reload either")
}

func TestEditor_SaveSendsOnlyChangedKeys(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := loadedEditor(t, svc)

	require.NoError(t, editor.SetValue("web_port", "8081"))
	assert.True(t, editor.HasChanges())

	require.NoError(t, editor.Save(context.Background()))

	require.Len(t, svc.batches, 1)
	require.Len(t, svc.batches[0], 1, "unchanged keys must never be submitted")
	assert.Equal(t, "web_port", svc.batches[0][0].Key)
	assert.Equal(t, float64(8081), svc.batches[0][0].Value)
}

func TestEditor_SaveReloadsFromServer(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	// The server clamps the port: it stores a different value than submitted
	svc.onBatch = func(updates []api.ConfigUpdate) {
		svc.items[0].Value = float64(9000)
	}
	editor := loadedEditor(t, svc)

	require.NoError(t, editor.SetValue("web_port", "8081"))
	require.NoError(t, editor.Save(context.Background()))

	// The reload is authoritative: we hold the server's value, not ours
	value, _ := editor.Value("web_port")
	assert.Equal(t, float64(9000), value)
	assert.False(t, editor.HasChanges())
	assert.Equal(t, StateClean, editor.State())
	assert.Equal(t, 2, svc.listCalls)
}

func TestEditor_SaveFailurePreservesEdits(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	svc.batchErr = errors.New("validation failed")
	editor := loadedEditor(t, svc)

	require.NoError(t, editor.SetValue("server_name", "edge-1"))
	require.Error(t, editor.Save(context.Background()))

	assert.True(t, editor.HasChanges(), "failed save must not discard pending edits")
	assert.Equal(t, StateDirty, editor.State())
	value, _ := editor.Value("server_name")
	assert.Equal(t, "edge-1", value)
}

func TestEditor_SaveWhileSavingRejected(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := NewEditor(svc)
	require.NoError(t, editor.Load(context.Background()))

	var reentrant error
	svc.onBatch = func([]api.ConfigUpdate) {
		reentrant = editor.Save(context.Background())
	}

	require.NoError(t, editor.SetValue("web_port", "8081"))
	require.NoError(t, editor.Save(context.Background()))
	require.ErrorIs(t, reentrant, ErrSaveInFlight)
}

func TestEditor_ResetDiscardsAllEdits(t *testing.T) {
	svc := &fakeConfigService{items: testItems()}
	editor := loadedEditor(t, svc)

	require.NoError(t, editor.SetValue("web_port", "1"))
	require.NoError(t, editor.SetValue("grpc_tls_enabled", true))
	require.NoError(t, editor.SetValue("server_name", "other"))
	require.True(t, editor.HasChanges())

	editor.Reset()

	assert.False(t, editor.HasChanges())
	assert.Equal(t, StateClean, editor.State())
	for _, item := range editor.Items() {
		value, ok := editor.Value(item.Key)
		require.True(t, ok)
		assert.Equal(t, item.Value, value)
	}
}

func TestEditor_SaveBeforeLoad(t *testing.T) {
	editor := NewEditor(&fakeConfigService{})
	require.ErrorIs(t, editor.Save(context.Background()), ErrNotLoaded)
}
