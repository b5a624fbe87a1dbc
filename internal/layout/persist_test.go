package layout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clinic-portal/internal/model"
	"clinic-portal/internal/storage"
)

// failingStore rejects writes to one key
type failingStore struct {
	*storage.MemoryStore
	failKey string
}

var errDiskFull = errors.New("disk full")

func (f failingStore) Set(ctx context.Context, key, value string) error {
	if key == f.failKey {
		return errDiskFull
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func TestSaveThenLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	e := NewEditor(store)
	e.EnterEdit()
	require.True(t, e.DragEnd("widget-recent-leads", "widget-key-statistics"))
	require.True(t, e.DragEnd("stat-total-jobs", "stat-total-offers"))
	require.True(t, e.DragEnd("chart-job-status", "chart-lead-status"))
	require.True(t, e.DragEnd("packages-offers", "primary-stats"))
	require.NoError(t, e.ToggleVisibility("card-premium-package"))
	require.NoError(t, e.SetGridSize(model.GridSizeLarge))
	require.Empty(t, store.Keys(), "nothing is written before save")

	require.NoError(t, e.Save(ctx))
	require.Equal(t, ModeView, e.Mode())
	require.False(t, e.CanUndo())
	require.Len(t, store.Keys(), len(StorageKeys))

	loaded := NewEditor(store)
	require.NoError(t, loaded.Load(ctx))
	require.Equal(t, e.State(), loaded.State())

	size, err := store.Get(ctx, KeyGridSize)
	require.NoError(t, err)
	require.Equal(t, "large", size)
}

func TestLoadFallsBackPerKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	widgets := DefaultWidgets()
	widgets[0].Visible = false
	raw, err := json.Marshal(widgets)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, KeyWidgetOrder, string(raw)))
	require.NoError(t, store.Set(ctx, KeyStatCards, "{not json"))
	require.NoError(t, store.Set(ctx, KeyGridSize, "gigantic"))

	e := NewEditor(store)
	require.NoError(t, e.Load(ctx))
	s := e.State()
	require.False(t, s.Widgets[0].Visible)
	require.Equal(t, DefaultStatCards(), s.StatCards)
	require.Equal(t, DefaultCharts(), s.Charts)
	require.Equal(t, model.GridSizeNormal, s.GridSize)
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := NewEditor(storage.NewMemoryStore())
	require.True(t, src.DragEnd("widget-quick-actions", "widget-status-charts"))
	require.True(t, src.DragEnd("stat-total-applicants", "stat-total-packages"))
	require.NoError(t, src.ToggleVisibility("stat-total-leads"))
	require.NoError(t, src.SetGridSize(model.GridSizeCompact))

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := src.Export(now)
	require.Equal(t, now, doc.ExportedAt)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	store := storage.NewMemoryStore()
	dst := NewEditor(store)
	require.NoError(t, dst.Import(ctx, data))

	want := src.State()
	got := dst.State()
	require.Equal(t, want.Widgets, got.Widgets)
	require.Equal(t, want.StatCards, got.StatCards)
	require.Equal(t, want.GridSize, got.GridSize)
	require.Equal(t, DefaultCharts(), got.Charts, "charts are not part of the file")
	require.ElementsMatch(t, []string{KeyWidgetOrder, KeyStatCards, KeyGridSize}, store.Keys())

	// importing into the editor it came from changes nothing
	require.NoError(t, src.Import(ctx, data))
	require.Equal(t, want, src.State())
}

func TestImportRejectsInvalidFiles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"widgets": [`},
		{"missing stat cards", `{"widgets": []}`},
		{"missing widgets", `{"statCards": {"primary": [], "secondary": []}}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := storage.NewMemoryStore()
			e := NewEditor(store)
			before := e.State()

			err := e.Import(context.Background(), []byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidImport)
			require.Equal(t, before, e.State())
			require.Empty(t, store.Keys())
		})
	}
}

func TestImportWriteFailureKeepsState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := failingStore{MemoryStore: storage.NewMemoryStore(), failKey: KeyGridSize}
	e := NewEditor(store)
	require.True(t, e.DragEnd("widget-recent-leads", "widget-key-statistics"))
	savedWidgets, err := json.Marshal(e.State().Widgets)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyWidgetOrder, string(savedWidgets)))
	before := e.State()

	data := `{"widgets": [], "statCards": {"primary": [], "secondary": []}, "gridSize": "large"}`
	err = e.Import(ctx, []byte(data))
	require.ErrorIs(t, err, errDiskFull)
	require.Equal(t, before, e.State())

	// earlier writes of the import are undone in the store too
	raw, err := store.Get(ctx, KeyWidgetOrder)
	require.NoError(t, err)
	require.JSONEq(t, string(savedWidgets), raw)
	_, err = store.Get(ctx, KeyStatCards)
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.Equal(t, []string{KeyWidgetOrder}, store.Keys())

	reloaded := NewEditor(store)
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, before.Widgets, reloaded.State().Widgets)
	require.Equal(t, DefaultStatCards(), reloaded.State().StatCards)
}

func TestResetClearsStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	e := NewEditor(store)
	e.SetStats(model.DashboardStats{TotalJobs: 5})
	require.True(t, e.DragEnd("widget-recent-leads", "widget-key-statistics"))
	require.NoError(t, e.SetGridSize(model.GridSizeLarge))
	require.NoError(t, e.Save(ctx))
	require.NotEmpty(t, store.Keys())

	require.NoError(t, store.Set(ctx, "clinicToken", "keep-me"))
	require.NoError(t, e.Reset(ctx))

	require.Equal(t, []string{"clinicToken"}, store.Keys())
	s := e.State()
	require.Equal(t, DefaultWidgets(), s.Widgets)
	require.Equal(t, model.GridSizeNormal, s.GridSize)
	require.Equal(t, int64(5), s.StatCards.Primary[0].Value)
	require.False(t, e.CanUndo())
}
