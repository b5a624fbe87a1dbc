package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"clinic-portal/internal/model"
	"clinic-portal/internal/storage"
	"clinic-portal/pkg/validator"
)

// Storage keys, one per persisted collection
const (
	KeyWidgetOrder  = "dashboardWidgetOrder"
	KeyStatCards    = "dashboardStatCards"
	KeyCharts       = "dashboardCharts"
	KeySectionOrder = "dashboardStatsSectionOrder"
	KeyPackageCards = "dashboardPackageCards"
	KeyGridSize     = "dashboardGridSize"
)

// StorageKeys lists every key the editor writes
var StorageKeys = []string{
	KeyWidgetOrder,
	KeyStatCards,
	KeyCharts,
	KeySectionOrder,
	KeyPackageCards,
	KeyGridSize,
}

var ErrInvalidImport = errors.New("invalid layout file: widgets and statCards are required")

// ExportDocument is the downloadable layout file
type ExportDocument struct {
	Widgets    []model.Widget       `json:"widgets" validate:"required"`
	StatCards  *model.StatCardGrids `json:"statCards" validate:"required"`
	GridSize   model.GridSize       `json:"gridSize,omitempty"`
	ExportedAt time.Time            `json:"exportedAt"`
}

// Load restores every persisted collection. Missing or unreadable keys keep
// their defaults, the way a browser falls back when a stored value is corrupt.
func (e *Editor) Load(ctx context.Context) error {
	state := DefaultState()

	loaders := []struct {
		key string
		dst any
	}{
		{KeyWidgetOrder, &state.Widgets},
		{KeyStatCards, &state.StatCards},
		{KeyCharts, &state.Charts},
		{KeySectionOrder, &state.Sections},
		{KeyPackageCards, &state.Packages},
	}
	for _, l := range loaders {
		if err := e.read(ctx, l.key, l.dst); err != nil {
			return err
		}
	}

	size, err := e.store.Get(ctx, KeyGridSize)
	switch {
	case err == nil:
		if g := model.GridSize(size); g.Valid() {
			state.GridSize = g
		}
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("read %s: %w", KeyGridSize, err)
	}

	e.state = state
	e.SetStats(e.stats)
	e.baseline = e.state.Clone()
	e.history.Reset()
	return nil
}

// read decodes key into dst. dst is only overwritten when the stored value decodes.
func (e *Editor) read(ctx context.Context, key string, dst any) error {
	raw, err := e.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}

	switch d := dst.(type) {
	case *[]model.Widget:
		var v []model.Widget
		if json.Unmarshal([]byte(raw), &v) == nil && v != nil {
			*d = v
		}
	case *model.StatCardGrids:
		var v model.StatCardGrids
		if json.Unmarshal([]byte(raw), &v) == nil {
			*d = v
		}
	case *model.ChartSections:
		var v model.ChartSections
		if json.Unmarshal([]byte(raw), &v) == nil {
			*d = v
		}
	case *[]model.StatsSection:
		var v []model.StatsSection
		if json.Unmarshal([]byte(raw), &v) == nil && v != nil {
			*d = v
		}
	case *[]model.PackageCard:
		var v []model.PackageCard
		if json.Unmarshal([]byte(raw), &v) == nil && v != nil {
			*d = v
		}
	}
	return nil
}

// Save persists the whole layout, makes it the new baseline and leaves edit mode
func (e *Editor) Save(ctx context.Context) error {
	values := map[string]any{
		KeyWidgetOrder:  e.state.Widgets,
		KeyStatCards:    e.state.StatCards,
		KeyCharts:       e.state.Charts,
		KeySectionOrder: e.state.Sections,
		KeyPackageCards: e.state.Packages,
	}
	for _, key := range StorageKeys {
		if key == KeyGridSize {
			continue
		}
		if err := e.write(ctx, key, values[key]); err != nil {
			return err
		}
	}
	if err := e.store.Set(ctx, KeyGridSize, string(e.state.GridSize)); err != nil {
		return fmt.Errorf("write %s: %w", KeyGridSize, err)
	}

	e.baseline = e.state.Clone()
	e.history.Reset()
	e.activeID = ""
	e.mode = ModeView
	return nil
}

func (e *Editor) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := e.store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Export returns the layout file for the current state
func (e *Editor) Export(now time.Time) ExportDocument {
	widgets := e.state.Clone().Widgets
	if widgets == nil {
		widgets = []model.Widget{}
	}
	cards := e.state.Clone().StatCards
	return ExportDocument{
		Widgets:    widgets,
		StatCards:  &cards,
		GridSize:   e.state.GridSize,
		ExportedAt: now.UTC(),
	}
}

// Import replaces widgets, stat cards and grid size with the ones in data and
// persists them. A document without widgets or statCards changes nothing.
func (e *Editor) Import(ctx context.Context, data []byte) error {
	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if errs := validator.ValidateStruct(&doc); len(errs) > 0 {
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrInvalidImport, errs[0].FailedField, errs[0].Tag)
	}

	next := e.state.Clone()
	next.Widgets = doc.Widgets
	next.StatCards = *doc.StatCards
	if doc.GridSize.Valid() {
		next.GridSize = doc.GridSize
	}

	widgets, err := json.Marshal(next.Widgets)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyWidgetOrder, err)
	}
	cards, err := json.Marshal(next.StatCards)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyStatCards, err)
	}
	writes := []struct{ key, value string }{
		{KeyWidgetOrder, string(widgets)},
		{KeyStatCards, string(cards)},
		{KeyGridSize, string(next.GridSize)},
	}

	var written []storedValue
	for _, w := range writes {
		prev, err := e.stored(ctx, w.key)
		if err != nil {
			e.rollback(ctx, written)
			return err
		}
		if err := e.store.Set(ctx, w.key, w.value); err != nil {
			e.rollback(ctx, written)
			return fmt.Errorf("write %s: %w", w.key, err)
		}
		written = append(written, prev)
	}

	e.state = next
	e.baseline = e.state.Clone()
	e.history.Reset()
	return nil
}

// storedValue is a key's persisted value before an import overwrote it
type storedValue struct {
	key     string
	value   string
	present bool
}

func (e *Editor) stored(ctx context.Context, key string) (storedValue, error) {
	raw, err := e.store.Get(ctx, key)
	switch {
	case err == nil:
		return storedValue{key: key, value: raw, present: true}, nil
	case errors.Is(err, storage.ErrNotFound):
		return storedValue{key: key}, nil
	default:
		return storedValue{}, fmt.Errorf("read %s: %w", key, err)
	}
}

// rollback puts back the values an interrupted import replaced, newest first
func (e *Editor) rollback(ctx context.Context, written []storedValue) {
	for i := len(written) - 1; i >= 0; i-- {
		v := written[i]
		var err error
		if v.present {
			err = e.store.Set(ctx, v.key, v.value)
		} else {
			err = e.store.Remove(ctx, v.key)
		}
		if err != nil {
			slog.WarnContext(ctx, "restore layout key after failed import", "key", v.key, "error", err)
		}
	}
}

// Reset restores the default layout and clears every persisted key
func (e *Editor) Reset(ctx context.Context) error {
	for _, key := range StorageKeys {
		if err := e.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	e.state = DefaultState()
	e.SetStats(e.stats)
	e.baseline = e.state.Clone()
	e.history.Reset()
	e.activeID = ""
	return nil
}
