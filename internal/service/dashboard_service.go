package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"clinic-portal/internal/layout"
	"clinic-portal/internal/model"
	"clinic-portal/internal/repository"
	"clinic-portal/internal/storage"
)

var ErrNoDevice = errors.New("missing device id")

// Layout events pushed to the websocket clients of a device
const (
	EventLayoutSaved    = "layout_saved"
	EventLayoutImported = "layout_imported"
	EventLayoutReset    = "layout_reset"
)

// LayoutEvent is the websocket payload announcing a persisted layout change
type LayoutEvent struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Notifier delivers events to the connections of one device
type Notifier interface {
	Publish(deviceID string, event any) error
}

// StoreProvider hands out the persisted store of a device
type StoreProvider interface {
	Scoped(deviceID string) storage.Store
}

// LayoutView is the editor state returned to the dashboard page
type LayoutView struct {
	layout.State
	Mode     layout.Mode `json:"mode"`
	ActiveID string      `json:"activeId,omitempty"`
	CanUndo  bool        `json:"canUndo"`
	CanRedo  bool        `json:"canRedo"`
}

// KeyStroke is a keyboard shortcut forwarded from the page
type KeyStroke struct {
	Key   string `json:"key" validate:"required,max=16"`
	Ctrl  bool   `json:"ctrl"`
	Meta  bool   `json:"meta"`
	Shift bool   `json:"shift"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (model.DashboardStats, error)

	Layout(ctx context.Context, deviceID string) (LayoutView, error)
	EnterEdit(ctx context.Context, deviceID string) (LayoutView, error)
	Save(ctx context.Context, deviceID string) (LayoutView, error)
	Cancel(ctx context.Context, deviceID string) (LayoutView, error)
	DragStart(ctx context.Context, deviceID, id string) (LayoutView, error)
	DragEnd(ctx context.Context, deviceID, activeID, overID string) (LayoutView, bool, error)
	ToggleVisibility(ctx context.Context, deviceID, id string) (LayoutView, error)
	Undo(ctx context.Context, deviceID string) (LayoutView, bool, error)
	Redo(ctx context.Context, deviceID string) (LayoutView, bool, error)
	KeyStroke(ctx context.Context, deviceID string, ks KeyStroke) (LayoutView, bool, error)
	SetGridSize(ctx context.Context, deviceID string, size model.GridSize) (LayoutView, error)
	Export(ctx context.Context, deviceID string) (layout.ExportDocument, error)
	Import(ctx context.Context, deviceID string, data []byte) (LayoutView, error)
	Reset(ctx context.Context, deviceID string) (LayoutView, error)
}

// DefaultMaxEditors bounds the number of device editors kept in memory
const DefaultMaxEditors = 1000

// deviceEditor serializes access to the editor of one device
type deviceEditor struct {
	mu     sync.Mutex
	editor *layout.Editor
	// lastUsed is guarded by dashboardService.mu
	lastUsed uint64
}

type dashboardService struct {
	statsRepo    repository.StatsRepository
	stores       StoreProvider
	notifier     Notifier
	historyLimit int
	maxEditors   int
	now          func() time.Time

	mu      sync.Mutex
	editors map[string]*deviceEditor
	tick    uint64
}

type DashboardOption func(*dashboardService)

// WithMaxEditors caps the cached device editors. The least recently used
// editor is dropped beyond the cap and reloaded from storage on its next use,
// so unsaved edit-mode changes of that device are lost.
func WithMaxEditors(n int) DashboardOption {
	return func(s *dashboardService) {
		if n > 0 {
			s.maxEditors = n
		}
	}
}

func NewDashboardService(statsRepo repository.StatsRepository, stores StoreProvider, notifier Notifier, historyLimit int, opts ...DashboardOption) DashboardService {
	s := &dashboardService{
		statsRepo:    statsRepo,
		stores:       stores,
		notifier:     notifier,
		historyLimit: historyLimit,
		maxEditors:   DefaultMaxEditors,
		now:          time.Now,
		editors:      make(map[string]*deviceEditor),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (model.DashboardStats, error) {
	return s.statsRepo.GetDashboardStats(ctx)
}

// editor returns the cached editor of deviceID, loading it from storage on first use
func (s *dashboardService) editor(ctx context.Context, deviceID string) (*deviceEditor, error) {
	if deviceID == "" {
		return nil, ErrNoDevice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	if de, ok := s.editors[deviceID]; ok {
		de.lastUsed = s.tick
		return de, nil
	}

	e := layout.NewEditor(s.stores.Scoped(deviceID), layout.WithHistoryLimit(s.historyLimit))
	stats, err := s.statsRepo.GetDashboardStats(ctx)
	if err != nil {
		slog.WarnContext(ctx, "dashboard stats unavailable, stat values left at zero", "error", err)
	} else {
		e.SetStats(stats)
	}
	if err := e.Load(ctx); err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	if len(s.editors) >= s.maxEditors {
		s.evictOldest()
	}
	de := &deviceEditor{editor: e, lastUsed: s.tick}
	s.editors[deviceID] = de
	return de, nil
}

// evictOldest drops the least recently used editor; the caller holds s.mu
func (s *dashboardService) evictOldest() {
	var (
		oldestID string
		oldest   uint64
	)
	for id, de := range s.editors {
		if oldestID == "" || de.lastUsed < oldest {
			oldestID, oldest = id, de.lastUsed
		}
	}
	delete(s.editors, oldestID)
	slog.Debug("layout editor evicted", "device_id", oldestID)
}

// apply runs fn on the device's editor and returns the resulting view
func (s *dashboardService) apply(ctx context.Context, deviceID string, fn func(e *layout.Editor) error) (LayoutView, error) {
	de, err := s.editor(ctx, deviceID)
	if err != nil {
		return LayoutView{}, err
	}

	de.mu.Lock()
	defer de.mu.Unlock()

	if err := fn(de.editor); err != nil {
		return LayoutView{}, err
	}
	return viewOf(de.editor), nil
}

func viewOf(e *layout.Editor) LayoutView {
	return LayoutView{
		State:    e.State(),
		Mode:     e.Mode(),
		ActiveID: e.ActiveID(),
		CanUndo:  e.CanUndo(),
		CanRedo:  e.CanRedo(),
	}
}

func (s *dashboardService) notify(ctx context.Context, deviceID, eventType string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(deviceID, LayoutEvent{Type: eventType, At: s.now().UTC()}); err != nil {
		slog.WarnContext(ctx, "publish layout event", "event", eventType, "error", err)
	}
}

// Layout refreshes the stat values and returns the current editor state
func (s *dashboardService) Layout(ctx context.Context, deviceID string) (LayoutView, error) {
	stats, statsErr := s.statsRepo.GetDashboardStats(ctx)
	return s.apply(ctx, deviceID, func(e *layout.Editor) error {
		if statsErr == nil {
			e.SetStats(stats)
		}
		return nil
	})
}

func (s *dashboardService) EnterEdit(ctx context.Context, deviceID string) (LayoutView, error) {
	return s.apply(ctx, deviceID, func(e *layout.Editor) error {
		e.EnterEdit()
		return nil
	})
}

func (s *dashboardService) Save(ctx context.Context, deviceID string) (LayoutView, error) {
	view, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		return e.Save(ctx)
	})
	if err == nil {
		s.notify(ctx, deviceID, EventLayoutSaved)
	}
	return view, err
}

func (s *dashboardService) Cancel(ctx context.Context, deviceID string) (LayoutView, error) {
	return s.apply(ctx, deviceID, func(e *layout.Editor) error {
		e.Cancel()
		return nil
	})
}

func (s *dashboardService) DragStart(ctx context.Context, deviceID, id string) (LayoutView, error) {
	return s.apply(ctx, deviceID, func(e *layout.Editor) error {
		e.DragStart(id)
		return nil
	})
}

func (s *dashboardService) DragEnd(ctx context.Context, deviceID, activeID, overID string) (LayoutView, bool, error) {
	var changed bool
	view, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		changed = e.DragEnd(activeID, overID)
		return nil
	})
	return view, changed, err
}

func (s *dashboardService) ToggleVisibility(ctx context.Context, deviceID, id string) (LayoutView, error) {
	return s.apply(ctx, deviceID, func(e *layout.Editor) error {
		return e.ToggleVisibility(id)
	})
}

func (s *dashboardService) Undo(ctx context.Context, deviceID string) (LayoutView, bool, error) {
	var changed bool
	view, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		changed = e.Undo()
		return nil
	})
	return view, changed, err
}

func (s *dashboardService) Redo(ctx context.Context, deviceID string) (LayoutView, bool, error) {
	var changed bool
	view, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		changed = e.Redo()
		return nil
	})
	return view, changed, err
}

func (s *dashboardService) KeyStroke(ctx context.Context, deviceID string, ks KeyStroke) (LayoutView, bool, error) {
	var changed bool
	view, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		changed = e.KeyStroke(ks.Key, ks.Ctrl, ks.Meta, ks.Shift)
		return nil
	})
	return view, changed, err
}

func (s *dashboardService) SetGridSize(ctx context.Context, deviceID string, size model.GridSize) (LayoutView, error) {
	return s.apply(ctx, deviceID, func(e *layout.Editor) error {
		return e.SetGridSize(size)
	})
}

func (s *dashboardService) Export(ctx context.Context, deviceID string) (layout.ExportDocument, error) {
	var doc layout.ExportDocument
	_, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		doc = e.Export(s.now())
		return nil
	})
	return doc, err
}

func (s *dashboardService) Import(ctx context.Context, deviceID string, data []byte) (LayoutView, error) {
	view, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		return e.Import(ctx, data)
	})
	if err == nil {
		s.notify(ctx, deviceID, EventLayoutImported)
	}
	return view, err
}

func (s *dashboardService) Reset(ctx context.Context, deviceID string) (LayoutView, error) {
	view, err := s.apply(ctx, deviceID, func(e *layout.Editor) error {
		return e.Reset(ctx)
	})
	if err == nil {
		s.notify(ctx, deviceID, EventLayoutReset)
	}
	return view, err
}
