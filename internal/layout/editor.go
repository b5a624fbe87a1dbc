package layout

import (
	"errors"
	"slices"
	"strings"

	"clinic-portal/internal/model"
	"clinic-portal/internal/storage"
)

var (
	ErrUnknownItem     = errors.New("layout item not found")
	ErrInvalidGridSize = errors.New("invalid grid size")
)

// Mode is the editor's top-level state
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// State is every collection of the dashboard layout
type State struct {
	Widgets   []model.Widget       `json:"widgets"`
	StatCards model.StatCardGrids  `json:"statCards"`
	Charts    model.ChartSections  `json:"charts"`
	Packages  []model.PackageCard  `json:"packages"`
	Sections  []model.StatsSection `json:"sections"`
	GridSize  model.GridSize       `json:"gridSize"`
}

func (s State) Clone() State {
	return State{
		Widgets: slices.Clone(s.Widgets),
		StatCards: model.StatCardGrids{
			Primary:   slices.Clone(s.StatCards.Primary),
			Secondary: slices.Clone(s.StatCards.Secondary),
		},
		Charts: model.ChartSections{
			StatusCharts:      slices.Clone(s.Charts.StatusCharts),
			AnalyticsOverview: slices.Clone(s.Charts.AnalyticsOverview),
		},
		Packages: slices.Clone(s.Packages),
		Sections: slices.Clone(s.Sections),
		GridSize: s.GridSize,
	}
}

func (s State) snapshot() Snapshot {
	return Snapshot{
		Primary:   s.StatCards.Primary,
		Secondary: s.StatCards.Secondary,
		Packages:  s.Packages,
	}.Clone()
}

func (s *State) restore(snap Snapshot) {
	snap = snap.Clone()
	s.StatCards.Primary = snap.Primary
	s.StatCards.Secondary = snap.Secondary
	s.Packages = snap.Packages
}

type collection int

const (
	collWidgets collection = iota
	collStatCards
	collCharts
	collPackages
	collSections
)

// location identifies the collection holding an item; group distinguishes the
// two stat card grids and the two chart sections.
type location struct {
	coll  collection
	group string
}

// Editor holds one dashboard's layout. It is not safe for concurrent use.
type Editor struct {
	store    storage.Store
	state    State
	baseline State
	mode     Mode
	history  *History
	activeID string
	stats    model.DashboardStats
}

type Option func(*Editor)

// WithHistoryLimit overrides the number of undoable steps
func WithHistoryLimit(limit int) Option {
	return func(e *Editor) {
		e.history = NewHistory(limit)
	}
}

// NewEditor returns an editor in view mode holding the default layout.
// Call Load to restore the persisted layout.
func NewEditor(store storage.Store, opts ...Option) *Editor {
	e := &Editor{
		store:   store,
		state:   DefaultState(),
		mode:    ModeView,
		history: NewHistory(DefaultHistoryLimit),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.baseline = e.state.Clone()
	return e
}

func (e *Editor) Mode() Mode { return e.mode }

// State returns a copy of the current layout
func (e *Editor) State() State { return e.state.Clone() }

func (e *Editor) History() *History { return e.history }

func (e *Editor) ActiveID() string { return e.activeID }

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// EnterEdit switches to edit mode and remembers the layout Cancel returns to
func (e *Editor) EnterEdit() {
	if e.mode == ModeEdit {
		return
	}
	e.baseline = e.state.Clone()
	e.history.Reset()
	e.mode = ModeEdit
}

// Cancel leaves edit mode and discards every change made since entering it
func (e *Editor) Cancel() {
	e.state = e.baseline.Clone()
	e.history.Reset()
	e.activeID = ""
	e.mode = ModeView
}

// SetStats updates the live counters and refreshes the stat card values
func (e *Editor) SetStats(stats model.DashboardStats) {
	e.stats = stats
	e.state.StatCards.Primary = refreshValues(e.state.StatCards.Primary, stats)
	e.state.StatCards.Secondary = refreshValues(e.state.StatCards.Secondary, stats)
	e.baseline.StatCards.Primary = refreshValues(e.baseline.StatCards.Primary, stats)
	e.baseline.StatCards.Secondary = refreshValues(e.baseline.StatCards.Secondary, stats)
}

func refreshValues(cards []model.StatCard, stats model.DashboardStats) []model.StatCard {
	out := slices.Clone(cards)
	for i := range out {
		if v, ok := StatValue(out[i].ModuleKey, stats); ok {
			out[i].Value = v
		}
	}
	return out
}

func (e *Editor) SetGridSize(size model.GridSize) error {
	if !size.Valid() {
		return ErrInvalidGridSize
	}
	e.state.GridSize = size
	return nil
}

// DragStart marks id as the item being dragged
func (e *Editor) DragStart(id string) {
	e.activeID = id
}

// DragEnd applies the drop of activeID onto overID. An empty activeID falls back
// to the id given to DragStart. The active id is cleared whatever the outcome.
// It reports whether the layout changed.
func (e *Editor) DragEnd(activeID, overID string) bool {
	if activeID == "" {
		activeID = e.activeID
	}
	e.activeID = ""

	if activeID == "" || overID == "" || activeID == overID {
		return false
	}

	from, ok := e.locate(activeID)
	if !ok {
		return false
	}
	to, ok := e.locate(overID)
	if !ok {
		return false
	}

	switch {
	case from.coll == to.coll && from.group == to.group:
		return e.reorder(from, activeID, overID)
	case from.coll == collStatCards && to.coll == collStatCards:
		e.history.Record(e.state.snapshot())
		src, dst := e.statGrid(from.group), e.statGrid(to.group)
		newSrc, newDst, _ := SwapAcross(*src, from.group, *dst, to.group, activeID, overID)
		*src, *dst = newSrc, newDst
		return true
	case from.coll == collCharts && to.coll == collCharts:
		src, dst := e.chartSection(from.group), e.chartSection(to.group)
		newSrc, newDst, _ := SwapAcross(*src, from.group, *dst, to.group, activeID, overID)
		*src, *dst = newSrc, newDst
		return true
	case from.coll == collStatCards && to.coll == collPackages:
		return e.convert(from.group, activeID, overID)
	case from.coll == collPackages && to.coll == collStatCards:
		return e.convert(to.group, overID, activeID)
	}
	return false
}

func (e *Editor) reorder(loc location, activeID, overID string) bool {
	var changed bool
	switch loc.coll {
	case collWidgets:
		e.state.Widgets, changed = Reorder(e.state.Widgets, activeID, overID)
	case collStatCards:
		grid := e.statGrid(loc.group)
		pre := e.state.snapshot()
		var next []model.StatCard
		if next, changed = Reorder(*grid, activeID, overID); changed {
			e.history.Record(pre)
			*grid = next
		}
	case collCharts:
		section := e.chartSection(loc.group)
		*section, changed = Reorder(*section, activeID, overID)
	case collPackages:
		pre := e.state.snapshot()
		var next []model.PackageCard
		if next, changed = Reorder(e.state.Packages, activeID, overID); changed {
			e.history.Record(pre)
			e.state.Packages = next
		}
	case collSections:
		e.state.Sections, changed = Reorder(e.state.Sections, activeID, overID)
	}
	return changed
}

func (e *Editor) convert(group, statID, packageID string) bool {
	grid := e.statGrid(group)
	pre := e.state.snapshot()
	newGrid, newPackages, ok := ConvertSwap(*grid, e.state.Packages, statID, packageID, e.stats)
	if !ok {
		return false
	}
	e.history.Record(pre)
	*grid = newGrid
	e.state.Packages = newPackages
	return true
}

// ToggleVisibility flips the visibility of any item of the layout
func (e *Editor) ToggleVisibility(id string) error {
	loc, ok := e.locate(id)
	if !ok {
		return ErrUnknownItem
	}
	switch loc.coll {
	case collWidgets:
		e.state.Widgets, _ = ToggleVisible(e.state.Widgets, id)
	case collStatCards:
		e.history.Record(e.state.snapshot())
		grid := e.statGrid(loc.group)
		*grid, _ = ToggleVisible(*grid, id)
	case collCharts:
		section := e.chartSection(loc.group)
		*section, _ = ToggleVisible(*section, id)
	case collPackages:
		e.history.Record(e.state.snapshot())
		e.state.Packages, _ = ToggleVisible(e.state.Packages, id)
	case collSections:
		e.state.Sections, _ = ToggleVisible(e.state.Sections, id)
	}
	return nil
}

func (e *Editor) Undo() bool {
	prev, ok := e.history.Undo(e.state.snapshot())
	if ok {
		e.state.restore(prev)
	}
	return ok
}

func (e *Editor) Redo() bool {
	next, ok := e.history.Redo(e.state.snapshot())
	if ok {
		e.state.restore(next)
	}
	return ok
}

// KeyStroke handles the history shortcuts: ctrl/cmd+z undoes, ctrl/cmd+y and
// ctrl/cmd+shift+z redo. Shortcuts only work in edit mode. It reports whether
// the stroke changed the layout.
func (e *Editor) KeyStroke(key string, ctrl, meta, shift bool) bool {
	if e.mode != ModeEdit || !(ctrl || meta) {
		return false
	}
	switch strings.ToLower(key) {
	case "z":
		if shift {
			return e.Redo()
		}
		return e.Undo()
	case "y":
		return e.Redo()
	}
	return false
}

func (e *Editor) statGrid(group string) *[]model.StatCard {
	if group == string(model.GridSecondary) {
		return &e.state.StatCards.Secondary
	}
	return &e.state.StatCards.Primary
}

func (e *Editor) chartSection(group string) *[]model.Chart {
	if group == string(model.SectionAnalyticsOverview) {
		return &e.state.Charts.AnalyticsOverview
	}
	return &e.state.Charts.StatusCharts
}

func (e *Editor) locate(id string) (location, bool) {
	switch {
	case IndexOf(e.state.Widgets, id) >= 0:
		return location{coll: collWidgets}, true
	case IndexOf(e.state.StatCards.Primary, id) >= 0:
		return location{coll: collStatCards, group: string(model.GridPrimary)}, true
	case IndexOf(e.state.StatCards.Secondary, id) >= 0:
		return location{coll: collStatCards, group: string(model.GridSecondary)}, true
	case IndexOf(e.state.Charts.StatusCharts, id) >= 0:
		return location{coll: collCharts, group: string(model.SectionStatusCharts)}, true
	case IndexOf(e.state.Charts.AnalyticsOverview, id) >= 0:
		return location{coll: collCharts, group: string(model.SectionAnalyticsOverview)}, true
	case IndexOf(e.state.Packages, id) >= 0:
		return location{coll: collPackages}, true
	case IndexOf(e.state.Sections, id) >= 0:
		return location{coll: collSections}, true
	}
	return location{}, false
}
