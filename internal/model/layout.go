package model

// WidgetType identifies a top-level dashboard section
type WidgetType string

const (
	WidgetKeyStatistics    WidgetType = "key-statistics"
	WidgetStatusCharts     WidgetType = "status-charts"
	WidgetAnalytics        WidgetType = "analytics-overview"
	WidgetPackagesOffers   WidgetType = "packages-offers"
	WidgetRecentJobs       WidgetType = "recent-jobs"
	WidgetRecentApplicants WidgetType = "recent-applicants"
	WidgetRecentLeads      WidgetType = "recent-leads"
	WidgetQuickActions     WidgetType = "quick-actions"
)

// Widget is a dashboard section that is reordered and hidden as a unit
type Widget struct {
	ID      string     `json:"id"`
	Type    WidgetType `json:"type"`
	Title   string     `json:"title"`
	Visible bool       `json:"visible"`
	Order   int        `json:"order"`
}

func (w Widget) ItemID() string             { return w.ID }
func (w Widget) WithOrder(order int) Widget { w.Order = order; return w }
func (w Widget) WithVisible(v bool) Widget  { w.Visible = v; return w }
func (w Widget) IsVisible() bool            { return w.Visible }

// GridType names the stat card grid a card lives in
type GridType string

const (
	GridPrimary   GridType = "primary"
	GridSecondary GridType = "secondary"
)

// StatCard is a single numeric tile
type StatCard struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Value     int64    `json:"value"`
	Icon      string   `json:"icon"`
	ModuleKey string   `json:"moduleKey"`
	GridType  GridType `json:"gridType"`
	Order     int      `json:"order"`
	Visible   bool     `json:"visible"`
}

func (s StatCard) ItemID() string               { return s.ID }
func (s StatCard) WithOrder(order int) StatCard { s.Order = order; return s }
func (s StatCard) WithVisible(v bool) StatCard  { s.Visible = v; return s }
func (s StatCard) IsVisible() bool              { return s.Visible }
func (s StatCard) Group() string                { return string(s.GridType) }
func (s StatCard) WithGroup(g string) StatCard  { s.GridType = GridType(g); return s }

// StatCardGrids holds both stat card collections
type StatCardGrids struct {
	Primary   []StatCard `json:"primary"`
	Secondary []StatCard `json:"secondary"`
}

// ChartType is the rendering kind of a chart
type ChartType string

const (
	ChartPie   ChartType = "pie"
	ChartBar   ChartType = "bar"
	ChartLine  ChartType = "line"
	ChartCombo ChartType = "combo"
)

// ChartSection names the chart collection a chart lives in
type ChartSection string

const (
	SectionStatusCharts      ChartSection = "status-charts"
	SectionAnalyticsOverview ChartSection = "analytics-overview"
)

type Chart struct {
	ID      string       `json:"id"`
	Type    ChartType    `json:"type"`
	Title   string       `json:"title"`
	Section ChartSection `json:"section"`
	Order   int          `json:"order"`
	Visible bool         `json:"visible"`
}

func (c Chart) ItemID() string            { return c.ID }
func (c Chart) WithOrder(order int) Chart { c.Order = order; return c }
func (c Chart) WithVisible(v bool) Chart  { c.Visible = v; return c }
func (c Chart) IsVisible() bool           { return c.Visible }
func (c Chart) Group() string             { return string(c.Section) }
func (c Chart) WithGroup(g string) Chart  { c.Section = ChartSection(g); return c }

// ChartSections holds both chart collections
type ChartSections struct {
	StatusCharts      []Chart `json:"status-charts"`
	AnalyticsOverview []Chart `json:"analytics-overview"`
}

type PackageType string

const (
	PackageTypePackage PackageType = "package"
	PackageTypeOffer   PackageType = "offer"
)

// PackageCard is a package or offer tile
type PackageCard struct {
	ID      string      `json:"id"`
	Type    PackageType `json:"type"`
	Title   string      `json:"title"`
	Order   int         `json:"order"`
	Visible bool        `json:"visible"`
}

func (p PackageCard) ItemID() string                  { return p.ID }
func (p PackageCard) WithOrder(order int) PackageCard { p.Order = order; return p }
func (p PackageCard) WithVisible(v bool) PackageCard  { p.Visible = v; return p }
func (p PackageCard) IsVisible() bool                 { return p.Visible }

// StatsSection is one block of the statistics area; sections are reordered as a whole
type StatsSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

func (s StatsSection) ItemID() string                   { return s.ID }
func (s StatsSection) WithOrder(order int) StatsSection { s.Order = order; return s }
func (s StatsSection) WithVisible(v bool) StatsSection  { s.Visible = v; return s }
func (s StatsSection) IsVisible() bool                  { return s.Visible }

// GridSize is the density of the stat card grids
type GridSize string

const (
	GridSizeCompact GridSize = "compact"
	GridSizeNormal  GridSize = "normal"
	GridSizeLarge   GridSize = "large"
)

// Valid reports whether g is a known grid size
func (g GridSize) Valid() bool {
	return g == GridSizeCompact || g == GridSizeNormal || g == GridSizeLarge
}

// DashboardStats feeds the live values of stat cards
type DashboardStats struct {
	TotalJobs       int64 `json:"total_jobs"`
	TotalApplicants int64 `json:"total_applicants"`
	TotalLeads      int64 `json:"total_leads"`
	TotalPackages   int64 `json:"total_packages"`
	TotalOffers     int64 `json:"total_offers"`
}
