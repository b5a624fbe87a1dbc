package layout

import "clinic-portal/internal/model"

// DefaultWidgets is the widget arrangement of a fresh dashboard
func DefaultWidgets() []model.Widget {
	return []model.Widget{
		{ID: "widget-key-statistics", Type: model.WidgetKeyStatistics, Title: "Key Statistics", Visible: true, Order: 0},
		{ID: "widget-status-charts", Type: model.WidgetStatusCharts, Title: "Status Charts", Visible: true, Order: 1},
		{ID: "widget-analytics-overview", Type: model.WidgetAnalytics, Title: "Analytics Overview", Visible: true, Order: 2},
		{ID: "widget-packages-offers", Type: model.WidgetPackagesOffers, Title: "Packages & Offers", Visible: true, Order: 3},
		{ID: "widget-recent-jobs", Type: model.WidgetRecentJobs, Title: "Recent Job Postings", Visible: true, Order: 4},
		{ID: "widget-recent-applicants", Type: model.WidgetRecentApplicants, Title: "Recent Applicants", Visible: true, Order: 5},
		{ID: "widget-recent-leads", Type: model.WidgetRecentLeads, Title: "Recent Leads", Visible: true, Order: 6},
		{ID: "widget-quick-actions", Type: model.WidgetQuickActions, Title: "Quick Actions", Visible: true, Order: 7},
	}
}

func DefaultStatCards() model.StatCardGrids {
	return model.StatCardGrids{
		Primary: []model.StatCard{
			{ID: "stat-total-jobs", Label: "Total Jobs", Icon: "briefcase", ModuleKey: "clinic_jobs", GridType: model.GridPrimary, Order: 0, Visible: true},
			{ID: "stat-total-applicants", Label: "Total Applicants", Icon: "users", ModuleKey: "clinic_applicants", GridType: model.GridPrimary, Order: 1, Visible: true},
			{ID: "stat-total-leads", Label: "Total Leads", Icon: "target", ModuleKey: "clinic_lead", GridType: model.GridPrimary, Order: 2, Visible: true},
		},
		Secondary: []model.StatCard{
			{ID: "stat-total-packages", Label: "Total Packages", Icon: iconPackage, ModuleKey: "packages", GridType: model.GridSecondary, Order: 0, Visible: true},
			{ID: "stat-total-offers", Label: "Total Offers", Icon: iconGift, ModuleKey: "offers", GridType: model.GridSecondary, Order: 1, Visible: true},
		},
	}
}

func DefaultCharts() model.ChartSections {
	return model.ChartSections{
		StatusCharts: []model.Chart{
			{ID: "chart-job-status", Type: model.ChartPie, Title: "Job Status", Section: model.SectionStatusCharts, Order: 0, Visible: true},
			{ID: "chart-applicant-status", Type: model.ChartPie, Title: "Applicant Status", Section: model.SectionStatusCharts, Order: 1, Visible: true},
			{ID: "chart-lead-status", Type: model.ChartBar, Title: "Lead Status", Section: model.SectionStatusCharts, Order: 2, Visible: true},
		},
		AnalyticsOverview: []model.Chart{
			{ID: "chart-monthly-applications", Type: model.ChartLine, Title: "Monthly Applications", Section: model.SectionAnalyticsOverview, Order: 0, Visible: true},
			{ID: "chart-hiring-funnel", Type: model.ChartCombo, Title: "Hiring Funnel", Section: model.SectionAnalyticsOverview, Order: 1, Visible: true},
		},
	}
}

func DefaultPackageCards() []model.PackageCard {
	return []model.PackageCard{
		{ID: "card-basic-package", Type: model.PackageTypePackage, Title: "Basic Package", Order: 0, Visible: true},
		{ID: "card-premium-package", Type: model.PackageTypePackage, Title: "Premium Package", Order: 1, Visible: true},
		{ID: "card-seasonal-offer", Type: model.PackageTypeOffer, Title: "Seasonal Offer", Order: 2, Visible: true},
	}
}

func DefaultSections() []model.StatsSection {
	return []model.StatsSection{
		{ID: "primary-stats", Title: "Primary Statistics", Order: 0, Visible: true},
		{ID: "secondary-stats", Title: "Secondary Statistics", Order: 1, Visible: true},
		{ID: "packages-offers", Title: "Packages & Offers", Order: 2, Visible: true},
	}
}

// DefaultState is the full layout of a fresh dashboard
func DefaultState() State {
	return State{
		Widgets:   DefaultWidgets(),
		StatCards: DefaultStatCards(),
		Charts:    DefaultCharts(),
		Packages:  DefaultPackageCards(),
		Sections:  DefaultSections(),
		GridSize:  model.GridSizeNormal,
	}
}
