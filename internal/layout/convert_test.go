package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-portal/internal/model"
)

func TestConvertSwapKeepsSlotIdentity(t *testing.T) {
	t.Parallel()

	stats := model.DashboardStats{TotalPackages: 4, TotalOffers: 7}
	grid := DefaultStatCards().Primary
	grid[0].Visible = false
	packages := DefaultPackageCards()

	newGrid, newPackages, ok := ConvertSwap(grid, packages, "stat-total-jobs", "card-seasonal-offer", stats)
	require.True(t, ok)

	require.Equal(t, model.StatCard{
		ID:        "stat-total-jobs",
		Label:     "Seasonal Offer",
		Value:     7,
		Icon:      "gift",
		ModuleKey: "offers",
		GridType:  model.GridPrimary,
		Order:     0,
		Visible:   false,
	}, newGrid[0])

	require.Equal(t, model.PackageCard{
		ID:      "card-seasonal-offer",
		Type:    model.PackageTypePackage,
		Title:   "Total Jobs",
		Order:   2,
		Visible: true,
	}, newPackages[2])

	require.Len(t, newGrid, len(grid))
	require.Len(t, newPackages, len(packages))
	require.Equal(t, "Total Jobs", grid[0].Label, "input must not be mutated")
}

func TestConvertSwapPackageValues(t *testing.T) {
	t.Parallel()

	stats := model.DashboardStats{TotalPackages: 4, TotalOffers: 7}
	grid := DefaultStatCards().Secondary

	newGrid, newPackages, ok := ConvertSwap(grid, DefaultPackageCards(), "stat-total-offers", "card-basic-package", stats)
	require.True(t, ok)
	require.Equal(t, int64(4), newGrid[1].Value)
	require.Equal(t, "package", newGrid[1].Icon)
	require.Equal(t, "Basic Package", newGrid[1].Label)
	require.Equal(t, model.GridSecondary, newGrid[1].GridType)

	require.Equal(t, model.PackageTypeOffer, newPackages[0].Type)
	require.Equal(t, "Total Offers", newPackages[0].Title)
	require.Equal(t, "card-basic-package", newPackages[0].ID)

	_, _, ok = ConvertSwap(grid, DefaultPackageCards(), "missing", "card-basic-package", stats)
	require.False(t, ok)
}

func TestPackageTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		card model.StatCard
		want model.PackageType
	}{
		{"module key offer", model.StatCard{ModuleKey: "offers", Label: "Deals"}, model.PackageTypeOffer},
		{"label offer", model.StatCard{ModuleKey: "promo", Label: "Active Offers"}, model.PackageTypeOffer},
		{"package", model.StatCard{ModuleKey: "packages", Label: "Total Packages"}, model.PackageTypePackage},
		{"anything else", model.StatCard{ModuleKey: "clinic_jobs", Label: "Total Jobs"}, model.PackageTypePackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, PackageTypeOf(tt.card))
		})
	}
}

func TestStatValue(t *testing.T) {
	t.Parallel()

	stats := model.DashboardStats{TotalJobs: 1, TotalApplicants: 2, TotalLeads: 3, TotalPackages: 4, TotalOffers: 5}

	for key, want := range map[string]int64{
		"clinic_jobs":       1,
		"clinic_applicants": 2,
		"clinic_lead":       3,
		"packages":          4,
		"offers":            5,
	} {
		v, ok := StatValue(key, stats)
		require.True(t, ok, key)
		require.Equal(t, want, v, key)
	}

	_, ok := StatValue("revenue", stats)
	require.False(t, ok)
}
