package layout

import (
	"slices"
	"strings"

	"clinic-portal/internal/model"
)

const (
	iconPackage = "package"
	iconGift    = "gift"
)

// ConvertSwap exchanges the contents of a stat card slot and a package/offer slot.
// Each slot keeps its own id and visibility; only the content crosses over and is
// converted to the slot's entity kind.
func ConvertSwap(grid []model.StatCard, packages []model.PackageCard, statID, packageID string, stats model.DashboardStats) ([]model.StatCard, []model.PackageCard, bool) {
	i := IndexOf(grid, statID)
	j := IndexOf(packages, packageID)
	if i < 0 || j < 0 {
		return grid, packages, false
	}

	stat := grid[i]
	pkg := packages[j]

	newGrid := slices.Clone(grid)
	newPackages := slices.Clone(packages)
	newGrid[i] = StatCardFromPackage(pkg, stat.ID, stat.GridType, i, stat.Visible, stats)
	newPackages[j] = PackageFromStatCard(stat, pkg.ID, j, pkg.Visible)
	return Renumber(newGrid), Renumber(newPackages), true
}

// StatCardFromPackage renders a package or offer as a stat card occupying the given slot
func StatCardFromPackage(pkg model.PackageCard, id string, grid model.GridType, order int, visible bool, stats model.DashboardStats) model.StatCard {
	card := model.StatCard{
		ID:        id,
		Label:     pkg.Title,
		GridType:  grid,
		Order:     order,
		Visible:   visible,
		Value:     stats.TotalPackages,
		Icon:      iconPackage,
		ModuleKey: "packages",
	}
	if pkg.Type == model.PackageTypeOffer {
		card.Value = stats.TotalOffers
		card.Icon = iconGift
		card.ModuleKey = "offers"
	}
	return card
}

// PackageFromStatCard renders a stat card as a package/offer card occupying the given slot
func PackageFromStatCard(card model.StatCard, id string, order int, visible bool) model.PackageCard {
	return model.PackageCard{
		ID:      id,
		Type:    PackageTypeOf(card),
		Title:   card.Label,
		Order:   order,
		Visible: visible,
	}
}

// PackageTypeOf infers offer vs package from a stat card's module key or label
func PackageTypeOf(card model.StatCard) model.PackageType {
	if strings.Contains(strings.ToLower(card.ModuleKey), "offer") || strings.Contains(strings.ToLower(card.Label), "offer") {
		return model.PackageTypeOffer
	}
	return model.PackageTypePackage
}

// StatValue picks the live counter matching a stat card's module key.
// ok is false when the key maps to no counter.
func StatValue(moduleKey string, stats model.DashboardStats) (int64, bool) {
	key := strings.ToLower(moduleKey)
	switch {
	case strings.Contains(key, "applicant"):
		return stats.TotalApplicants, true
	case strings.Contains(key, "job"):
		return stats.TotalJobs, true
	case strings.Contains(key, "lead"):
		return stats.TotalLeads, true
	case strings.Contains(key, "offer"):
		return stats.TotalOffers, true
	case strings.Contains(key, "package"):
		return stats.TotalPackages, true
	}
	return 0, false
}
