package repository

import (
	"context"

	"clinic-portal/internal/model"

	"gorm.io/gorm"
)

type StatsRepository interface {
	GetDashboardStats(ctx context.Context) (model.DashboardStats, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db}
}

func (r *statsRepo) GetDashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		query *gorm.DB
		dst   *int64
	}{
		{db.Model(&model.Job{}), &stats.TotalJobs},
		{db.Model(&model.Applicant{}), &stats.TotalApplicants},
		{db.Model(&model.Lead{}), &stats.TotalLeads},
		{db.Model(&model.Offering{}).Where("type = ?", model.PackageTypePackage), &stats.TotalPackages},
		{db.Model(&model.Offering{}).Where("type = ?", model.PackageTypeOffer), &stats.TotalOffers},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return model.DashboardStats{}, err
		}
	}

	return stats, nil
}

// defaultOfferings back the package cards of a fresh dashboard
var defaultOfferings = []model.Offering{
	{Title: "Basic Package", Type: model.PackageTypePackage},
	{Title: "Premium Package", Type: model.PackageTypePackage},
	{Title: "Seasonal Offer", Type: model.PackageTypeOffer},
}

// SeedDefaults creates the default offerings if none exist
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Offering{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	offerings := make([]model.Offering, len(defaultOfferings))
	copy(offerings, defaultOfferings)
	return db.WithContext(ctx).Create(&offerings).Error
}
