package service

import (
	"context"

	"github.com/riskintel/riskintel-backend/internal/records/repository"
)

// DashboardSummary holds the per-type record counts for one owner
type DashboardSummary struct {
	Companies   int `json:"companies"`
	Sectors     int `json:"sectors"`
	Risks       int `json:"risks"`
	Assessments int `json:"assessments"`
}

// DashboardService aggregates record counts across the four stores
type DashboardService struct {
	companies   *repository.CompanyRepository
	sectors     *repository.SectorRepository
	risks       *repository.RiskRepository
	assessments *repository.ErgonomicsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(companies *repository.CompanyRepository, sectors *repository.SectorRepository, risks *repository.RiskRepository, assessments *repository.ErgonomicsRepository) *DashboardService {
	return &DashboardService{
		companies:   companies,
		sectors:     sectors,
		risks:       risks,
		assessments: assessments,
	}
}

// Summary returns the owner's record counts
func (s *DashboardService) Summary(ctx context.Context, ownerID string) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	var err error

	if summary.Companies, err = s.companies.CountByOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if summary.Sectors, err = s.sectors.CountByOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if summary.Risks, err = s.risks.CountByOwner(ctx, ownerID); err != nil {
		return nil, err
	}
	if summary.Assessments, err = s.assessments.CountByOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	return summary, nil
}
