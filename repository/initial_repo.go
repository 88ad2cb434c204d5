package repository

import (
	"context"

	"roadwaysledger/models"
)

// InitialRepository keeps the single company profile. GetInitial returns
// nil, nil before the profile has been saved.
type InitialRepository interface {
	SaveInitial(ctx context.Context, profile *models.CompanyProfile) error
	GetInitial(ctx context.Context) (*models.CompanyProfile, error)
}
