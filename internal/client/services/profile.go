package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/msclient/internal/client/client"
	"github.com/dmitrijs2005/msclient/internal/client/models"
	"github.com/dmitrijs2005/msclient/internal/logging"
)

// ProfileService looks up public member profiles. Results are not cached.
type ProfileService interface {
	Profile(ctx context.Context, name string) (*models.Profile, error)
}

type profileService struct {
	api    client.Client
	logger logging.Logger
}

func NewProfileService(api client.Client, logger logging.Logger) ProfileService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &profileService{api: api, logger: logger}
}

func (p *profileService) Profile(ctx context.Context, name string) (*models.Profile, error) {
	profile, err := p.api.GetProfile(ctx, name)
	if err != nil {
		p.logger.Debug(ctx, "profile lookup failed", "name", name, "error", err)
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	return profile, nil
}
