package service

import (
	"context"

	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/repository"
)

type ParticipantService struct {
	repos *repository.Repositories
}

// Register creates a participant. Usernames are unique.
func (s *ParticipantService) Register(ctx context.Context, attrs model.ParticipantAttrs) (*model.Participant, error) {
	return s.repos.Participants.Create(ctx, attrs)
}

func (s *ParticipantService) Get(ctx context.Context, id int64) (*model.Participant, error) {
	return s.repos.Participants.GetByID(ctx, id)
}
