package service

import (
	"context"
	"time"

	"github.com/deppfellow/rfcboard/internal/config"
	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/repository"
)

type RFCService struct {
	repos  *repository.Repositories
	voting config.VotingConfig
	now    Clock
}

// Propose records a new RFC in the active status.
func (s *RFCService) Propose(ctx context.Context, attrs model.RFCAttrs) (*model.RFC, error) {
	return s.repos.RFCs.Create(ctx, attrs)
}

func (s *RFCService) Get(ctx context.Context, id int64) (*model.RFC, error) {
	return s.repos.RFCs.GetByID(ctx, id)
}

// Votes returns the votes of rfc. They are read from the database on the
// first call for this rfc only.
func (s *RFCService) Votes(ctx context.Context, rfc *model.RFC) ([]model.VoteRecord, error) {
	return s.repos.RFCs.LoadVotes(ctx, rfc)
}

// OpenVote opens a vote on the RFC. A nil deadline closes the vote after
// the configured default duration.
func (s *RFCService) OpenVote(ctx context.Context, rfcID int64, deadline *time.Time) (*model.Vote, error) {
	rfc, err := s.repos.RFCs.GetByID(ctx, rfcID)
	if err != nil {
		return nil, err
	}

	attrs := model.VoteAttrs{RFCID: rfc.ID, Deadline: deadline}.
		WithDefaults(s.now(), s.voting.DefaultDuration)

	return s.repos.Votes.Create(ctx, attrs)
}
