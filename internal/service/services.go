package service

import (
	"time"

	"github.com/deppfellow/rfcboard/internal/config"
	"github.com/deppfellow/rfcboard/internal/repository"
	"github.com/deppfellow/rfcboard/internal/server"
)

type Services struct {
	Participants *ParticipantService
	RFCs         *RFCService
	Votes        *VoteService

	now Clock
}

func NewService(s *server.Server, repos *repository.Repositories, opts ...Option) (*Services, error) {
	return New(repos, s.Config.Voting, opts...), nil
}

// New builds the services over repos.
func New(repos *repository.Repositories, voting config.VotingConfig, opts ...Option) *Services {
	services := &Services{now: time.Now}
	for _, opt := range opts {
		opt(services)
	}

	if voting.DefaultDuration <= 0 {
		voting.DefaultDuration = config.DefaultVoteDuration
	}

	services.Participants = &ParticipantService{repos: repos}
	services.RFCs = &RFCService{repos: repos, voting: voting, now: services.now}
	services.Votes = &VoteService{repos: repos, now: services.now}

	return services
}
