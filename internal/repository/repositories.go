// Package repository handles all interactions with the database.
//
// Each repository speaks for one table. It builds its statements from the
// model package's attribute sets and queries and runs them through the
// data access core in package repo, so no repository holds SQL text.
package repository

import (
	"github.com/deppfellow/rfcboard/internal/repo"
	"github.com/deppfellow/rfcboard/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Participants *ParticipantRepository
	RFCs         *RFCRepository
	Votes        *VoteRepository
	Motions      *MotionRepository
}

// NewRepositories builds the repositories over the server's connection pool.
func NewRepositories(s *server.Server) *Repositories {
	r := repo.New(s.DB.Pool, s.Logger,
		repo.WithSlowQueryThreshold(s.Config.Observability.Logging.SlowQueryThreshold),
	)
	return New(r)
}

// New builds the repositories over an existing Repo.
func New(r *repo.Repo) *Repositories {
	return &Repositories{
		Participants: &ParticipantRepository{repo: r},
		RFCs:         &RFCRepository{repo: r},
		Votes:        &VoteRepository{repo: r},
		Motions:      &MotionRepository{repo: r},
	}
}
