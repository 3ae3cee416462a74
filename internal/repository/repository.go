package repository

import (
	"context"

	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/repo"
)

type ParticipantRepository struct {
	repo *repo.Repo
}

func (r *ParticipantRepository) Create(ctx context.Context, attrs model.ParticipantAttrs) (*model.Participant, error) {
	record, err := repo.Insert[model.ParticipantRecord](ctx, r.repo, attrs)
	if err != nil {
		return nil, err
	}
	return model.NewParticipant(record), nil
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*model.Participant, error) {
	record, err := repo.Find[model.ParticipantRecord](ctx, r.repo, id)
	if err != nil {
		return nil, err
	}
	return model.NewParticipant(record), nil
}

type RFCRepository struct {
	repo *repo.Repo
}

func (r *RFCRepository) Create(ctx context.Context, attrs model.RFCAttrs) (*model.RFC, error) {
	record, err := repo.Insert[model.RFCRecord](ctx, r.repo, attrs)
	if err != nil {
		return nil, err
	}
	return model.NewRFC(record), nil
}

func (r *RFCRepository) GetByID(ctx context.Context, id int64) (*model.RFC, error) {
	record, err := repo.Find[model.RFCRecord](ctx, r.repo, id)
	if err != nil {
		return nil, err
	}
	return model.NewRFC(record), nil
}

// LoadVotes returns the votes of rfc, querying them on first use only.
func (r *RFCRepository) LoadVotes(ctx context.Context, rfc *model.RFC) ([]model.VoteRecord, error) {
	if err := repo.Load[model.VoteRecord](ctx, r.repo, rfc.Votes); err != nil {
		return nil, err
	}
	votes, _ := rfc.Votes.Records()
	return votes, nil
}

type VoteRepository struct {
	repo *repo.Repo
}

func (r *VoteRepository) Create(ctx context.Context, attrs model.VoteAttrs) (*model.Vote, error) {
	record, err := repo.Insert[model.VoteRecord](ctx, r.repo, attrs)
	if err != nil {
		return nil, err
	}
	return model.NewVote(record), nil
}

func (r *VoteRepository) GetByID(ctx context.Context, id int64) (*model.Vote, error) {
	record, err := repo.Find[model.VoteRecord](ctx, r.repo, id)
	if err != nil {
		return nil, err
	}
	return model.NewVote(record), nil
}

// LoadMotions returns the motions of vote, querying them on first use only.
func (r *VoteRepository) LoadMotions(ctx context.Context, vote *model.Vote) ([]model.MotionRecord, error) {
	if err := repo.Load[model.MotionRecord](ctx, r.repo, vote.Motions); err != nil {
		return nil, err
	}
	motions, _ := vote.Motions.Records()
	return motions, nil
}

// LoadRFC returns the RFC the vote belongs to. found is false when the
// RFC no longer exists.
func (r *VoteRepository) LoadRFC(ctx context.Context, vote *model.Vote) (model.RFCRecord, bool, error) {
	if err := repo.Load[model.RFCRecord](ctx, r.repo, vote.RFC); err != nil {
		return model.RFCRecord{}, false, err
	}
	rfc, found, _ := vote.RFC.Record()
	return rfc, found, nil
}

type MotionRepository struct {
	repo *repo.Repo
}

// Upsert passes a motion, replacing the participant's previous motion on
// the same vote.
func (r *MotionRepository) Upsert(ctx context.Context, attrs model.MotionAttrs) (*model.Motion, error) {
	record, err := repo.Insert[model.MotionRecord](ctx, r.repo, attrs)
	if err != nil {
		return nil, err
	}
	return model.NewMotion(record), nil
}

// FindOne returns the only motion matching q.
func (r *MotionRepository) FindOne(ctx context.Context, q model.MotionQuery) (*model.Motion, error) {
	record, err := repo.One[model.MotionRecord](ctx, r.repo, q)
	if err != nil {
		return nil, err
	}
	return model.NewMotion(record), nil
}

func (r *MotionRepository) List(ctx context.Context, q model.MotionQuery) ([]model.MotionRecord, error) {
	return repo.All[model.MotionRecord](ctx, r.repo, q)
}
