package service

import (
	"context"

	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/repository"
)

type VoteService struct {
	repos *repository.Repositories
	now   Clock
}

func (s *VoteService) Get(ctx context.Context, id int64) (*model.Vote, error) {
	return s.repos.Votes.GetByID(ctx, id)
}

// RecordMotion passes the participant's motion on the vote. Once the
// deadline has passed it fails with *model.DeadlinePassedError without
// touching the database. Passing a second motion replaces the first.
func (s *VoteService) RecordMotion(ctx context.Context, attrs model.MotionAttrs) (*model.Motion, error) {
	if attrs.Vote != nil && attrs.Participant != nil {
		if now := s.now(); attrs.Vote.IsPastDeadline(now) {
			return nil, model.NewDeadlinePassedError(attrs.Vote, attrs.Participant, now)
		}
	}

	return s.repos.Motions.Upsert(ctx, attrs)
}

// PassMotion loads the vote and the participant, then records the motion.
func (s *VoteService) PassMotion(ctx context.Context, voteID, participantID int64, motionType model.MotionType, comment *string) (*model.Motion, error) {
	vote, err := s.repos.Votes.GetByID(ctx, voteID)
	if err != nil {
		return nil, err
	}

	participant, err := s.repos.Participants.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}

	return s.RecordMotion(ctx, model.MotionAttrs{
		Vote:        vote,
		Participant: participant,
		Type:        motionType,
		Comment:     comment,
	})
}

// Motions returns the motions of vote, reading them on first use only.
func (s *VoteService) Motions(ctx context.Context, vote *model.Vote) ([]model.MotionRecord, error) {
	return s.repos.Votes.LoadMotions(ctx, vote)
}

// FindMotion returns the participant's motion on the vote.
func (s *VoteService) FindMotion(ctx context.Context, voteID, participantID int64) (*model.Motion, error) {
	return s.repos.Motions.FindOne(ctx, model.MotionQuery{
		VoteID:        &voteID,
		ParticipantID: &participantID,
	})
}

// FilterMotions lists the motions matching q.
func (s *VoteService) FilterMotions(ctx context.Context, q model.MotionQuery) ([]model.MotionRecord, error) {
	return s.repos.Motions.List(ctx, q)
}

// RFC returns the RFC the vote belongs to. found is false when the RFC
// no longer exists.
func (s *VoteService) RFC(ctx context.Context, vote *model.Vote) (model.RFCRecord, bool, error) {
	return s.repos.Votes.LoadRFC(ctx, vote)
}
