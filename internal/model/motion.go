package model

import (
	"fmt"
	"time"

	"github.com/deppfellow/rfcboard/internal/repo"
	"github.com/deppfellow/rfcboard/internal/validation"
)

// MotionType is the decision a participant passes on a vote.
type MotionType string

const (
	MotionAccept MotionType = "accept"
	MotionReject MotionType = "reject"
)

func ParseMotionType(s string) (MotionType, error) {
	switch t := MotionType(s); t {
	case MotionAccept, MotionReject:
		return t, nil
	}
	return "", fmt.Errorf("unknown motion type %q", s)
}

// Scan implements sql.Scanner; unknown values fail the decode.
func (t *MotionType) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return err
	}

	motionType, err := ParseMotionType(text)
	if err != nil {
		return err
	}
	*t = motionType
	return nil
}

// MotionRecord is a row of the motions table.
type MotionRecord struct {
	ID            int64      `db:"id" json:"id"`
	VoteID        int64      `db:"vote_id" json:"voteId"`
	ParticipantID int64      `db:"participant_id" json:"participantId"`
	Type          MotionType `db:"type" json:"type"`
	Comment       *string    `db:"comment" json:"comment"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

func (MotionRecord) Table() repo.Table {
	return repo.Table{Name: "motions", PrimaryKey: "id"}
}

func (m MotionRecord) PrimaryKey() int64 { return m.ID }

// Motion is one participant's decision on one vote.
type Motion struct {
	MotionRecord
}

func NewMotion(record MotionRecord) *Motion {
	return &Motion{MotionRecord: record}
}

// MotionAttrs passes a motion. A participant has at most one motion per
// vote: passing another one replaces its type and comment and keeps its id.
type MotionAttrs struct {
	Vote        *Vote
	Participant *Participant
	Type        MotionType
	Comment     *string
}

func (a MotionAttrs) Changeset() *repo.Changeset[MotionRecord] {
	var voteID, participantID int64
	if a.Vote != nil {
		voteID = a.Vote.ID
	}
	if a.Participant != nil {
		participantID = a.Participant.ID
	}

	return repo.NewChangeset[MotionRecord]().
		Put("vote_id", voteID, validation.Tag("gt=0")).
		Put("participant_id", participantID, validation.Tag("gt=0")).
		Put("type", string(a.Type), validation.Tag("oneof=accept reject")).
		Put("comment", a.Comment, validation.Tag("omitempty,max=2000")).
		OnConflict("vote_id", "participant_id").
		DoUpdate("type", "comment", "updated_at")
}

// MotionsByVote selects every motion of a vote, oldest first.
type MotionsByVote struct {
	VoteID int64
}

func (q MotionsByVote) ToSQL() (string, []any, error) {
	return repo.From[MotionRecord]().
		Where("vote_id", q.VoteID).
		OrderBy("id").
		ToSQL()
}

// MotionQuery filters motions by any combination of vote, participant
// and type. Nil criteria are left out of the statement; with none set
// every motion is selected.
type MotionQuery struct {
	VoteID        *int64
	ParticipantID *int64
	Type          *MotionType
}

func (q MotionQuery) ToSQL() (string, []any, error) {
	s := repo.From[MotionRecord]()

	if q.VoteID != nil {
		s.Where("vote_id", *q.VoteID)
	}
	if q.ParticipantID != nil {
		s.Where("participant_id", *q.ParticipantID)
	}
	if q.Type != nil {
		s.Where("type", string(*q.Type))
	}
	if q.VoteID == nil && q.ParticipantID == nil && q.Type == nil {
		s.All()
	}

	return s.OrderBy("id").ToSQL()
}
