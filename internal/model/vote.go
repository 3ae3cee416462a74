package model

import (
	"fmt"
	"time"

	"github.com/deppfellow/rfcboard/internal/errs"
	"github.com/deppfellow/rfcboard/internal/repo"
	"github.com/deppfellow/rfcboard/internal/validation"
)

// VoteRecord is a row of the votes table.
type VoteRecord struct {
	ID        int64     `db:"id" json:"id"`
	RFCID     int64     `db:"rfc_id" json:"rfcId"`
	Deadline  time.Time `db:"deadline" json:"deadline"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (VoteRecord) Table() repo.Table {
	return repo.Table{Name: "votes", PrimaryKey: "id"}
}

func (v VoteRecord) PrimaryKey() int64 { return v.ID }

// Vote is one round of voting on an RFC, open until its deadline.
type Vote struct {
	VoteRecord
	Motions *repo.HasMany[MotionRecord] `json:"-"`
	RFC     *repo.HasOne[RFCRecord]     `json:"-"`
}

func NewVote(record VoteRecord) *Vote {
	return &Vote{
		VoteRecord: record,
		Motions:    repo.NewHasMany[MotionRecord](MotionsByVote{VoteID: record.ID}),
		RFC:        repo.NewHasOne[RFCRecord](repo.ByID[RFCRecord](record.RFCID)),
	}
}

// IsPastDeadline reports whether t is strictly after the deadline.
func (v *Vote) IsPastDeadline(t time.Time) bool {
	return t.After(v.Deadline)
}

// VoteAttrs opens a vote on an RFC.
type VoteAttrs struct {
	RFCID    int64
	Deadline *time.Time
}

// WithDefaults fills a missing deadline with now + duration.
func (a VoteAttrs) WithDefaults(now time.Time, duration time.Duration) VoteAttrs {
	if a.Deadline == nil {
		deadline := now.Add(duration)
		a.Deadline = &deadline
	}
	return a
}

func (a VoteAttrs) Changeset() *repo.Changeset[VoteRecord] {
	var deadline any
	if a.Deadline != nil {
		deadline = *a.Deadline
	}

	return repo.NewChangeset[VoteRecord]().
		Put("rfc_id", a.RFCID, validation.Tag("gt=0")).
		Put("deadline", deadline, validation.Check(func(v any) bool {
			_, ok := v.(time.Time)
			return ok
		}, "is required"))
}

// VotesByRFC selects the votes of one RFC, oldest first.
type VotesByRFC struct {
	RFCID int64
}

func (q VotesByRFC) ToSQL() (string, []any, error) {
	return repo.From[VoteRecord]().
		Where("rfc_id", q.RFCID).
		OrderBy("id").
		ToSQL()
}

// DeadlinePassedCode identifies motions refused because the vote closed.
const DeadlinePassedCode = "VOTE_DEADLINE_PASSED"

// DeadlinePassedError is returned when a motion arrives after the
// deadline of its vote.
type DeadlinePassedError struct {
	*errs.DomainError
	Vote        *Vote
	Participant *Participant
	At          time.Time
}

func NewDeadlinePassedError(vote *Vote, participant *Participant, at time.Time) *DeadlinePassedError {
	return &DeadlinePassedError{
		DomainError: &errs.DomainError{
			Code: DeadlinePassedCode,
			Message: fmt.Sprintf(
				"Attempted to pass motion for a vote at %s when deadline is %s",
				at.UTC().Format(time.RFC3339), vote.Deadline.UTC().Format(time.RFC3339),
			),
			Refs: map[string]int64{
				"vote":        vote.ID,
				"participant": participant.ID,
			},
		},
		Vote:        vote,
		Participant: participant,
		At:          at,
	}
}

func (e *DeadlinePassedError) Unwrap() error {
	return e.DomainError
}
