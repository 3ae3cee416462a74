// Package model holds the records, entities and attribute sets of the
// voting board: participants, requests for comments, votes and motions.
package model

import (
	"time"

	"github.com/deppfellow/rfcboard/internal/repo"
	"github.com/deppfellow/rfcboard/internal/validation"
)

// ParticipantRecord is a row of the participants table.
type ParticipantRecord struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (ParticipantRecord) Table() repo.Table {
	return repo.Table{Name: "participants", PrimaryKey: "id"}
}

func (p ParticipantRecord) PrimaryKey() int64 { return p.ID }

// Participant is someone allowed to pass motions on votes.
type Participant struct {
	ParticipantRecord
}

func NewParticipant(record ParticipantRecord) *Participant {
	return &Participant{ParticipantRecord: record}
}

// ParticipantAttrs registers a participant.
type ParticipantAttrs struct {
	Username string
}

func (a ParticipantAttrs) Changeset() *repo.Changeset[ParticipantRecord] {
	return repo.NewChangeset[ParticipantRecord]().
		Put("username", a.Username, validation.Tag("required,min=1,max=64"))
}
