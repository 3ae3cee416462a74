package model

import (
	"fmt"
	"time"

	"github.com/deppfellow/rfcboard/internal/repo"
	"github.com/deppfellow/rfcboard/internal/validation"
)

// RFCStatus is the lifecycle state of a request for comments.
type RFCStatus string

const (
	RFCStatusActive    RFCStatus = "active"
	RFCStatusApproved  RFCStatus = "approved"
	RFCStatusDenied    RFCStatus = "denied"
	RFCStatusDiscarded RFCStatus = "discarded"
	RFCStatusObsolete  RFCStatus = "obsolete"
)

// ParseRFCStatus accepts only the lowercase status names.
func ParseRFCStatus(s string) (RFCStatus, error) {
	switch status := RFCStatus(s); status {
	case RFCStatusActive, RFCStatusApproved, RFCStatusDenied, RFCStatusDiscarded, RFCStatusObsolete:
		return status, nil
	}
	return "", fmt.Errorf("unknown rfc status %q", s)
}

// Scan implements sql.Scanner; unknown values fail the decode.
func (s *RFCStatus) Scan(src any) error {
	text, err := scanText(src)
	if err != nil {
		return err
	}

	status, err := ParseRFCStatus(text)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// RFCRecord is a row of the request_for_comments table.
type RFCRecord struct {
	ID         int64     `db:"id" json:"id"`
	Status     RFCStatus `db:"status" json:"status"`
	Proposal   string    `db:"proposal" json:"proposal"`
	Topic      string    `db:"topic" json:"topic"`
	Supersedes *int64    `db:"supersedes" json:"supersedes"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

func (RFCRecord) Table() repo.Table {
	return repo.Table{Name: "request_for_comments", PrimaryKey: "id"}
}

func (r RFCRecord) PrimaryKey() int64 { return r.ID }

// RFC is a proposal put to vote. Its votes are loaded on demand.
type RFC struct {
	RFCRecord
	Votes *repo.HasMany[VoteRecord] `json:"-"`
}

func NewRFC(record RFCRecord) *RFC {
	return &RFC{
		RFCRecord: record,
		Votes:     repo.NewHasMany[VoteRecord](VotesByRFC{RFCID: record.ID}),
	}
}

// RFCAttrs proposes a new RFC. New RFCs always start active.
type RFCAttrs struct {
	Topic      string
	Proposal   string
	Supersedes *int64
}

func (a RFCAttrs) Changeset() *repo.Changeset[RFCRecord] {
	cs := repo.NewChangeset[RFCRecord]().
		Put("topic", a.Topic, validation.Tag("required,max=255")).
		Put("proposal", a.Proposal, validation.Tag("required"))

	if a.Supersedes != nil {
		cs.Put("supersedes", *a.Supersedes, validation.Tag("gt=0"))
	}
	return cs
}

func scanText(src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into a text enum", src)
	}
}
