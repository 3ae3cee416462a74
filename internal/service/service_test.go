package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/deppfellow/rfcboard/internal/config"
	"github.com/deppfellow/rfcboard/internal/errs"
	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/repo"
	"github.com/deppfellow/rfcboard/internal/repository"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rfcColumns    = []string{"id", "status", "proposal", "topic", "supersedes", "created_at", "updated_at"}
	voteColumns   = []string{"id", "rfc_id", "deadline", "created_at", "updated_at"}
	motionColumns = []string{"id", "vote_id", "participant_id", "type", "comment", "created_at", "updated_at"}

	upsertMotion = "INSERT INTO motions (vote_id,participant_id,type,comment) VALUES ($1,$2,$3,$4) " +
		"ON CONFLICT (vote_id, participant_id) DO UPDATE SET type = EXCLUDED.type, " +
		"comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at RETURNING *"
)

func newTestServices(t *testing.T) (*Services, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repos := repository.New(repo.New(mock, nil))
	voting := config.VotingConfig{DefaultDuration: 72 * time.Hour}

	return New(repos, voting, WithClock(func() time.Time { return now })), mock
}

func TestRecordMotion(t *testing.T) {
	ctx := context.Background()
	participant := model.NewParticipant(model.ParticipantRecord{ID: 9, Username: "austin"})

	t.Run("refused after the deadline without a statement", func(t *testing.T) {
		services, mock := newTestServices(t)
		vote := model.NewVote(model.VoteRecord{ID: 5, RFCID: 1, Deadline: now.AddDate(0, 0, -1)})

		motion, err := services.Votes.RecordMotion(ctx, model.MotionAttrs{
			Vote:        vote,
			Participant: participant,
			Type:        model.MotionAccept,
		})
		require.Error(t, err)
		assert.Nil(t, motion)

		var deadlineErr *model.DeadlinePassedError
		require.True(t, errors.As(err, &deadlineErr))
		assert.Same(t, vote, deadlineErr.Vote)
		assert.Same(t, participant, deadlineErr.Participant)
		assert.True(t, errs.IsDomain(err))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a deadline equal to now is still open", func(t *testing.T) {
		services, mock := newTestServices(t)
		vote := model.NewVote(model.VoteRecord{ID: 5, RFCID: 1, Deadline: now})

		mock.ExpectQuery(regexp.QuoteMeta(upsertMotion)).
			WithArgs(int64(5), int64(9), "accept", (*string)(nil)).
			WillReturnRows(mock.NewRows(motionColumns).
				AddRow(int64(1), int64(5), int64(9), "accept", nil, now, now))

		motion, err := services.Votes.RecordMotion(ctx, model.MotionAttrs{
			Vote:        vote,
			Participant: participant,
			Type:        model.MotionAccept,
		})
		require.NoError(t, err)
		assert.Equal(t, model.MotionAccept, motion.Type)
		assert.Nil(t, motion.Comment)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a second motion replaces the first", func(t *testing.T) {
		services, mock := newTestServices(t)
		vote := model.NewVote(model.VoteRecord{ID: 5, RFCID: 1, Deadline: now.AddDate(0, 0, 1)})
		comment := "changed my mind"

		mock.ExpectQuery(regexp.QuoteMeta(upsertMotion)).
			WithArgs(int64(5), int64(9), "accept", (*string)(nil)).
			WillReturnRows(mock.NewRows(motionColumns).
				AddRow(int64(1), int64(5), int64(9), "accept", nil, now, now))
		mock.ExpectQuery(regexp.QuoteMeta(upsertMotion)).
			WithArgs(int64(5), int64(9), "reject", &comment).
			WillReturnRows(mock.NewRows(motionColumns).
				AddRow(int64(1), int64(5), int64(9), "reject", &comment, now, now.Add(time.Minute)))

		first, err := services.Votes.RecordMotion(ctx, model.MotionAttrs{
			Vote: vote, Participant: participant, Type: model.MotionAccept,
		})
		require.NoError(t, err)

		second, err := services.Votes.RecordMotion(ctx, model.MotionAttrs{
			Vote: vote, Participant: participant, Type: model.MotionReject, Comment: &comment,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, model.MotionReject, second.Type)
		require.NotNil(t, second.Comment)
		assert.Equal(t, comment, *second.Comment)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid type never reaches the database", func(t *testing.T) {
		services, mock := newTestServices(t)
		vote := model.NewVote(model.VoteRecord{ID: 5, RFCID: 1, Deadline: now.AddDate(0, 0, 1)})

		_, err := services.Votes.RecordMotion(ctx, model.MotionAttrs{
			Vote: vote, Participant: participant, Type: "abstain",
		})
		assert.True(t, errs.IsValidation(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPassMotionUnknownVote(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM votes WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(mock.NewRows(voteColumns))

	_, err := services.Votes.PassMotion(context.Background(), 404, 9, model.MotionAccept, nil)
	assert.True(t, errors.Is(err, repo.ErrNotFound))
	assert.True(t, errs.IsBackend(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenVote(t *testing.T) {
	ctx := context.Background()
	selectRFC := "SELECT * FROM request_for_comments WHERE id = $1"
	insertVote := "INSERT INTO votes (rfc_id,deadline) VALUES ($1,$2) RETURNING *"

	t.Run("default deadline", func(t *testing.T) {
		services, mock := newTestServices(t)
		deadline := now.Add(72 * time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta(selectRFC)).
			WithArgs(int64(1)).
			WillReturnRows(mock.NewRows(rfcColumns).
				AddRow(int64(1), "active", "Use tabs", "Indentation", nil, now, now))
		mock.ExpectQuery(regexp.QuoteMeta(insertVote)).
			WithArgs(int64(1), deadline).
			WillReturnRows(mock.NewRows(voteColumns).
				AddRow(int64(5), int64(1), deadline, now, now))

		vote, err := services.RFCs.OpenVote(ctx, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, deadline, vote.Deadline)
		assert.False(t, vote.Motions.IsLoaded())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown rfc", func(t *testing.T) {
		services, mock := newTestServices(t)

		mock.ExpectQuery(regexp.QuoteMeta(selectRFC)).
			WithArgs(int64(7)).
			WillReturnRows(mock.NewRows(rfcColumns))

		_, err := services.RFCs.OpenVote(ctx, 7, nil)
		assert.True(t, errors.Is(err, repo.ErrNotFound))

		var backendErr *errs.BackendError
		require.True(t, errors.As(err, &backendErr))
		assert.Equal(t, "request_for_comments", backendErr.Table)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVotesLoadOnce(t *testing.T) {
	services, mock := newTestServices(t)
	rfc := model.NewRFC(model.RFCRecord{ID: 1, Status: model.RFCStatusActive})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM votes WHERE rfc_id = $1 ORDER BY id")).
		WithArgs(int64(1)).
		WillReturnRows(mock.NewRows(voteColumns).
			AddRow(int64(5), int64(1), now, now, now).
			AddRow(int64(6), int64(1), now.AddDate(0, 0, 7), now, now))

	first, err := services.RFCs.Votes(context.Background(), rfc)
	require.NoError(t, err)
	second, err := services.RFCs.Votes(context.Background(), rfc)
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRFC(t *testing.T) {
	services, mock := newTestServices(t)
	vote := model.NewVote(model.VoteRecord{ID: 5, RFCID: 1, Deadline: now})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM request_for_comments WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(mock.NewRows(rfcColumns))

	_, found, err := services.Votes.RFC(context.Background(), vote)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, vote.RFC.IsLoaded())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindMotion(t *testing.T) {
	services, mock := newTestServices(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM motions WHERE vote_id = $1 AND participant_id = $2 ORDER BY id")).
		WithArgs(int64(5), int64(9)).
		WillReturnRows(mock.NewRows(motionColumns).
			AddRow(int64(1), int64(5), int64(9), "reject", nil, now, now))

	motion, err := services.Votes.FindMotion(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.Equal(t, model.MotionReject, motion.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultVoteDuration(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	services := New(repository.New(repo.New(mock, nil)), config.VotingConfig{})
	assert.Equal(t, config.DefaultVoteDuration, services.RFCs.voting.DefaultDuration)
}
