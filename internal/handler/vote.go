package handler

import (
	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/server"
	"github.com/deppfellow/rfcboard/internal/service"
	"github.com/deppfellow/rfcboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type VoteHandler struct {
	Handler
	votes *service.VoteService
}

func NewVoteHandler(s *server.Server, votes *service.VoteService) *VoteHandler {
	return &VoteHandler{
		Handler: NewHandler(s),
		votes:   votes,
	}
}

type GetVoteRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *GetVoteRequest) Validate() error {
	return validation.Struct(r)
}

// VoteResponse is a vote with the RFC it belongs to, when that still exists.
type VoteResponse struct {
	model.VoteRecord
	RFC *model.RFCRecord `json:"rfc"`
}

func (h *VoteHandler) Get(c echo.Context, req *GetVoteRequest) (*VoteResponse, error) {
	ctx := c.Request().Context()

	vote, err := h.votes.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	response := &VoteResponse{VoteRecord: vote.VoteRecord}

	rfc, found, err := h.votes.RFC(ctx, vote)
	if err != nil {
		return nil, err
	}
	if found {
		response.RFC = &rfc
	}
	return response, nil
}

type PassMotionRequest struct {
	VoteID        int64   `param:"id" validate:"required,gt=0"`
	ParticipantID int64   `json:"participantId" validate:"required,gt=0"`
	Type          string  `json:"type" validate:"required,oneof=accept reject"`
	Comment       *string `json:"comment" validate:"omitempty,max=2000"`
}

func (r *PassMotionRequest) Validate() error {
	return validation.Struct(r)
}

// PassMotion records the participant's motion, replacing an earlier one.
// Motions after the deadline are refused with 422.
func (h *VoteHandler) PassMotion(c echo.Context, req *PassMotionRequest) (*model.Motion, error) {
	motionType, err := model.ParseMotionType(req.Type)
	if err != nil {
		return nil, err
	}

	return h.votes.PassMotion(c.Request().Context(), req.VoteID, req.ParticipantID, motionType, req.Comment)
}

type ListMotionsRequest struct {
	VoteID        int64   `param:"id" validate:"required,gt=0"`
	ParticipantID *int64  `query:"participantId" validate:"omitempty,gt=0"`
	Type          *string `query:"type" validate:"omitempty,oneof=accept reject"`
}

func (r *ListMotionsRequest) Validate() error {
	return validation.Struct(r)
}

// ListMotions lists the motions of a vote, optionally narrowed to one
// participant or one type. An unknown vote is a 404 either way.
func (h *VoteHandler) ListMotions(c echo.Context, req *ListMotionsRequest) ([]model.MotionRecord, error) {
	ctx := c.Request().Context()

	vote, err := h.votes.Get(ctx, req.VoteID)
	if err != nil {
		return nil, err
	}
	if req.ParticipantID == nil && req.Type == nil {
		return h.votes.Motions(ctx, vote)
	}

	q := model.MotionQuery{VoteID: &req.VoteID, ParticipantID: req.ParticipantID}
	if req.Type != nil {
		motionType := model.MotionType(*req.Type)
		q.Type = &motionType
	}
	return h.votes.FilterMotions(ctx, q)
}
