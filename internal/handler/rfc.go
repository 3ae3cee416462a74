package handler

import (
	"time"

	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/server"
	"github.com/deppfellow/rfcboard/internal/service"
	"github.com/deppfellow/rfcboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type RFCHandler struct {
	Handler
	rfcs *service.RFCService
}

func NewRFCHandler(s *server.Server, rfcs *service.RFCService) *RFCHandler {
	return &RFCHandler{
		Handler: NewHandler(s),
		rfcs:    rfcs,
	}
}

type ProposeRFCRequest struct {
	Topic      string `json:"topic" validate:"required,max=255"`
	Proposal   string `json:"proposal" validate:"required"`
	Supersedes *int64 `json:"supersedes" validate:"omitempty,gt=0"`
}

func (r *ProposeRFCRequest) Validate() error {
	return validation.Struct(r)
}

func (h *RFCHandler) Propose(c echo.Context, req *ProposeRFCRequest) (*model.RFC, error) {
	return h.rfcs.Propose(c.Request().Context(), model.RFCAttrs{
		Topic:      req.Topic,
		Proposal:   req.Proposal,
		Supersedes: req.Supersedes,
	})
}

type GetRFCRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *GetRFCRequest) Validate() error {
	return validation.Struct(r)
}

func (h *RFCHandler) Get(c echo.Context, req *GetRFCRequest) (*model.RFC, error) {
	return h.rfcs.Get(c.Request().Context(), req.ID)
}

func (h *RFCHandler) ListVotes(c echo.Context, req *GetRFCRequest) ([]model.VoteRecord, error) {
	ctx := c.Request().Context()

	rfc, err := h.rfcs.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return h.rfcs.Votes(ctx, rfc)
}

type OpenVoteRequest struct {
	RFCID int64 `param:"id" validate:"required,gt=0"`

	// Deadline is RFC 3339; the configured default applies when absent.
	Deadline *time.Time `json:"deadline"`
}

func (r *OpenVoteRequest) Validate() error {
	return validation.Struct(r)
}

func (h *RFCHandler) OpenVote(c echo.Context, req *OpenVoteRequest) (*model.Vote, error) {
	return h.rfcs.OpenVote(c.Request().Context(), req.RFCID, req.Deadline)
}
