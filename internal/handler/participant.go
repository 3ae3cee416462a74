package handler

import (
	"github.com/deppfellow/rfcboard/internal/model"
	"github.com/deppfellow/rfcboard/internal/server"
	"github.com/deppfellow/rfcboard/internal/service"
	"github.com/deppfellow/rfcboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type ParticipantHandler struct {
	Handler
	participants *service.ParticipantService
}

func NewParticipantHandler(s *server.Server, participants *service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		Handler:      NewHandler(s),
		participants: participants,
	}
}

type RegisterParticipantRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
}

func (r *RegisterParticipantRequest) Validate() error {
	return validation.Struct(r)
}

func (h *ParticipantHandler) Register(c echo.Context, req *RegisterParticipantRequest) (*model.Participant, error) {
	return h.participants.Register(c.Request().Context(), model.ParticipantAttrs{Username: req.Username})
}

type GetParticipantRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (r *GetParticipantRequest) Validate() error {
	return validation.Struct(r)
}

func (h *ParticipantHandler) Get(c echo.Context, req *GetParticipantRequest) (*model.Participant, error) {
	return h.participants.Get(c.Request().Context(), req.ID)
}
