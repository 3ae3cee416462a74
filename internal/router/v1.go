package router

import (
	"net/http"

	"github.com/deppfellow/rfcboard/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerV1Routes(g *echo.Group, h *handler.Handlers) {
	participants := g.Group("/participants")
	participants.POST("", handler.Handle(h.Participants.Handler, h.Participants.Register, http.StatusCreated, &handler.RegisterParticipantRequest{}))
	participants.GET("/:id", handler.Handle(h.Participants.Handler, h.Participants.Get, http.StatusOK, &handler.GetParticipantRequest{}))

	rfcs := g.Group("/rfcs")
	rfcs.POST("", handler.Handle(h.RFCs.Handler, h.RFCs.Propose, http.StatusCreated, &handler.ProposeRFCRequest{}))
	rfcs.GET("/:id", handler.Handle(h.RFCs.Handler, h.RFCs.Get, http.StatusOK, &handler.GetRFCRequest{}))
	rfcs.GET("/:id/votes", handler.Handle(h.RFCs.Handler, h.RFCs.ListVotes, http.StatusOK, &handler.GetRFCRequest{}))
	rfcs.POST("/:id/votes", handler.Handle(h.RFCs.Handler, h.RFCs.OpenVote, http.StatusCreated, &handler.OpenVoteRequest{}))

	votes := g.Group("/votes")
	votes.GET("/:id", handler.Handle(h.Votes.Handler, h.Votes.Get, http.StatusOK, &handler.GetVoteRequest{}))
	votes.GET("/:id/motions", handler.Handle(h.Votes.Handler, h.Votes.ListMotions, http.StatusOK, &handler.ListMotionsRequest{}))
	votes.POST("/:id/motions", handler.Handle(h.Votes.Handler, h.Votes.PassMotion, http.StatusOK, &handler.PassMotionRequest{}))
}
