package handler

import (
	"github.com/deppfellow/rfcboard/internal/server"
	"github.com/deppfellow/rfcboard/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Participants *ParticipantHandler
	RFCs         *RFCHandler
	Votes        *VoteHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Participants: NewParticipantHandler(s, services.Participants),
		RFCs:         NewRFCHandler(s, services.RFCs),
		Votes:        NewVoteHandler(s, services.Votes),
	}
}
