package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/msgsystec/backoffice/types"
)

// ErrGatewayUnavailable marks operations that need the live WAHA
// gateway, which has not been integrated yet. Handlers translate it to
// 501 so the dashboard can show a "coming soon" state.
var ErrGatewayUnavailable = errors.New("waha gateway not yet available")

// WahaGateway is the capability the messaging integration will provide.
// Until it exists, UnavailableGateway stands in for it so everything
// else stays testable.
type WahaGateway interface {
	SendMessage(ctx context.Context, sessionID, message string) error
	Messages(ctx context.Context, sessionID string) ([]string, error)
}

// UnavailableGateway refuses every gateway operation.
type UnavailableGateway struct{}

func (UnavailableGateway) SendMessage(ctx context.Context, sessionID, message string) error {
	return ErrGatewayUnavailable
}

func (UnavailableGateway) Messages(ctx context.Context, sessionID string) ([]string, error) {
	return nil, ErrGatewayUnavailable
}

// WahaSessionRepository defines persistence operations for sessions.
type WahaSessionRepository interface {
	GetByID(ctx context.Context, id string) (types.WahaSession, error)
	ListByUser(ctx context.Context, userID string) ([]types.WahaSession, error)
	Create(ctx context.Context, session types.WahaSession) (types.WahaSession, error)
	UpdateStatus(ctx context.Context, id, status string) (types.WahaSession, error)
	Delete(ctx context.Context, id string) error
}

// WahaService manages gateway sessions. Session records persist even
// though message delivery is not available yet.
type WahaService struct {
	sessions WahaSessionRepository
	gateway  WahaGateway
}

func NewWahaService(sessions WahaSessionRepository, gateway WahaGateway) *WahaService {
	if gateway == nil {
		gateway = UnavailableGateway{}
	}
	return &WahaService{sessions: sessions, gateway: gateway}
}

// CreateSession registers a new inactive session for the user.
func (s *WahaService) CreateSession(ctx context.Context, userID string) (types.WahaSession, error) {
	return s.sessions.Create(ctx, types.WahaSession{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: types.WahaStatusInactive,
	})
}

func (s *WahaService) GetSession(ctx context.Context, id string) (types.WahaSession, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *WahaService) UserSessions(ctx context.Context, userID string) ([]types.WahaSession, error) {
	return s.sessions.ListByUser(ctx, userID)
}

func (s *WahaService) UpdateSessionStatus(ctx context.Context, id, status string) (types.WahaSession, error) {
	return s.sessions.UpdateStatus(ctx, id, status)
}

func (s *WahaService) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// SendMessage forwards to the gateway after confirming the session exists.
func (s *WahaService) SendMessage(ctx context.Context, sessionID, message string) error {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return err
	}
	return s.gateway.SendMessage(ctx, sessionID, message)
}

// Messages lists delivered messages for a session via the gateway.
func (s *WahaService) Messages(ctx context.Context, sessionID string) ([]string, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.gateway.Messages(ctx, sessionID)
}
