package router

import (
	"context"
	"time"

	"points-board-api/internal/realtime"
	"points-board-api/internal/service"
)

// liveSessionRevocation closes the live feeds of a token once it is revoked
type liveSessionRevocation struct {
	service.RevocationService
	hub *realtime.Hub
}

func (r *liveSessionRevocation) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := r.RevocationService.Revoke(ctx, jti, expiresAt); err != nil {
		return err
	}
	r.hub.SessionRevoked(jti)
	return nil
}
