package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// RequestData carries the authenticated identity through a request's context.
// It is attached once by the auth middleware and read by services.
type RequestData struct {
	UserID      uuid.UUID
	Email       string
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	rd, _ := ctx.Value(contextKey{}).(*RequestData)
	return rd
}
