package graph

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type ctxKey string

const (
	subjectKey  ctxKey = "ng.subject"
	clientIPKey ctxKey = "ng.clientIP"
	loadersKey  ctxKey = "ng.loaders"
)

// WithSubject stores the authenticated subject id in context.
func WithSubject(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, subjectKey, id)
}

// SubjectFromCtx fetches the authenticated subject id from context.
// ok=false means the request is unauthenticated.
func SubjectFromCtx(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(subjectKey)
	if v == nil {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// WithClientIP stores the request's remote address in context.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFromCtx fetches the request's remote address from context.
func ClientIPFromCtx(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip
	}
	return ""
}

// WithLoaders stores per-request dataloaders in context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// LoadersFromCtx fetches per-request dataloaders from context.
func LoadersFromCtx(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	return l, ok
}
