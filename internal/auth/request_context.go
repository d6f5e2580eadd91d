package auth

import (
	"context"
)

type contextKey string

var principalKey contextKey = "principal"

func SetPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) *Principal {
	val := ctx.Value(principalKey)
	if p, ok := val.(*Principal); ok {
		return p
	}
	return nil
}
