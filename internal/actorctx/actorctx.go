package actorctx

import "context"

type ctxKey string

const keyUserID ctxKey = "user_id"

// The authenticated user id travels on the request context so the call
// chain below the HTTP layer never reads gin state directly.

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserIDFrom(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyUserID).(string)

	return v, ok && v != ""
}
