package auth

import "context"

type ContextKey string

var ClaimsCtxKey ContextKey = "claims"

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// ClaimsFromContext 返回请求中已验证的令牌声明，请求未携带有效令牌时返回 nil
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ClaimsCtxKey).(*Claims)
	return claims
}
