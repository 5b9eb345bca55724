package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

// CtxClaims guarda as *Claims do usuário autenticado no contexto.
const CtxClaims ctxKey = "claims"

// ClaimsDoContexto devolve as claims injetadas pelo middleware, ou nil.
func ClaimsDoContexto(ctx context.Context) *Claims {
	c, _ := ctx.Value(CtxClaims).(*Claims)
	return c
}

// MiddlewareAutenticacao exige um Bearer token válido e injeta as claims.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxClaims, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePapel restringe a rota a um papel específico.
func RequirePapel(papel string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsDoContexto(r.Context())
		if claims == nil {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		for _, p := range claims.Papeis {
			if p == papel {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "acesso negado", http.StatusForbidden)
	})
}
