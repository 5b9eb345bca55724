package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tempo de vida do access token
const AccessTTL = 24 * time.Hour

// Claims do token: identidade, papéis e a entidade que o usuário representa.
type Claims struct {
	UsuarioID      uint     `json:"usuarioId"`
	Papeis         []string `json:"papeis"`
	TipoNegociavel string   `json:"tipoNegociavel,omitempty"`
	NegociavelID   uint     `json:"negociavelId,omitempty"`
	jwt.RegisteredClaims
}

func segredo() ([]byte, error) {
	s := os.Getenv("JWT_SECRET")
	if s == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return []byte(s), nil
}

// GerarToken gera um JWT HS256 com os papéis e a entidade do usuário.
func GerarToken(usuarioID uint, papeis []string, tipoNegociavel string, negociavelID uint) (string, error) {
	chave, err := segredo()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		UsuarioID:      usuarioID,
		Papeis:         papeis,
		TipoNegociavel: tipoNegociavel,
		NegociavelID:   negociavelID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(chave)
}

// ValidarToken valida assinatura e expiração e retorna as claims.
func ValidarToken(tokenStr string) (*Claims, error) {
	chave, err := segredo()
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return chave, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("token inválido ou expirado")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
