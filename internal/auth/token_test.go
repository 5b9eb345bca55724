package auth

import (
	"testing"

	"github.com/ConectaSaude/api-rede/internal/models"
)

func TestGerarEValidarToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(7, []string{"commercial"}, models.TipoProfissional, 42)
	if err != nil {
		t.Fatalf("GerarToken: %v", err)
	}

	claims, err := ValidarToken(token)
	if err != nil {
		t.Fatalf("ValidarToken: %v", err)
	}
	if claims.UsuarioID != 7 {
		t.Errorf("UsuarioID = %d, want 7", claims.UsuarioID)
	}
	if len(claims.Papeis) != 1 || claims.Papeis[0] != "commercial" {
		t.Errorf("Papeis = %v, want [commercial]", claims.Papeis)
	}
	if claims.TipoNegociavel != models.TipoProfissional || claims.NegociavelID != 42 {
		t.Errorf("entidade = %s/%d, want professional/42", claims.TipoNegociavel, claims.NegociavelID)
	}
}

func TestValidarToken_segredoErrado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-a")
	token, err := GerarToken(7, nil, "", 0)
	if err != nil {
		t.Fatalf("GerarToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "segredo-b")
	if _, err := ValidarToken(token); err == nil {
		t.Error("token assinado com outro segredo deveria ser rejeitado")
	}
}

func TestGerarToken_semSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := GerarToken(7, nil, "", 0); err == nil {
		t.Error("sem JWT_SECRET a geração deveria falhar")
	}
}

func TestValidarToken_lixo(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	if _, err := ValidarToken("nao-e-um-jwt"); err == nil {
		t.Error("string arbitrária não é um token válido")
	}
}
