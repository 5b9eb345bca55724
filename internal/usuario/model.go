package usuario

import (
	"github.com/ConectaSaude/api-rede/internal/auth"
	"github.com/ConectaSaude/api-rede/internal/papel"
	"gorm.io/gorm"
)

// Usuario é um usuário do painel administrativo. Papéis são N:N; quando o
// usuário representa uma entidade externa, TipoNegociavel/NegociavelID a
// identificam.
type Usuario struct {
	gorm.Model
	Nome                  string        `json:"nome"`
	Sobrenome             string        `json:"sobrenome"`
	Email                 string        `json:"email" gorm:"uniqueIndex"`
	Telefone              string        `json:"telefone"`
	Senha                 string        `json:"-"`
	PrecisaRedefinirSenha bool          `json:"-"`
	Papeis                []papel.Papel `gorm:"many2many:usuario_papeis" json:"papeis"`

	TipoNegociavel string `gorm:"size:50" json:"tipoNegociavel,omitempty"`
	NegociavelID   uint   `json:"negociavelId,omitempty"`
}

// TemPapel informa se o usuário possui o papel.
func (u *Usuario) TemPapel(nome string) bool {
	for _, p := range u.Papeis {
		if p.Nome == nome {
			return true
		}
	}
	return false
}

// TemPermissao informa se algum papel do usuário concede a permissão.
func (u *Usuario) TemPermissao(permissao string) bool {
	for _, p := range u.Papeis {
		if papel.Concede(p.Nome, permissao) {
			return true
		}
	}
	return false
}

// NomesPapeis devolve os nomes dos papéis (para as claims do token).
func (u *Usuario) NomesPapeis() []string {
	nomes := make([]string, 0, len(u.Papeis))
	for _, p := range u.Papeis {
		nomes = append(nomes, p.Nome)
	}
	return nomes
}

// DoClaims reconstrói um usuário leve a partir das claims do token, o
// suficiente para o avaliador de permissões.
func DoClaims(c *auth.Claims) *Usuario {
	if c == nil {
		return nil
	}
	u := &Usuario{
		TipoNegociavel: c.TipoNegociavel,
		NegociavelID:   c.NegociavelID,
	}
	u.ID = c.UsuarioID
	for _, nome := range c.Papeis {
		u.Papeis = append(u.Papeis, papel.Papel{Nome: nome})
	}
	return u
}
