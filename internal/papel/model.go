// internal/papel/model.go
package papel

import (
	"time"

	"gorm.io/gorm"
)

// Nomes canônicos de papéis. O front antigo carregava duas enumerações
// divergentes; esta é a única fonte de verdade daqui em diante.
const (
	SuperAdmin       = "super_admin"
	Diretor          = "director"
	GerenteComercial = "commercial_manager"
	Comercial        = "commercial"
	AdminOperadora   = "health_plan_admin"
	Profissional     = "professional"
	AdminClinica     = "clinic_admin"
)

// Nomes canônicos de permissões.
const (
	AprovarNegociacoes   = "approve negotiations"
	GerenciarNegociacoes = "manage negotiations"
	EditarNegociacoes    = "edit negotiations"
)

// Papel é um papel nomeado atribuível a usuários (N:N).
type Papel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Nome       string      `gorm:"size:100;uniqueIndex;not null" json:"nome"`
	Descricao  string      `gorm:"size:255" json:"descricao"`
	Permissoes []Permissao `gorm:"many2many:papel_permissoes" json:"permissoes"`
}

// Permissao é uma capacidade nomeada verificada antes de expor uma ação.
type Permissao struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nome string `gorm:"size:100;uniqueIndex;not null" json:"nome"`
}

// permissoesPorPapel é o mapeamento estático espelhado nas claims do token.
// O servidor revalida contra ele em toda transição.
var permissoesPorPapel = map[string][]string{
	SuperAdmin:       {AprovarNegociacoes, GerenciarNegociacoes, EditarNegociacoes},
	Diretor:          {AprovarNegociacoes, GerenciarNegociacoes, EditarNegociacoes},
	GerenteComercial: {AprovarNegociacoes, GerenciarNegociacoes, EditarNegociacoes},
	Comercial:        {EditarNegociacoes},
	// Papéis de entidade externa não carregam permissões internas; a
	// aprovação externa é decidida por correspondência de entidade.
	AdminOperadora: {},
	Profissional:   {},
	AdminClinica:   {},
}

// PermissoesDe retorna as permissões de um papel pelo nome.
func PermissoesDe(nome string) []string {
	return permissoesPorPapel[nome]
}

// Concede informa se o papel concede a permissão.
func Concede(papel, permissao string) bool {
	for _, p := range permissoesPorPapel[papel] {
		if p == permissao {
			return true
		}
	}
	return false
}

// PapelDaEntidade devolve o papel que representa cada tipo de entidade
// negociável (admin de operadora para planos, profissional, admin de clínica).
func PapelDaEntidade(tipoNegociavel string) string {
	switch tipoNegociavel {
	case "health_plan":
		return AdminOperadora
	case "professional":
		return Profissional
	case "clinic":
		return AdminClinica
	}
	return ""
}

// Seed garante a existência dos papéis e permissões canônicos.
func Seed(db *gorm.DB) error {
	permissoes := map[string]*Permissao{}
	for _, nome := range []string{AprovarNegociacoes, GerenciarNegociacoes, EditarNegociacoes} {
		p := &Permissao{Nome: nome}
		if err := db.Where("nome = ?", nome).FirstOrCreate(p).Error; err != nil {
			return err
		}
		permissoes[nome] = p
	}

	for nome, nomesPermissoes := range permissoesPorPapel {
		papel := &Papel{Nome: nome}
		if err := db.Where("nome = ?", nome).FirstOrCreate(papel).Error; err != nil {
			return err
		}
		var lista []Permissao
		for _, np := range nomesPermissoes {
			lista = append(lista, *permissoes[np])
		}
		if err := db.Model(papel).Association("Permissoes").Replace(lista); err != nil {
			return err
		}
	}
	return nil
}
