// internal/permissao/permissao.go
//
// Avaliador central de permissões do ciclo de vida da negociação. Todas as
// telas (e todos os handlers) consultam estes predicados em vez de repetir
// checagens de papel inline. Os predicados são funções puras de
// (negociação, usuário) e nunca substituem a revalidação do servidor na
// própria transição.
package permissao

import (
	"github.com/ConectaSaude/api-rede/internal/models"
	"github.com/ConectaSaude/api-rede/internal/papel"
	"github.com/ConectaSaude/api-rede/internal/usuario"
)

// ehElevado: o papel elevado ignora restrições de propriedade.
func ehElevado(u *usuario.Usuario) bool {
	return u.TemPapel(papel.SuperAdmin)
}

// ehGestor: papéis com alçada de gestão sobre negociações.
func ehGestor(u *usuario.Usuario) bool {
	return u.TemPapel(papel.GerenteComercial) || u.TemPapel(papel.Diretor) || ehElevado(u)
}

// PodeAprovarInternamente: papel elevado, ou (gerente comercial/diretor que
// não seja o criador). Ninguém além do papel elevado aprova a própria
// submissão.
func PodeAprovarInternamente(n *models.Negociacao, u *usuario.Usuario) bool {
	if ehElevado(u) {
		return true
	}
	if !u.TemPapel(papel.GerenteComercial) && !u.TemPapel(papel.Diretor) {
		return false
	}
	return u.ID != n.CriadorID
}

// PodeAprovarExternamente: papel elevado, ou usuário que representa a
// entidade alvo com o papel correspondente ao tipo da entidade.
func PodeAprovarExternamente(n *models.Negociacao, u *usuario.Usuario) bool {
	if ehElevado(u) {
		return true
	}
	if u.TipoNegociavel != n.TipoNegociavel || u.NegociavelID != n.NegociavelID {
		return false
	}
	return u.TemPapel(papel.PapelDaEntidade(n.TipoNegociavel))
}

// PodeEditar: criador em rascunho, ou gestor enquanto pendente.
func PodeEditar(n *models.Negociacao, u *usuario.Usuario) bool {
	if u.ID == n.CriadorID && n.Status == models.StatusDraft {
		return true
	}
	return ehGestor(u) && n.Status == models.StatusPending
}

// PodeFazerProposta: contraparte durante submitted, ou detentor de edição
// após rejeição (preparando um novo ciclo).
func PodeFazerProposta(n *models.Negociacao, u *usuario.Usuario) bool {
	if n.Status == models.StatusSubmitted && u.ID != n.CriadorID {
		return true
	}
	return n.Status == models.StatusRejected && u.TemPermissao(papel.EditarNegociacoes)
}

// PodeFork: rascunho que ainda não é fork, com pelo menos 2 itens pendentes,
// e permissão de gestão. Ser o criador, sozinho, não basta.
func PodeFork(n *models.Negociacao, u *usuario.Usuario) bool {
	return n.Status == models.StatusDraft &&
		!n.EhFork &&
		n.ItensPendentes() >= 2 &&
		u.TemPermissao(papel.GerenciarNegociacoes)
}

// PodeCancelar: permissão de edição e status ainda não terminal nem aprovado.
func PodeCancelar(n *models.Negociacao, u *usuario.Usuario) bool {
	switch n.Status {
	case models.StatusApproved, models.StatusRejected, models.StatusCancelled,
		models.StatusComplete, models.StatusPartiallyComplete:
		return false
	}
	if u.ID == n.CriadorID || ehGestor(u) {
		return true
	}
	return u.TemPermissao(papel.EditarNegociacoes)
}

// PodeReverter: gestão, a partir de pendente ou aprovada.
func PodeReverter(n *models.Negociacao, u *usuario.Usuario) bool {
	if n.Status != models.StatusPending && n.Status != models.StatusApproved {
		return false
	}
	return u.TemPermissao(papel.GerenciarNegociacoes)
}

// PodeIniciarNovoCiclo: status elegível e teto de ciclos não atingido. A UI
// esconde o botão quando o teto foi alcançado.
func PodeIniciarNovoCiclo(n *models.Negociacao, u *usuario.Usuario) bool {
	switch n.Status {
	case models.StatusPartiallyComplete, models.StatusComplete, models.StatusRejected:
	default:
		return false
	}
	if n.CicloNegociacao >= n.MaxCiclosPermitidos {
		return false
	}
	return u.ID == n.CriadorID || u.TemPermissao(papel.GerenciarNegociacoes)
}

// PodeGerarContrato: somente nos status aprovados/concluídos.
func PodeGerarContrato(n *models.Negociacao, u *usuario.Usuario) bool {
	switch n.Status {
	case models.StatusApproved, models.StatusComplete, models.StatusPartiallyComplete:
	default:
		return false
	}
	return ehGestor(u) || u.ID == n.CriadorID
}

// Permissoes é o bloco de afordâncias devolvido junto de cada negociação,
// para as telas habilitarem botões a partir de uma única fonte.
type Permissoes struct {
	AprovarInternamente bool `json:"aprovarInternamente"`
	AprovarExternamente bool `json:"aprovarExternamente"`
	Editar              bool `json:"editar"`
	FazerProposta       bool `json:"fazerProposta"`
	Fork                bool `json:"fork"`
	Cancelar            bool `json:"cancelar"`
	Reverter            bool `json:"reverter"`
	NovoCiclo           bool `json:"novoCiclo"`
	GerarContrato       bool `json:"gerarContrato"`
}

// Avaliar computa o bloco completo de afordâncias.
func Avaliar(n *models.Negociacao, u *usuario.Usuario) Permissoes {
	return Permissoes{
		AprovarInternamente: PodeAprovarInternamente(n, u),
		AprovarExternamente: PodeAprovarExternamente(n, u),
		Editar:              PodeEditar(n, u),
		FazerProposta:       PodeFazerProposta(n, u),
		Fork:                PodeFork(n, u),
		Cancelar:            PodeCancelar(n, u),
		Reverter:            PodeReverter(n, u),
		NovoCiclo:           PodeIniciarNovoCiclo(n, u),
		GerarContrato:       PodeGerarContrato(n, u),
	}
}
