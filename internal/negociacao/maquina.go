// internal/negociacao/maquina.go
//
// Máquina de estados do ciclo de vida da negociação. As funções daqui
// validam estrutura e status e mutam a negociação em memória; permissões de
// papel são checadas antes, pelo avaliador central, e a persistência fica
// com o handler/repository. Toda transição registra uma entrada na trilha
// de aprovação.
package negociacao

import (
	"errors"
	"fmt"

	"github.com/ConectaSaude/api-rede/internal/erros"
	"github.com/ConectaSaude/api-rede/internal/models"
)

// Ações registradas na trilha de aprovação.
const (
	AcaoSubmeter        = "submit"
	AcaoAprovar         = "approve"
	AcaoRejeitar        = "reject"
	AcaoReverter        = "rollback"
	AcaoCancelar        = "cancel"
	AcaoConcluir        = "complete"
	AcaoConcluirParcial = "partially_complete"
	AcaoNovoCiclo       = "new_cycle"
	AcaoFork            = "fork"
	AcaoContraproposta  = "counter_offer"
	AcaoResponder       = "respond"
	AcaoGerarContrato   = "generate_contract"
)

// transicoes são as arestas válidas do grafo de status. Qualquer mudança de
// status passa por aqui; não existe atalho.
var transicoes = map[string][]string{
	models.StatusDraft:             {models.StatusPending, models.StatusSubmitted, models.StatusCancelled},
	models.StatusPending:           {models.StatusApproved, models.StatusRejected, models.StatusDraft, models.StatusCancelled},
	models.StatusApproved:          {models.StatusPending},
	models.StatusSubmitted:         {models.StatusComplete, models.StatusPartiallyComplete, models.StatusRejected, models.StatusCancelled},
	models.StatusComplete:          {models.StatusDraft},
	models.StatusPartiallyComplete: {models.StatusDraft},
	models.StatusRejected:          {models.StatusDraft},
	// registros legados ainda podem ser cancelados
	models.StatusPartiallyApproved: {models.StatusCancelled},
}

func regra(msg string) error { return errors.New(msg) }

func podeTransitar(de, para string) bool {
	for _, s := range transicoes[de] {
		if s == para {
			return true
		}
	}
	return false
}

// transitar move a negociação para o novo status, preservando o anterior
// para reversão, e registra a ação na trilha.
func transitar(n *models.Negociacao, para string, atorID uint, acao, observacao string) error {
	if !podeTransitar(n.Status, para) {
		return regra(erros.MsgTransicaoInvalida)
	}
	registrar(n, atorID, acao, n.Status, para, observacao)
	n.StatusAnterior = n.Status
	n.Status = para
	return nil
}

func registrar(n *models.Negociacao, atorID uint, acao, de, para, observacao string) {
	n.Historico = append(n.Historico, models.HistoricoAprovacao{
		NegociacaoID: n.ID,
		UsuarioID:    atorID,
		Acao:         acao,
		DeStatus:     de,
		ParaStatus:   para,
		Observacao:   observacao,
	})
}

// Submeter envia o rascunho para aprovação. Com alçada interna o destino é
// pending; sem alçada, vai direto à contraparte (submitted).
func Submeter(n *models.Negociacao, atorID uint) error {
	if n.Status != models.StatusDraft {
		return regra(erros.MsgNaoEstaEmRascunho)
	}
	if len(n.Itens) == 0 {
		return regra(erros.MsgSemItens)
	}
	alvo := models.StatusSubmitted
	if n.RequerAprovacaoInterna {
		alvo = models.StatusPending
	}
	return transitar(n, alvo, atorID, AcaoSubmeter, "")
}

// AprovarInterna aprova a negociação pendente na alçada interna.
func AprovarInterna(n *models.Negociacao, atorID uint, observacao string) error {
	if n.Status != models.StatusPending {
		return regra(erros.MsgNaoEstaPendente)
	}
	return transitar(n, models.StatusApproved, atorID, AcaoAprovar, observacao)
}

// RejeitarInterna rejeita a negociação pendente na alçada interna.
func RejeitarInterna(n *models.Negociacao, atorID uint, observacao string) error {
	if n.Status != models.StatusPending {
		return regra(erros.MsgNaoEstaPendente)
	}
	return transitar(n, models.StatusRejected, atorID, AcaoRejeitar, observacao)
}

// Reverter desfaz a última transição, voltando ao status persistido.
func Reverter(n *models.Negociacao, atorID uint) error {
	if n.Status != models.StatusPending && n.Status != models.StatusApproved {
		return regra(erros.MsgReverterStatusInvalido)
	}
	if n.StatusAnterior == "" || n.StatusAnterior == n.Status {
		return regra(erros.MsgSemStatusAnterior)
	}
	anterior := n.StatusAnterior
	registrar(n, atorID, AcaoReverter, n.Status, anterior, "")
	n.StatusAnterior = n.Status
	n.Status = anterior
	return nil
}

// Cancelar encerra a negociação em qualquer status não terminal (e ainda
// não aprovado). Cancelamento é definitivo.
func Cancelar(n *models.Negociacao, atorID uint) error {
	switch n.Status {
	case models.StatusDraft, models.StatusPending, models.StatusSubmitted, models.StatusPartiallyApproved:
	default:
		return regra(erros.MsgCancelarStatusInvalido)
	}
	return transitar(n, models.StatusCancelled, atorID, AcaoCancelar, "")
}

// Concluir fecha uma negociação enviada cujos itens foram todos aprovados.
func Concluir(n *models.Negociacao, atorID uint) error {
	if n.Status != models.StatusSubmitted {
		return regra(erros.MsgNaoFoiEnviada)
	}
	if n.ItensNaoResolvidos() > 0 {
		return regra(erros.MsgItensNaoResolvidos)
	}
	for _, it := range n.Itens {
		if it.Status != models.ItemApproved {
			return regra(erros.MsgNemTodosAprovados)
		}
	}
	return transitar(n, models.StatusComplete, atorID, AcaoConcluir, "")
}

// ConcluirParcial fecha uma negociação enviada com decisões mistas: vira
// partially_complete com ao menos um item aprovado, rejected sem nenhum.
func ConcluirParcial(n *models.Negociacao, atorID uint) error {
	if n.Status != models.StatusSubmitted {
		return regra(erros.MsgNaoFoiEnviada)
	}
	if n.ItensNaoResolvidos() > 0 {
		return regra(erros.MsgItensNaoResolvidos)
	}
	aprovados := 0
	for _, it := range n.Itens {
		if it.Status == models.ItemApproved {
			aprovados++
		}
	}
	if aprovados == len(n.Itens) {
		return regra(erros.MsgTodosAprovados)
	}
	alvo := models.StatusPartiallyComplete
	if aprovados == 0 {
		alvo = models.StatusRejected
	}
	acao := AcaoConcluirParcial
	if alvo == models.StatusRejected {
		acao = AcaoRejeitar
	}
	return transitar(n, alvo, atorID, acao, "")
}

// NovoCiclo reabre a negociação como rascunho do ciclo seguinte, limitado
// por MaxCiclosPermitidos. Itens não aprovados voltam a pending com os
// valores propostos preservados.
func NovoCiclo(n *models.Negociacao, atorID uint) error {
	switch n.Status {
	case models.StatusPartiallyComplete, models.StatusComplete, models.StatusRejected:
	default:
		return regra(erros.MsgCicloStatusInvalido)
	}
	if n.CicloNegociacao >= n.MaxCiclosPermitidos {
		return regra(erros.MsgMaximoDeCiclos)
	}
	if err := transitar(n, models.StatusDraft, atorID, AcaoNovoCiclo,
		fmt.Sprintf("ciclo %d", n.CicloNegociacao+1)); err != nil {
		return err
	}
	n.CicloNegociacao++
	n.StatusFormalizacao = nil
	for i := range n.Itens {
		if n.Itens[i].Status == models.ItemApproved {
			continue
		}
		n.Itens[i].Status = models.ItemPending
		n.Itens[i].ValorAprovado = nil
		n.Itens[i].ValorContraproposta = nil
	}
	return nil
}

// Contrapropor registra uma contraproposta da contraparte sobre um item
// pendente de uma negociação enviada.
func Contrapropor(n *models.Negociacao, item *models.ItemNegociacao, valor float64, atorID uint) error {
	if n.Status != models.StatusSubmitted {
		return regra(erros.MsgContraForaDeSubmitted)
	}
	if item.Status != models.ItemPending {
		return regra(erros.MsgItemNaoPendente)
	}
	if valor <= 0 {
		return regra(erros.MsgContrapropostaInvalida)
	}
	item.Status = models.ItemCounterOffered
	item.ValorContraproposta = &valor
	registrar(n, atorID, AcaoContraproposta, "", "",
		fmt.Sprintf("item %s: %0.2f", item.CodigoTUSS, valor))
	return nil
}

// ResponderItem aprova ou rejeita um item pendente ou contraproposto. Na
// aprovação, o valor aprovado cai para a contraproposta (se houver) e por
// fim para o valor proposto.
func ResponderItem(n *models.Negociacao, item *models.ItemNegociacao, decisao string, valorAprovado *float64, atorID uint) error {
	if n.Status != models.StatusSubmitted {
		return regra(erros.MsgNaoFoiEnviada)
	}
	if item.Status != models.ItemPending && item.Status != models.ItemCounterOffered {
		return regra(erros.MsgItemNaoRespondivel)
	}
	switch decisao {
	case models.ItemApproved:
		valor := item.ValorProposto
		if item.ValorContraproposta != nil {
			valor = *item.ValorContraproposta
		}
		if valorAprovado != nil {
			valor = *valorAprovado
		}
		item.Status = models.ItemApproved
		item.ValorAprovado = &valor
	case models.ItemRejected:
		item.Status = models.ItemRejected
		item.ValorAprovado = nil
	default:
		return regra(erros.MsgDecisaoInvalida)
	}
	registrar(n, atorID, AcaoResponder, "", "",
		fmt.Sprintf("item %s: %s", item.CodigoTUSS, decisao))
	return nil
}

// PlanejarFork divide os itens pendentes do rascunho em novas negociações
// independentes. Cada grupo de IDs vira um fork; sem grupos, cada item
// pendente vira o seu. Devolve os forks e os IDs de itens movidos — o
// handler persiste tudo e remove os itens movidos do pai.
func PlanejarFork(n *models.Negociacao, grupos [][]uint, atorID uint) ([]models.Negociacao, []uint, error) {
	if n.Status != models.StatusDraft {
		return nil, nil, regra(erros.MsgForkForaDeRascunho)
	}
	if n.EhFork {
		return nil, nil, regra(erros.MsgForkDeFork)
	}
	if n.ItensPendentes() < 2 {
		return nil, nil, regra(erros.MsgForkMinimoItens)
	}

	pendentes := map[uint]models.ItemNegociacao{}
	for _, it := range n.Itens {
		if it.Status == models.ItemPending {
			pendentes[it.ID] = it
		}
	}

	if len(grupos) == 0 {
		for _, it := range n.Itens {
			if it.Status == models.ItemPending {
				grupos = append(grupos, []uint{it.ID})
			}
		}
	}

	var forks []models.Negociacao
	var movidos []uint
	usados := map[uint]bool{}
	for i, grupo := range grupos {
		if len(grupo) == 0 {
			return nil, nil, regra(erros.MsgForkGrupoVazio)
		}
		fork := models.Negociacao{
			Titulo:                 fmt.Sprintf("%s (fork %d)", n.Titulo, n.QtdForks+i+1),
			Status:                 models.StatusDraft,
			CicloNegociacao:        1,
			MaxCiclosPermitidos:    n.MaxCiclosPermitidos,
			EhFork:                 true,
			NegociacaoPaiID:        &n.ID,
			TipoNegociavel:         n.TipoNegociavel,
			NegociavelID:           n.NegociavelID,
			CriadorID:              n.CriadorID,
			RequerAprovacaoInterna: n.RequerAprovacaoInterna,
		}
		for _, id := range grupo {
			item, ok := pendentes[id]
			if !ok || usados[id] {
				return nil, nil, regra(erros.MsgForkItemInvalido)
			}
			usados[id] = true
			movidos = append(movidos, id)
			fork.Itens = append(fork.Itens, models.ItemNegociacao{
				CodigoTUSS:    item.CodigoTUSS,
				Descricao:     item.Descricao,
				Status:        models.ItemPending,
				ValorProposto: item.ValorProposto,
			})
		}
		forks = append(forks, fork)
	}

	n.QtdForks += len(forks)
	registrar(n, atorID, AcaoFork, "", "", fmt.Sprintf("%d forks", len(forks)))
	return forks, movidos, nil
}
