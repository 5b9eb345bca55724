// internal/negociacao/handler.go
package negociacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ConectaSaude/api-rede/internal/auth"
	"github.com/ConectaSaude/api-rede/internal/contrato"
	"github.com/ConectaSaude/api-rede/internal/erros"
	"github.com/ConectaSaude/api-rede/internal/httputil"
	"github.com/ConectaSaude/api-rede/internal/models"
	"github.com/ConectaSaude/api-rede/internal/notificacao"
	"github.com/ConectaSaude/api-rede/internal/papel"
	"github.com/ConectaSaude/api-rede/internal/permissao"
	"github.com/ConectaSaude/api-rede/internal/usuario"
	"github.com/ConectaSaude/api-rede/internal/valores"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Notificador publica eventos de ciclo de vida. Satisfeito por
// *notificacao.Webhook.
type Notificador interface {
	EnviarEvento(n *models.Negociacao, evento string)
}

// Handler encapsula DB, repositories e o notificador
type Handler struct {
	DB          *gorm.DB
	Repository  Repository
	Contratos   contrato.Repository
	Notificador Notificador
}

// NewHandler cria um novo handler de negociações
func NewHandler(db *gorm.DB, notificador Notificador) *Handler {
	return &Handler{
		DB:          db,
		Repository:  NewRepository(),
		Contratos:   contrato.NewRepository(),
		Notificador: notificador,
	}
}

func (h *Handler) ator(r *http.Request) *usuario.Usuario {
	return usuario.DoClaims(auth.ClaimsDoContexto(r.Context()))
}

func (h *Handler) carregar(w http.ResponseWriter, r *http.Request) (*models.Negociacao, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return nil, false
	}
	n, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httputil.Erro(w, http.StatusNotFound, erros.MsgNegociacaoNaoEncontrada)
			return nil, false
		}
		httputil.Interno(w, "buscar negociação", err)
		return nil, false
	}
	return n, true
}

func (h *Handler) detalhe(n *models.Negociacao, u *usuario.Usuario) DetalheDTO {
	return DetalheDTO{
		Negociacao: *n,
		Resumo:     valores.Resumir(n.Itens),
		Permissoes: permissao.Avaliar(n, u),
	}
}

// persistirEResponder grava a negociação e devolve a visão detalhada.
func (h *Handler) persistirEResponder(w http.ResponseWriter, n *models.Negociacao, u *usuario.Usuario, mensagem string) {
	if err := h.Repository.Atualizar(h.DB, n); err != nil {
		httputil.Interno(w, "atualizar negociação", err)
		return
	}
	httputil.JSON(w, http.StatusOK, h.detalhe(n, u), mensagem)
}

func montarItens(reqs []ItemRequest) []models.ItemNegociacao {
	itens := make([]models.ItemNegociacao, 0, len(reqs))
	for _, it := range reqs {
		itens = append(itens, models.ItemNegociacao{
			CodigoTUSS:    it.CodigoTUSS,
			Descricao:     it.Descricao,
			Status:        models.ItemPending,
			ValorProposto: valores.ParseValor(it.ValorProposto),
		})
	}
	return itens
}

/* ================== POST /negociacoes ================== */

func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)

	var dto CreateNegociacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	campos := map[string][]string{}
	if dto.Titulo == "" {
		campos["titulo"] = []string{"obrigatório"}
	}
	switch dto.TipoNegociavel {
	case models.TipoOperadora, models.TipoProfissional, models.TipoClinica:
	default:
		campos["tipoNegociavel"] = []string{"deve ser health_plan, professional ou clinic"}
	}
	if dto.NegociavelID == 0 {
		campos["negociavelId"] = []string{"obrigatório"}
	}
	if len(campos) > 0 {
		httputil.Validacao(w, campos)
		return
	}

	maxCiclos := dto.MaxCiclosPermitidos
	if maxCiclos <= 0 {
		maxCiclos = 3
	}
	requerAlcada := true
	if dto.RequerAprovacaoInterna != nil {
		requerAlcada = *dto.RequerAprovacaoInterna
	}

	n := models.Negociacao{
		Titulo:                 dto.Titulo,
		Status:                 models.StatusDraft,
		CicloNegociacao:        1,
		MaxCiclosPermitidos:    maxCiclos,
		TipoNegociavel:         dto.TipoNegociavel,
		NegociavelID:           dto.NegociavelID,
		CriadorID:              u.ID,
		RequerAprovacaoInterna: requerAlcada,
		Itens:                  montarItens(dto.Itens),
	}
	if err := h.Repository.Salvar(h.DB, &n); err != nil {
		httputil.Interno(w, "salvar negociação", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, h.detalhe(&n, u), "")
}

/* ================== GET /negociacoes ================== */

// Listar devolve as negociações visíveis ao usuário: gestores veem todas,
// usuários de entidade veem as dirigidas à sua entidade, comerciais veem as
// que criaram.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)

	list, err := h.listarVisiveis(u)
	if err != nil {
		httputil.Interno(w, "listar negociações", err)
		return
	}
	httputil.JSON(w, http.StatusOK, list, "")
}

func (h *Handler) listarVisiveis(u *usuario.Usuario) ([]models.Negociacao, error) {
	if u.TemPermissao(papel.GerenciarNegociacoes) {
		return h.Repository.ListarTodas(h.DB)
	}
	if u.TipoNegociavel != "" {
		return h.Repository.ListarPorEntidade(h.DB, u.TipoNegociavel, u.NegociavelID)
	}
	return h.Repository.ListarPorCriador(h.DB, u.ID)
}

/* ================== GET /negociacoes/{id} ================== */

func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	httputil.JSON(w, http.StatusOK, h.detalhe(n, u), "")
}

/* ================== PUT /negociacoes/{id} ================== */

func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if !permissao.PodeEditar(n, u) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoEditar)
		return
	}

	var dto UpdateNegociacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	if dto.Titulo != nil {
		n.Titulo = *dto.Titulo
	}
	if dto.MaxCiclosPermitidos != nil && *dto.MaxCiclosPermitidos >= n.CicloNegociacao {
		n.MaxCiclosPermitidos = *dto.MaxCiclosPermitidos
	}
	if dto.RequerAprovacaoInterna != nil {
		n.RequerAprovacaoInterna = *dto.RequerAprovacaoInterna
	}
	if dto.Itens != nil {
		var antigos []uint
		for _, it := range n.Itens {
			antigos = append(antigos, it.ID)
		}
		if err := h.Repository.RemoverItens(h.DB, antigos); err != nil {
			httputil.Interno(w, "remover itens", err)
			return
		}
		itens := montarItens(*dto.Itens)
		for i := range itens {
			itens[i].NegociacaoID = n.ID
		}
		n.Itens = itens
	}

	h.persistirEResponder(w, n, u, "")
}

/* ================== transições de status ================== */

// Submeter trata POST /negociacoes/{id}/submeter
func (h *Handler) Submeter(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if u.ID != n.CriadorID && !u.TemPapel(papel.SuperAdmin) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgApenasCriadorEnvia)
		return
	}
	if err := Submeter(n, u.ID); err != nil {
		httputil.Regra(w, err)
		return
	}
	h.persistirEResponder(w, n, u, "negociação enviada para aprovação")
	h.notificar(n)
}

// Aprovar trata POST /negociacoes/{id}/aprovar
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	h.decidirInterna(w, r, true)
}

// Rejeitar trata POST /negociacoes/{id}/rejeitar
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	h.decidirInterna(w, r, false)
}

func (h *Handler) decidirInterna(w http.ResponseWriter, r *http.Request, aprovar bool) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if !permissao.PodeAprovarInternamente(n, u) {
		msg := erros.MsgSemPermissaoAprovar
		if u.ID == n.CriadorID {
			msg = erros.MsgAprovarPropria
		}
		httputil.Erro(w, http.StatusForbidden, msg)
		return
	}

	var dto ObservacaoRequest
	_ = json.NewDecoder(r.Body).Decode(&dto)

	var err error
	mensagem := "negociação aprovada"
	if aprovar {
		err = AprovarInterna(n, u.ID, dto.Observacao)
	} else {
		err = RejeitarInterna(n, u.ID, dto.Observacao)
		mensagem = "negociação rejeitada"
	}
	if err != nil {
		httputil.Regra(w, err)
		return
	}
	h.persistirEResponder(w, n, u, mensagem)
	h.notificar(n)
}

// Reverter trata POST /negociacoes/{id}/reverter
func (h *Handler) Reverter(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if !u.TemPermissao(papel.GerenciarNegociacoes) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}
	if err := Reverter(n, u.ID); err != nil {
		httputil.Regra(w, err)
		return
	}
	h.persistirEResponder(w, n, u, "status revertido")
}

// Cancelar trata POST /negociacoes/{id}/cancelar
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if u.ID != n.CriadorID && !u.TemPermissao(papel.EditarNegociacoes) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoEditar)
		return
	}
	if err := Cancelar(n, u.ID); err != nil {
		httputil.Regra(w, err)
		return
	}
	h.persistirEResponder(w, n, u, "negociação cancelada")
	h.notificar(n)
}

// Concluir trata POST /negociacoes/{id}/concluir
func (h *Handler) Concluir(w http.ResponseWriter, r *http.Request) {
	h.fechar(w, r, Concluir, "negociação concluída")
}

// ConcluirParcial trata POST /negociacoes/{id}/concluir-parcial
func (h *Handler) ConcluirParcial(w http.ResponseWriter, r *http.Request) {
	h.fechar(w, r, ConcluirParcial, "negociação concluída parcialmente")
}

func (h *Handler) fechar(w http.ResponseWriter, r *http.Request, fn func(*models.Negociacao, uint) error, mensagem string) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if !u.TemPermissao(papel.GerenciarNegociacoes) && !permissao.PodeAprovarExternamente(n, u) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}
	if err := fn(n, u.ID); err != nil {
		httputil.Regra(w, err)
		return
	}
	h.persistirEResponder(w, n, u, mensagem)
	h.notificar(n)
}

// NovoCiclo trata POST /negociacoes/{id}/novo-ciclo
func (h *Handler) NovoCiclo(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if u.ID != n.CriadorID && !u.TemPermissao(papel.GerenciarNegociacoes) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}
	if err := NovoCiclo(n, u.ID); err != nil {
		httputil.Regra(w, err)
		return
	}
	h.persistirEResponder(w, n, u, "novo ciclo iniciado")
	h.Notificador.EnviarEvento(n, notificacao.EventoNovoCiclo)
}

// Fork trata POST /negociacoes/{id}/fork
func (h *Handler) Fork(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if !u.TemPermissao(papel.GerenciarNegociacoes) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}

	var dto ForkRequest
	_ = json.NewDecoder(r.Body).Decode(&dto)

	forks, movidos, err := PlanejarFork(n, dto.Grupos, u.ID)
	if err != nil {
		httputil.Regra(w, err)
		return
	}
	if err := h.Repository.SalvarForks(h.DB, forks); err != nil {
		httputil.Interno(w, "salvar forks", err)
		return
	}
	if err := h.Repository.RemoverItens(h.DB, movidos); err != nil {
		httputil.Interno(w, "remover itens do pai", err)
		return
	}
	restantes := n.Itens[:0]
	for _, it := range n.Itens {
		mantem := true
		for _, id := range movidos {
			if it.ID == id {
				mantem = false
				break
			}
		}
		if mantem {
			restantes = append(restantes, it)
		}
	}
	n.Itens = restantes
	if err := h.Repository.Atualizar(h.DB, n); err != nil {
		httputil.Interno(w, "atualizar negociação", err)
		return
	}

	httputil.JSON(w, http.StatusCreated, map[string]any{
		"pai":   h.detalhe(n, u),
		"forks": forks,
	}, "negociação dividida")
}

// GerarContrato trata POST /negociacoes/{id}/gerar-contrato
func (h *Handler) GerarContrato(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	switch n.Status {
	case models.StatusApproved, models.StatusComplete, models.StatusPartiallyComplete:
	default:
		httputil.Erro(w, http.StatusUnprocessableEntity, erros.MsgContratoStatusInvalido)
		return
	}
	if !permissao.PodeGerarContrato(n, u) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}

	c, err := h.Contratos.GerarParaNegociacao(h.DB, n, u.ID)
	if err != nil {
		if err.Error() == erros.MsgContratoJaGerado {
			httputil.Regra(w, err)
			return
		}
		httputil.Interno(w, "gerar contrato", err)
		return
	}

	formalizacao := models.FormalizacaoConcluida
	n.StatusFormalizacao = &formalizacao
	registrar(n, u.ID, AcaoGerarContrato, "", "", "")
	if err := h.Repository.Atualizar(h.DB, n); err != nil {
		httputil.Interno(w, "atualizar negociação", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, c, "contrato gerado")
}

// ReenviarNotificacoes trata POST /negociacoes/{id}/reenviar-notificacoes
func (h *Handler) ReenviarNotificacoes(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, ok := h.carregar(w, r)
	if !ok {
		return
	}
	if u.ID != n.CriadorID && !u.TemPermissao(papel.GerenciarNegociacoes) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}
	h.notificar(n)
	httputil.JSON(w, http.StatusOK, nil, "notificações reenviadas")
}

func (h *Handler) notificar(n *models.Negociacao) {
	if evento := notificacao.EventoDoStatus(n); evento != "" {
		h.Notificador.EnviarEvento(n, evento)
	}
}

/* ================== itens ================== */

func (h *Handler) carregarItem(w http.ResponseWriter, r *http.Request) (*models.Negociacao, *models.ItemNegociacao, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return nil, nil, false
	}
	item, err := h.Repository.BuscarItemPorID(h.DB, uint(id))
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, erros.MsgItemNaoEncontrado)
		return nil, nil, false
	}
	n, err := h.Repository.BuscarPorID(h.DB, item.NegociacaoID)
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, erros.MsgNegociacaoNaoEncontrada)
		return nil, nil, false
	}
	return n, item, true
}

// ResponderItem trata POST /itens-negociacao/{id}/responder
func (h *Handler) ResponderItem(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, item, ok := h.carregarItem(w, r)
	if !ok {
		return
	}
	if !permissao.PodeAprovarExternamente(n, u) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgNaoRepresentaEntidade)
		return
	}

	var dto ResponderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}
	var valorAprovado *float64
	if dto.ValorAprovado != nil {
		v := valores.ParseValor(dto.ValorAprovado)
		valorAprovado = &v
	}

	if err := ResponderItem(n, item, dto.Decisao, valorAprovado, u.ID); err != nil {
		httputil.Regra(w, err)
		return
	}
	if err := h.Repository.AtualizarItem(h.DB, item); err != nil {
		httputil.Interno(w, "atualizar item", err)
		return
	}
	h.sincronizarItem(n, item)
	h.persistirEResponder(w, n, u, "item respondido")
}

// Contrapropor trata POST /itens-negociacao/{id}/contraproposta
func (h *Handler) Contrapropor(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)
	n, item, ok := h.carregarItem(w, r)
	if !ok {
		return
	}
	if !permissao.PodeAprovarExternamente(n, u) {
		httputil.Erro(w, http.StatusForbidden, erros.MsgNaoRepresentaEntidade)
		return
	}

	var dto ContrapropostaRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	if err := Contrapropor(n, item, valores.ParseValor(dto.Valor), u.ID); err != nil {
		httputil.Regra(w, err)
		return
	}
	if err := h.Repository.AtualizarItem(h.DB, item); err != nil {
		httputil.Interno(w, "atualizar item", err)
		return
	}
	h.sincronizarItem(n, item)
	h.persistirEResponder(w, n, u, "contraproposta registrada")
}

// sincronizarItem reflete o item mutado na lista carregada da negociação.
func (h *Handler) sincronizarItem(n *models.Negociacao, item *models.ItemNegociacao) {
	for i := range n.Itens {
		if n.Itens[i].ID == item.ID {
			n.Itens[i] = *item
			return
		}
	}
}

/* ================== GET /dashboard/resumo ================== */

// Resumo agrega o painel das negociações visíveis ao usuário logado.
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	u := h.ator(r)

	list, err := h.listarVisiveis(u)
	if err != nil {
		httputil.Interno(w, "listar negociações", err)
		return
	}

	dto := ResumoDashboardDTO{
		TotalNegociacoes: len(list),
		PorStatus:        map[string]int{},
	}
	for i := range list {
		dto.PorStatus[list[i].Status]++
		resumo := valores.Resumir(list[i].Itens)
		dto.TotalProposto += resumo.TotalProposto
		dto.TotalAprovado += resumo.TotalAprovado
	}
	dto.TotalFormatado = valores.FormatarMoeda(dto.TotalAprovado)
	httputil.JSON(w, http.StatusOK, dto, "")
}
