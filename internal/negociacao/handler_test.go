package negociacao

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ConectaSaude/api-rede/internal/auth"
	"github.com/ConectaSaude/api-rede/internal/contrato"
	"github.com/ConectaSaude/api-rede/internal/erros"
	"github.com/ConectaSaude/api-rede/internal/models"
	"github.com/ConectaSaude/api-rede/internal/papel"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepo guarda tudo em memória; o *gorm.DB recebido é ignorado (nil nos
// testes).
type fakeRepo struct {
	negociacoes map[uint]*models.Negociacao
	itens       map[uint]*models.ItemNegociacao

	atualizadas    int
	forksSalvos    []models.Negociacao
	itensRemovidos []uint
	listouTodas    bool
	listouCriador  bool
	listouEntidade bool
}

func novoFakeRepo(ns ...*models.Negociacao) *fakeRepo {
	r := &fakeRepo{
		negociacoes: map[uint]*models.Negociacao{},
		itens:       map[uint]*models.ItemNegociacao{},
	}
	for _, n := range ns {
		r.negociacoes[n.ID] = n
		for i := range n.Itens {
			it := n.Itens[i]
			r.itens[it.ID] = &it
		}
	}
	return r
}

func (r *fakeRepo) Salvar(_ *gorm.DB, n *models.Negociacao) error {
	n.ID = uint(len(r.negociacoes) + 1)
	r.negociacoes[n.ID] = n
	return nil
}

func (r *fakeRepo) BuscarPorID(_ *gorm.DB, id uint) (*models.Negociacao, error) {
	n, ok := r.negociacoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (r *fakeRepo) ListarTodas(_ *gorm.DB) ([]models.Negociacao, error) {
	r.listouTodas = true
	var list []models.Negociacao
	for _, n := range r.negociacoes {
		list = append(list, *n)
	}
	return list, nil
}

func (r *fakeRepo) ListarPorCriador(_ *gorm.DB, criadorID uint) ([]models.Negociacao, error) {
	r.listouCriador = true
	var list []models.Negociacao
	for _, n := range r.negociacoes {
		if n.CriadorID == criadorID {
			list = append(list, *n)
		}
	}
	return list, nil
}

func (r *fakeRepo) ListarPorEntidade(_ *gorm.DB, tipo string, id uint) ([]models.Negociacao, error) {
	r.listouEntidade = true
	var list []models.Negociacao
	for _, n := range r.negociacoes {
		if n.TipoNegociavel == tipo && n.NegociavelID == id {
			list = append(list, *n)
		}
	}
	return list, nil
}

func (r *fakeRepo) Atualizar(_ *gorm.DB, n *models.Negociacao) error {
	r.atualizadas++
	r.negociacoes[n.ID] = n
	return nil
}

func (r *fakeRepo) BuscarItemPorID(_ *gorm.DB, id uint) (*models.ItemNegociacao, error) {
	it, ok := r.itens[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return it, nil
}

func (r *fakeRepo) AtualizarItem(_ *gorm.DB, item *models.ItemNegociacao) error {
	r.itens[item.ID] = item
	return nil
}

func (r *fakeRepo) RemoverItens(_ *gorm.DB, ids []uint) error {
	r.itensRemovidos = append(r.itensRemovidos, ids...)
	return nil
}

func (r *fakeRepo) SalvarForks(_ *gorm.DB, forks []models.Negociacao) error {
	r.forksSalvos = append(r.forksSalvos, forks...)
	return nil
}

type fakeNotificador struct{ eventos []string }

func (f *fakeNotificador) EnviarEvento(_ *models.Negociacao, evento string) {
	f.eventos = append(f.eventos, evento)
}

type fakeContratos struct{ gerado *contrato.Contrato }

func (f *fakeContratos) GerarParaNegociacao(_ *gorm.DB, n *models.Negociacao, atorID uint) (*contrato.Contrato, error) {
	f.gerado = &contrato.Contrato{NegociacaoID: n.ID, Ciclo: n.CicloNegociacao, GeradoPorID: atorID}
	return f.gerado, nil
}

func (f *fakeContratos) ListarPorNegociacao(_ *gorm.DB, _ uint) ([]contrato.Contrato, error) {
	return nil, nil
}

func (f *fakeContratos) BuscarPorID(_ *gorm.DB, _ uint) (*contrato.Contrato, error) {
	return nil, gorm.ErrRecordNotFound
}

func novoHandler(repo *fakeRepo) (*Handler, *fakeNotificador) {
	notif := &fakeNotificador{}
	return &Handler{
		Repository:  repo,
		Contratos:   &fakeContratos{},
		Notificador: notif,
	}, notif
}

func claimsDe(id uint, papeis ...string) *auth.Claims {
	return &auth.Claims{UsuarioID: id, Papeis: papeis}
}

func claimsDeEntidade(id uint, papelNome, tipo string, entidadeID uint) *auth.Claims {
	c := claimsDe(id, papelNome)
	c.TipoNegociavel = tipo
	c.NegociavelID = entidadeID
	return c
}

func requisicao(metodo, alvo string, corpo any, claims *auth.Claims, vars map[string]string) *http.Request {
	var body bytes.Buffer
	if corpo != nil {
		_ = json.NewEncoder(&body).Encode(corpo)
	}
	r := httptest.NewRequest(metodo, alvo, &body)
	r = r.WithContext(context.WithValue(r.Context(), auth.CtxClaims, claims))
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
	Errors  json.RawMessage `json:"errors"`
}

func decodificar(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&env))
	return env
}

func TestHandlerSubmeter_semItensDevolve422Traduzido(t *testing.T) {
	n := rascunho()
	n.Itens = nil
	repo := novoFakeRepo(n)
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/submeter", nil,
		claimsDe(7, papel.Comercial), map[string]string{"id": "1"})
	h.Submeter(w, r)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodificar(t, w)
	require.False(t, env.Success)
	require.Equal(t, "Não é possível enviar uma negociação sem itens", env.Message)

	var brutos []string
	require.NoError(t, json.Unmarshal(env.Errors, &brutos))
	require.Equal(t, []string{erros.MsgSemItens}, brutos)
	require.Zero(t, repo.atualizadas, "falha de regra não persiste nada")
}

func TestHandlerSubmeter_apenasCriador(t *testing.T) {
	repo := novoFakeRepo(rascunho())
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/submeter", nil,
		claimsDe(99, papel.Comercial), map[string]string{"id": "1"})
	h.Submeter(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
	env := decodificar(t, w)
	require.Equal(t, "Apenas o criador pode enviar esta negociação", env.Message)
}

func TestHandlerSubmeter_sucessoNotifica(t *testing.T) {
	repo := novoFakeRepo(rascunho())
	h, notif := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/submeter", nil,
		claimsDe(7, papel.Comercial), map[string]string{"id": "1"})
	h.Submeter(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.StatusPending, repo.negociacoes[1].Status)
	require.Equal(t, 1, repo.atualizadas)
	require.Equal(t, []string{"negotiation.pending"}, notif.eventos)
}

func TestHandlerAprovar_criadorRecebe403(t *testing.T) {
	n := rascunho()
	n.Status = models.StatusPending
	repo := novoFakeRepo(n)
	h, _ := novoHandler(repo)

	// mesmo com papel de alçada, o criador não aprova a própria negociação
	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/aprovar", nil,
		claimsDe(7, papel.Diretor), map[string]string{"id": "1"})
	h.Aprovar(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
	env := decodificar(t, w)
	require.Equal(t, "Você não pode aprovar sua própria negociação", env.Message)
	require.Equal(t, models.StatusPending, repo.negociacoes[1].Status)
}

func TestHandlerAprovar_gestorTerceiro(t *testing.T) {
	n := rascunho()
	n.Status = models.StatusPending
	n.StatusAnterior = models.StatusDraft
	repo := novoFakeRepo(n)
	h, notif := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/aprovar",
		ObservacaoRequest{Observacao: "valores dentro da tabela"},
		claimsDe(9, papel.GerenteComercial), map[string]string{"id": "1"})
	h.Aprovar(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, models.StatusApproved, repo.negociacoes[1].Status)
	require.Equal(t, []string{"negotiation.approved"}, notif.eventos)

	ultima := n.Historico[len(n.Historico)-1]
	require.Equal(t, "valores dentro da tabela", ultima.Observacao)
}

func TestHandlerBuscarPorID_naoEncontrada(t *testing.T) {
	h, _ := novoHandler(novoFakeRepo())

	w := httptest.NewRecorder()
	r := requisicao(http.MethodGet, "/negociacoes/5", nil,
		claimsDe(7, papel.Comercial), map[string]string{"id": "5"})
	h.BuscarPorID(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	env := decodificar(t, w)
	require.Equal(t, "Negociação não encontrada", env.Message)
}

func TestHandlerCriar_validacaoPorCampo(t *testing.T) {
	h, _ := novoHandler(novoFakeRepo())

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes",
		CreateNegociacaoRequest{TipoNegociavel: "banco"}, claimsDe(7, papel.Comercial), nil)
	h.Criar(w, r)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodificar(t, w)

	var campos map[string][]string
	require.NoError(t, json.Unmarshal(env.Errors, &campos))
	require.Contains(t, campos, "titulo")
	require.Contains(t, campos, "tipoNegociavel")
	require.Contains(t, campos, "negociavelId")
}

func TestHandlerCriar_valoresComVirgula(t *testing.T) {
	repo := novoFakeRepo()
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes", CreateNegociacaoRequest{
		Titulo:         "Tabela TUSS 2026",
		TipoNegociavel: models.TipoOperadora,
		NegociavelID:   3,
		Itens: []ItemRequest{
			{CodigoTUSS: "10101012", ValorProposto: "1234,50"},
			{CodigoTUSS: "10101020", ValorProposto: 80},
		},
	}, claimsDe(7, papel.Comercial), nil)
	h.Criar(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	criada := repo.negociacoes[1]
	require.Equal(t, models.StatusDraft, criada.Status)
	require.Equal(t, 3, criada.MaxCiclosPermitidos, "teto padrão de ciclos")
	require.True(t, criada.RequerAprovacaoInterna, "alçada interna por padrão")
	require.Equal(t, 1234.5, criada.Itens[0].ValorProposto)
	require.Equal(t, 80.0, criada.Itens[1].ValorProposto)
}

func TestHandlerListar_escopoPorPerfil(t *testing.T) {
	casos := []struct {
		nome   string
		claims *auth.Claims
		quer   func(*fakeRepo) bool
	}{
		{"gestor vê todas", claimsDe(9, papel.GerenteComercial),
			func(r *fakeRepo) bool { return r.listouTodas }},
		{"entidade vê as suas", claimsDeEntidade(20, papel.Profissional, models.TipoProfissional, 42),
			func(r *fakeRepo) bool { return r.listouEntidade }},
		{"comercial vê as que criou", claimsDe(7, papel.Comercial),
			func(r *fakeRepo) bool { return r.listouCriador }},
	}
	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			repo := novoFakeRepo(rascunho())
			h, _ := novoHandler(repo)

			w := httptest.NewRecorder()
			h.Listar(w, requisicao(http.MethodGet, "/negociacoes", nil, c.claims, nil))

			require.Equal(t, http.StatusOK, w.Code)
			require.True(t, c.quer(repo))
		})
	}
}

func TestHandlerFork_exigeGestao(t *testing.T) {
	repo := novoFakeRepo(rascunho())
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/fork", nil,
		claimsDe(7, papel.Comercial), map[string]string{"id": "1"})
	h.Fork(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Empty(t, repo.forksSalvos)
}

func TestHandlerFork_dividePorItem(t *testing.T) {
	repo := novoFakeRepo(rascunho())
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/fork", nil,
		claimsDe(9, papel.GerenteComercial), map[string]string{"id": "1"})
	h.Fork(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.forksSalvos, 2)
	require.ElementsMatch(t, []uint{11, 12}, repo.itensRemovidos)
	require.Empty(t, repo.negociacoes[1].Itens, "itens movidos saem do pai")
	require.Equal(t, 2, repo.negociacoes[1].QtdForks)
}

func TestHandlerResponderItem_entidadeErrada(t *testing.T) {
	n := rascunho()
	n.Status = models.StatusSubmitted
	repo := novoFakeRepo(n)
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/itens-negociacao/11/responder",
		ResponderItemRequest{Decisao: models.ItemApproved},
		claimsDeEntidade(20, papel.Profissional, models.TipoProfissional, 99),
		map[string]string{"id": "11"})
	h.ResponderItem(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
	env := decodificar(t, w)
	require.Equal(t, "Você não representa esta entidade", env.Message)
}

func TestHandlerResponderItem_aprovaComValorProposto(t *testing.T) {
	n := rascunho()
	n.Status = models.StatusSubmitted
	repo := novoFakeRepo(n)
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/itens-negociacao/11/responder",
		ResponderItemRequest{Decisao: models.ItemApproved},
		claimsDeEntidade(20, papel.Profissional, models.TipoProfissional, 42),
		map[string]string{"id": "11"})
	h.ResponderItem(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	item := repo.itens[11]
	require.Equal(t, models.ItemApproved, item.Status)
	require.Equal(t, 100.0, *item.ValorAprovado)
}

func TestHandlerContrapropor(t *testing.T) {
	n := rascunho()
	n.Status = models.StatusSubmitted
	repo := novoFakeRepo(n)
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/itens-negociacao/12/contraproposta",
		ContrapropostaRequest{Valor: "180,00"},
		claimsDeEntidade(20, papel.Profissional, models.TipoProfissional, 42),
		map[string]string{"id": "12"})
	h.Contrapropor(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	item := repo.itens[12]
	require.Equal(t, models.ItemCounterOffered, item.Status)
	require.Equal(t, 180.0, *item.ValorContraproposta)
}

func TestHandlerGerarContrato_statusInvalido(t *testing.T) {
	repo := novoFakeRepo(rascunho())
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/gerar-contrato", nil,
		claimsDe(9, papel.GerenteComercial), map[string]string{"id": "1"})
	h.GerarContrato(w, r)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodificar(t, w)
	require.Equal(t, "O contrato só pode ser gerado para negociações aprovadas", env.Message)
}

func TestHandlerGerarContrato_marcaFormalizacao(t *testing.T) {
	n := rascunho()
	n.Status = models.StatusComplete
	repo := novoFakeRepo(n)
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	r := requisicao(http.MethodPost, "/negociacoes/1/gerar-contrato", nil,
		claimsDe(9, papel.GerenteComercial), map[string]string{"id": "1"})
	h.GerarContrato(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, n.StatusFormalizacao)
	require.Equal(t, models.FormalizacaoConcluida, *n.StatusFormalizacao)
}

func TestHandlerResumo(t *testing.T) {
	a := rascunho()
	b := rascunho()
	b.ID = 2
	b.Status = models.StatusSubmitted
	repo := novoFakeRepo(a, b)
	h, _ := novoHandler(repo)

	w := httptest.NewRecorder()
	h.Resumo(w, requisicao(http.MethodGet, "/dashboard/resumo", nil,
		claimsDe(9, papel.SuperAdmin), nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := decodificar(t, w)

	var dto ResumoDashboardDTO
	require.NoError(t, json.Unmarshal(env.Data, &dto))
	require.Equal(t, 2, dto.TotalNegociacoes)
	require.Equal(t, 1, dto.PorStatus[models.StatusDraft])
	require.Equal(t, 1, dto.PorStatus[models.StatusSubmitted])
	require.Equal(t, 600.0, dto.TotalProposto)
	require.Equal(t, "R$ 0,00", dto.TotalFormatado)
}
