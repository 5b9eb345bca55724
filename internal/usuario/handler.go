package usuario

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ConectaSaude/api-rede/internal/auth"
	"github.com/ConectaSaude/api-rede/internal/erros"
	"github.com/ConectaSaude/api-rede/internal/httputil"
	"github.com/ConectaSaude/api-rede/internal/papel"
	"github.com/ConectaSaude/api-rede/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		httputil.Erro(w, http.StatusUnauthorized, erros.MsgCredenciaisInvalidas)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Password) {
		httputil.Erro(w, http.StatusUnauthorized, erros.MsgCredenciaisInvalidas)
		return
	}

	token, err := auth.GerarToken(user.ID, user.NomesPapeis(), user.TipoNegociavel, user.NegociavelID)
	if err != nil {
		httputil.Interno(w, "login", err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"token": token, "usuario": user}, "")
}

// Criar cadastra um novo usuário (restrito a super_admin via rota)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CreateUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}
	if req.Email == "" || req.Senha == "" {
		httputil.Validacao(w, map[string][]string{
			"email": {"obrigatório"},
			"senha": {"obrigatória"},
		})
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		httputil.Interno(w, "hash de senha", err)
		return
	}

	u := Usuario{
		Nome:           req.Nome,
		Sobrenome:      req.Sobrenome,
		Email:          req.Email,
		Telefone:       req.Telefone,
		Senha:          hash,
		TipoNegociavel: req.TipoNegociavel,
		NegociavelID:   req.NegociavelID,
	}
	if err := h.Repository.Salvar(h.DB, &u); err != nil {
		httputil.Interno(w, "salvar usuário", err)
		return
	}
	if err := h.Repository.AtribuirPapeis(h.DB, &u, req.Papeis); err != nil {
		httputil.Interno(w, "atribuir papéis", err)
		return
	}

	criado, err := h.Repository.BuscarPorID(h.DB, u.ID)
	if err != nil {
		httputil.Interno(w, "recarregar usuário", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, criado, "")
}

// Listar retorna todos os usuários (admin) ou apenas o próprio registro
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsDoContexto(r.Context())
	ator := DoClaims(claims)

	if ator.TemPapel(papel.SuperAdmin) || ator.TemPermissao(papel.GerenciarNegociacoes) {
		usuarios, err := h.Repository.ListarTodos(h.DB)
		if err != nil {
			httputil.Interno(w, "listar usuários", err)
			return
		}
		httputil.JSON(w, http.StatusOK, usuarios, "")
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, ator.ID)
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, erros.MsgUsuarioNaoEncontrado)
		return
	}
	httputil.JSON(w, http.StatusOK, []Usuario{*obj}, "")
}

// BuscarPorID retorna um usuário pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsDoContexto(r.Context())
	ator := DoClaims(claims)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	if !ator.TemPapel(papel.SuperAdmin) && uint(id) != ator.ID {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, erros.MsgUsuarioNaoEncontrado)
		return
	}
	httputil.JSON(w, http.StatusOK, obj, "")
}

// Atualizar altera dados de um usuário existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsDoContexto(r.Context())
	ator := DoClaims(claims)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	ehAdmin := ator.TemPapel(papel.SuperAdmin)
	if !ehAdmin && uint(id) != ator.ID {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}

	var req UpdateUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	existente, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, erros.MsgUsuarioNaoEncontrado)
		return
	}

	if req.Nome != nil {
		existente.Nome = *req.Nome
	}
	if req.Sobrenome != nil {
		existente.Sobrenome = *req.Sobrenome
	}
	if req.Telefone != nil {
		existente.Telefone = *req.Telefone
	}
	if err := h.Repository.Atualizar(h.DB, existente); err != nil {
		httputil.Interno(w, "atualizar usuário", err)
		return
	}
	// Papéis só mudam pela mão do admin
	if req.Papeis != nil && ehAdmin {
		if err := h.Repository.AtribuirPapeis(h.DB, existente, *req.Papeis); err != nil {
			httputil.Interno(w, "atribuir papéis", err)
			return
		}
	}

	atualizado, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		httputil.Interno(w, "recarregar usuário", err)
		return
	}
	httputil.JSON(w, http.StatusOK, atualizado, "usuário atualizado com sucesso")
}

// Deletar remove um usuário
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsDoContexto(r.Context())
	ator := DoClaims(claims)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}

	if !ator.TemPapel(papel.SuperAdmin) && uint(id) != ator.ID {
		httputil.Erro(w, http.StatusForbidden, erros.MsgSemPermissaoGerenciar)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		httputil.Interno(w, "excluir usuário", err)
		return
	}
	httputil.JSON(w, http.StatusOK, nil, "usuário excluído com sucesso")
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsDoContexto(r.Context())

	obj, err := h.Repository.BuscarPorID(h.DB, claims.UsuarioID)
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, erros.MsgUsuarioNaoEncontrado)
		return
	}
	httputil.JSON(w, http.StatusOK, obj, "")
}
