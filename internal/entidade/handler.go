package entidade

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ConectaSaude/api-rede/internal/erros"
	"github.com/ConectaSaude/api-rede/internal/httputil"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func idDaRota(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return 0, false
	}
	return uint(id), true
}

/* ================== operadoras ================== */

// CriarOperadora trata POST /operadoras (cadastro aberto)
func (h *Handler) CriarOperadora(w http.ResponseWriter, r *http.Request) {
	var o Operadora
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}
	if o.CNPJ == "" || o.RegistroANS == "" {
		httputil.Validacao(w, map[string][]string{
			"cnpj":        {"obrigatório"},
			"registroAns": {"obrigatório"},
		})
		return
	}
	if err := h.Repository.SalvarOperadora(h.DB, &o); err != nil {
		httputil.Interno(w, "salvar operadora", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, o, "")
}

func (h *Handler) ListarOperadoras(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarOperadoras(h.DB)
	if err != nil {
		httputil.Interno(w, "listar operadoras", err)
		return
	}
	httputil.JSON(w, http.StatusOK, list, "")
}

func (h *Handler) BuscarOperadora(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	o, err := h.Repository.BuscarOperadora(h.DB, id)
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, "Health plan not found")
		return
	}
	httputil.JSON(w, http.StatusOK, o, "")
}

/* ================== profissionais ================== */

// CriarProfissional trata POST /profissionais (formulário de credenciamento)
func (h *Handler) CriarProfissional(w http.ResponseWriter, r *http.Request) {
	var p Profissional
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}
	if p.CPF == "" || p.NumeroConselho == "" {
		httputil.Validacao(w, map[string][]string{
			"cpf":            {"obrigatório"},
			"numeroConselho": {"obrigatório"},
		})
		return
	}
	if err := h.Repository.SalvarProfissional(h.DB, &p); err != nil {
		httputil.Interno(w, "salvar profissional", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, p, "")
}

func (h *Handler) ListarProfissionais(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarProfissionais(h.DB)
	if err != nil {
		httputil.Interno(w, "listar profissionais", err)
		return
	}
	httputil.JSON(w, http.StatusOK, list, "")
}

func (h *Handler) BuscarProfissional(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	p, err := h.Repository.BuscarProfissional(h.DB, id)
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, "Professional not found")
		return
	}
	httputil.JSON(w, http.StatusOK, p, "")
}

/* ================== clínicas ================== */

// CriarClinica trata POST /clinicas (formulário de credenciamento)
func (h *Handler) CriarClinica(w http.ResponseWriter, r *http.Request) {
	var c Clinica
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		httputil.Erro(w, http.StatusBadRequest, erros.MsgPayloadInvalido)
		return
	}
	if c.CNPJ == "" {
		httputil.Validacao(w, map[string][]string{"cnpj": {"obrigatório"}})
		return
	}
	if err := h.Repository.SalvarClinica(h.DB, &c); err != nil {
		httputil.Interno(w, "salvar clínica", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, c, "")
}

func (h *Handler) ListarClinicas(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarClinicas(h.DB)
	if err != nil {
		httputil.Interno(w, "listar clínicas", err)
		return
	}
	httputil.JSON(w, http.StatusOK, list, "")
}

func (h *Handler) BuscarClinica(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(w, r)
	if !ok {
		return
	}
	c, err := h.Repository.BuscarClinica(h.DB, id)
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, "Clinic not found")
		return
	}
	httputil.JSON(w, http.StatusOK, c, "")
}
