package contrato

import (
	"net/http"
	"strconv"

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

// ListarPorNegociacao trata GET /negociacoes/{id}/contratos
func (h *Handler) ListarPorNegociacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	list, err := h.Repository.ListarPorNegociacao(h.DB, uint(id))
	if err != nil {
		httputil.Interno(w, "listar contratos", err)
		return
	}
	httputil.JSON(w, http.StatusOK, list, "")
}

// BuscarPorID trata GET /contratos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		httputil.Erro(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		httputil.Erro(w, http.StatusNotFound, "Contract not found")
		return
	}
	httputil.JSON(w, http.StatusOK, c, "")
}
