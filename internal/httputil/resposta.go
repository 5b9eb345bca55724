// internal/httputil/resposta.go
package httputil

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ConectaSaude/api-rede/internal/erros"
)

// Resposta é o envelope padrão da API: { data, message, success, errors? }.
type Resposta struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON escreve uma resposta de sucesso no envelope padrão.
func JSON(w http.ResponseWriter, status int, data any, mensagem string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Resposta{
		Data:    data,
		Message: mensagem,
		Success: true,
	})
}

// Erro escreve um erro no envelope padrão. "message" recebe a tradução em
// português; "errors" carrega a mensagem bruta do servidor.
func Erro(w http.ResponseWriter, status int, mensagem string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Resposta{
		Message: erros.Traduzir(mensagem),
		Success: false,
		Errors:  []string{mensagem},
	})
}

// Regra escreve uma violação de regra de negócio (422).
func Regra(w http.ResponseWriter, err error) {
	Erro(w, http.StatusUnprocessableEntity, err.Error())
}

// Validacao escreve um erro de validação 422 com mensagens por campo.
func Validacao(w http.ResponseWriter, campos map[string][]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(Resposta{
		Message: erros.Traduzir(erros.MsgPayloadInvalido),
		Success: false,
		Errors:  campos,
	})
}

// Interno registra o erro no log e devolve um 500 genérico.
func Interno(w http.ResponseWriter, contexto string, err error) {
	log.Printf("%s: %v", contexto, err)
	Erro(w, http.StatusInternalServerError, "Internal server error")
}
