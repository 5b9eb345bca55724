package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ConectaSaude/api-rede/internal/models"
)

// Eventos de ciclo de vida notificados via webhook.
const (
	EventoSubmetida = "negotiation.submitted"
	EventoPendente  = "negotiation.pending"
	EventoAprovada  = "negotiation.approved"
	EventoRejeitada = "negotiation.rejected"
	EventoConcluida = "negotiation.completed"
	EventoCancelada = "negotiation.cancelled"
	EventoNovoCiclo = "negotiation.new_cycle"
)

// Webhook envia eventos de negociação para a URL configurada
// (WEBHOOK_URL). Sem URL, os envios viram no-op.
type Webhook struct {
	URL     string
	Cliente *http.Client
}

func NovoWebhook() *Webhook {
	return &Webhook{
		URL:     os.Getenv("WEBHOOK_URL"),
		Cliente: &http.Client{Timeout: 10 * time.Second},
	}
}

type eventoPayload struct {
	Evento       string `json:"evento"`
	NegociacaoID uint   `json:"negociacaoId"`
	Titulo       string `json:"titulo"`
	Status       string `json:"status"`
	Ciclo        int    `json:"ciclo"`
}

// EnviarEvento posta o evento para o webhook. Falha de entrega só gera log;
// a transição já foi persistida e o reenvio é explícito.
func (wh *Webhook) EnviarEvento(n *models.Negociacao, evento string) {
	if wh.URL == "" {
		return
	}
	body, _ := json.Marshal(eventoPayload{
		Evento:       evento,
		NegociacaoID: n.ID,
		Titulo:       n.Titulo,
		Status:       n.Status,
		Ciclo:        n.CicloNegociacao,
	})
	resp, err := wh.Cliente.Post(wh.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}

// EventoDoStatus deriva o último evento relevante a partir do status atual,
// usado pelo reenvio de notificações.
func EventoDoStatus(n *models.Negociacao) string {
	switch n.Status {
	case models.StatusSubmitted:
		return EventoSubmetida
	case models.StatusPending:
		return EventoPendente
	case models.StatusApproved:
		return EventoAprovada
	case models.StatusRejected:
		return EventoRejeitada
	case models.StatusComplete, models.StatusPartiallyComplete:
		return EventoConcluida
	case models.StatusCancelled:
		return EventoCancelada
	}
	return ""
}
