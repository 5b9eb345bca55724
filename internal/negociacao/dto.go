package negociacao

import (
	"github.com/ConectaSaude/api-rede/internal/models"
	"github.com/ConectaSaude/api-rede/internal/permissao"
	"github.com/ConectaSaude/api-rede/internal/valores"
)

// ItemRequest é um item de negociação no payload de criação/edição. O valor
// proposto chega como número ou string (ambos aceitos no wire antigo).
type ItemRequest struct {
	CodigoTUSS    string `json:"codigoTuss"`
	Descricao     string `json:"descricao"`
	ValorProposto any    `json:"valorProposto"`
}

// CreateNegociacaoRequest é usado em POST /negociacoes
type CreateNegociacaoRequest struct {
	Titulo                 string        `json:"titulo"`
	TipoNegociavel         string        `json:"tipoNegociavel"`
	NegociavelID           uint          `json:"negociavelId"`
	MaxCiclosPermitidos    int           `json:"maxCiclosPermitidos"`
	RequerAprovacaoInterna *bool         `json:"requerAprovacaoInterna,omitempty"`
	Itens                  []ItemRequest `json:"itens"`
}

// UpdateNegociacaoRequest é usado em PUT /negociacoes/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar
type UpdateNegociacaoRequest struct {
	Titulo                 *string        `json:"titulo,omitempty"`
	MaxCiclosPermitidos    *int           `json:"maxCiclosPermitidos,omitempty"`
	RequerAprovacaoInterna *bool          `json:"requerAprovacaoInterna,omitempty"`
	Itens                  *[]ItemRequest `json:"itens,omitempty"`
}

// ObservacaoRequest acompanha aprovações e rejeições internas.
type ObservacaoRequest struct {
	Observacao string `json:"observacao"`
}

// ForkRequest agrupa IDs de itens pendentes; cada grupo vira um fork.
type ForkRequest struct {
	Grupos [][]uint `json:"grupos"`
}

// ResponderItemRequest é usado em POST /itens-negociacao/{id}/responder
type ResponderItemRequest struct {
	Decisao       string `json:"decisao"` // "approved" | "rejected"
	ValorAprovado any    `json:"valorAprovado,omitempty"`
}

// ContrapropostaRequest é usado em POST /itens-negociacao/{id}/contraproposta
type ContrapropostaRequest struct {
	Valor any `json:"valor"`
}

// DetalheDTO é a visão completa devolvida em GET /negociacoes/{id}: a
// negociação, o resumo de valores e as afordâncias do usuário logado.
type DetalheDTO struct {
	models.Negociacao
	Resumo     valores.Resumo       `json:"resumo"`
	Permissoes permissao.Permissoes `json:"permissoes"`
}

// ResumoDashboardDTO agrega o painel por papel organizacional.
type ResumoDashboardDTO struct {
	TotalNegociacoes int            `json:"totalNegociacoes"`
	PorStatus        map[string]int `json:"porStatus"`
	TotalProposto    float64        `json:"totalProposto"`
	TotalAprovado    float64        `json:"totalAprovado"`
	TotalFormatado   string         `json:"totalFormatado"`
}
