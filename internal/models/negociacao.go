// models/negociacao.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Status de negociação (valores de wire em inglês, herdados da API pública)
const (
	StatusDraft             = "draft"
	StatusSubmitted         = "submitted"
	StatusPending           = "pending"
	StatusApproved          = "approved"
	StatusComplete          = "complete"
	StatusPartiallyComplete = "partially_complete"
	// StatusPartiallyApproved sobrevive apenas para compatibilidade de leitura
	// com registros antigos; nenhuma transição produz esse valor.
	StatusPartiallyApproved = "partially_approved"
	StatusRejected          = "rejected"
	StatusCancelled         = "cancelled"
)

// Status de item de negociação
const (
	ItemPending        = "pending"
	ItemApproved       = "approved"
	ItemRejected       = "rejected"
	ItemCounterOffered = "counter_offered"
)

// Tipos de entidade negociável (referência polimórfica)
const (
	TipoOperadora    = "health_plan"
	TipoProfissional = "professional"
	TipoClinica      = "clinic"
)

// Status de formalização (preenchido após a geração do contrato)
const (
	FormalizacaoPendente  = "pending"
	FormalizacaoConcluida = "formalized"
)

// Negociacao representa uma proposta de tabela de honorários entre a
// operadora da rede e uma entidade credenciada (operadora de plano,
// profissional ou clínica).
type Negociacao struct {
	ID        uint           `gorm:"primaryKey" json:"negociacaoId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Titulo string `gorm:"size:255;not null" json:"titulo"`

	Status string `gorm:"size:50;not null;default:'draft';index" json:"status"`
	// StatusAnterior guarda o status de onde viemos, para a reversão ser
	// exata mesmo depois de aprovar.
	StatusAnterior string `gorm:"size:50" json:"statusAnterior,omitempty"`

	CicloNegociacao     int `gorm:"not null;default:1" json:"cicloNegociacao"`
	MaxCiclosPermitidos int `gorm:"not null;default:3" json:"maxCiclosPermitidos"`

	EhFork          bool  `gorm:"not null;default:false" json:"ehFork"`
	NegociacaoPaiID *uint `gorm:"index" json:"negociacaoPaiId,omitempty"`
	QtdForks        int   `gorm:"not null;default:0" json:"qtdForks"`

	// Referência polimórfica à contraparte externa
	TipoNegociavel string `gorm:"size:50;not null;index" json:"tipoNegociavel"`
	NegociavelID   uint   `gorm:"not null;index" json:"negociavelId"`

	CriadorID uint `gorm:"not null;index" json:"criadorId"`

	// Quando true, o envio passa primeiro pela alçada interna (pending);
	// quando false, vai direto à contraparte (submitted).
	RequerAprovacaoInterna bool `gorm:"not null;default:true" json:"requerAprovacaoInterna"`

	StatusFormalizacao *string `gorm:"size:50" json:"statusFormalizacao,omitempty"`

	Itens     []ItemNegociacao     `gorm:"foreignKey:NegociacaoID;constraint:OnDelete:CASCADE" json:"itens"`
	Historico []HistoricoAprovacao `gorm:"foreignKey:NegociacaoID;constraint:OnDelete:CASCADE" json:"historicoAprovacao"`
}

// ItensPendentes conta os itens ainda em "pending".
func (n *Negociacao) ItensPendentes() int {
	total := 0
	for _, it := range n.Itens {
		if it.Status == ItemPending {
			total++
		}
	}
	return total
}

// ItensNaoResolvidos conta itens que ainda aguardam decisão da contraparte.
func (n *Negociacao) ItensNaoResolvidos() int {
	total := 0
	for _, it := range n.Itens {
		if it.Status == ItemPending || it.Status == ItemCounterOffered {
			total++
		}
	}
	return total
}

// EhTerminal informa se o status atual encerra a negociação. Complete,
// partially_complete e rejected só saem do terminal via novo ciclo.
func (n *Negociacao) EhTerminal() bool {
	switch n.Status {
	case StatusCancelled, StatusComplete, StatusPartiallyComplete, StatusRejected:
		return true
	}
	return false
}

// ItemNegociacao é um procedimento (código TUSS) dentro da negociação, com
// valor proposto e status próprio.
type ItemNegociacao struct {
	ID        uint           `gorm:"primaryKey" json:"itemId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	NegociacaoID uint   `gorm:"not null;index" json:"negociacaoId"`
	CodigoTUSS   string `gorm:"size:20;not null" json:"codigoTuss"`
	Descricao    string `gorm:"size:255" json:"descricao"`

	Status string `gorm:"size:50;not null;default:'pending';index" json:"status"`

	ValorProposto       float64  `gorm:"not null;default:0" json:"valorProposto"`
	ValorAprovado       *float64 `json:"valorAprovado,omitempty"`
	ValorContraproposta *float64 `json:"valorContraproposta,omitempty"`
}

// HistoricoAprovacao é a trilha de auditoria de cada ação do ciclo de vida.
type HistoricoAprovacao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	NegociacaoID uint   `gorm:"not null;index" json:"negociacaoId"`
	UsuarioID    uint   `gorm:"not null;index" json:"usuarioId"`
	Acao         string `gorm:"size:50;not null" json:"acao"`
	DeStatus     string `gorm:"size:50" json:"deStatus"`
	ParaStatus   string `gorm:"size:50" json:"paraStatus"`
	Observacao   string `gorm:"size:500" json:"observacao,omitempty"`
}
