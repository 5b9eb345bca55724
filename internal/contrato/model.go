package contrato

import (
	"gorm.io/gorm"
)

// Status de contrato
const (
	StatusAtivo     = "active"
	StatusEncerrado = "terminated"
)

// Contrato é o documento gerado a partir de uma negociação aprovada ou
// concluída; no máximo um por ciclo de negociação.
type Contrato struct {
	gorm.Model

	NegociacaoID uint `gorm:"not null;index" json:"negociacaoId"`
	Ciclo        int  `gorm:"not null" json:"ciclo"`

	TipoNegociavel string `gorm:"size:50;not null" json:"tipoNegociavel"`
	NegociavelID   uint   `gorm:"not null;index" json:"negociavelId"`

	Valor          float64 `gorm:"not null" json:"valor"`
	ValorFormatado string  `gorm:"size:50" json:"valorFormatado"`
	Status         string  `gorm:"size:50;not null;default:'active'" json:"status"`

	GeradoPorID uint `gorm:"not null" json:"geradoPorId"`
}
