// internal/valores/valores.go
package valores

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ConectaSaude/api-rede/internal/models"
)

// Resumo agrega contagens e somas dos itens de uma negociação.
type Resumo struct {
	TotalItens           int     `json:"totalItens"`
	ItensAprovados       int     `json:"itensAprovados"`
	ItensPendentes       int     `json:"itensPendentes"`
	ItensRejeitados      int     `json:"itensRejeitados"`
	ItensContrapropostos int     `json:"itensContrapropostos"`
	TotalProposto        float64 `json:"totalProposto"`
	TotalAprovado        float64 `json:"totalAprovado"`
	DiferencaPercentual  float64 `json:"diferencaPercentual"`
}

// ParseValor coage um valor monetário vindo como número ou string para
// float64. Valor não interpretável vale 0.
func ParseValor(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint:
		return float64(t)
	case string:
		s := strings.TrimSpace(t)
		// aceita vírgula decimal ("1234,50")
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// Resumir calcula o resumo de valores dos itens. A soma aprovada considera
// somente itens com status approved; a diferença percentual é 0 quando o
// total proposto é 0.
func Resumir(itens []models.ItemNegociacao) Resumo {
	r := Resumo{TotalItens: len(itens)}
	for _, it := range itens {
		r.TotalProposto += it.ValorProposto
		switch it.Status {
		case models.ItemApproved:
			r.ItensAprovados++
			if it.ValorAprovado != nil {
				r.TotalAprovado += *it.ValorAprovado
			}
		case models.ItemPending:
			r.ItensPendentes++
		case models.ItemRejected:
			r.ItensRejeitados++
		case models.ItemCounterOffered:
			r.ItensContrapropostos++
		}
	}
	if r.TotalProposto != 0 {
		r.DiferencaPercentual = (r.TotalAprovado - r.TotalProposto) / r.TotalProposto * 100
	}
	return r
}

// FormatarMoeda formata um valor em reais com vírgula decimal:
// 1234.5 -> "R$ 1234,50".
func FormatarMoeda(v float64) string {
	return strings.Replace(fmt.Sprintf("R$ %.2f", v), ".", ",", 1)
}
