package contrato

import (
	"errors"

	"github.com/ConectaSaude/api-rede/internal/erros"
	"github.com/ConectaSaude/api-rede/internal/models"
	"github.com/ConectaSaude/api-rede/internal/valores"
	"gorm.io/gorm"
)

type Repository interface {
	GerarParaNegociacao(db *gorm.DB, n *models.Negociacao, atorID uint) (*Contrato, error)
	ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Contrato, error)
	BuscarPorID(db *gorm.DB, id uint) (*Contrato, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// GerarParaNegociacao cria o contrato do ciclo atual. O valor do contrato é
// a soma aprovada dos itens (ou a proposta, quando a alçada interna aprovou
// antes de qualquer resposta externa).
func (r *repositoryImpl) GerarParaNegociacao(db *gorm.DB, n *models.Negociacao, atorID uint) (*Contrato, error) {
	var existente Contrato
	err := db.Where("negociacao_id = ? AND ciclo = ?", n.ID, n.CicloNegociacao).First(&existente).Error
	if err == nil {
		return nil, errors.New(erros.MsgContratoJaGerado)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resumo := valores.Resumir(n.Itens)
	valor := resumo.TotalAprovado
	if resumo.ItensAprovados == 0 {
		valor = resumo.TotalProposto
	}

	c := &Contrato{
		NegociacaoID:   n.ID,
		Ciclo:          n.CicloNegociacao,
		TipoNegociavel: n.TipoNegociavel,
		NegociavelID:   n.NegociavelID,
		Valor:          valor,
		ValorFormatado: valores.FormatarMoeda(valor),
		Status:         StatusAtivo,
		GeradoPorID:    atorID,
	}
	if err := db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *repositoryImpl) ListarPorNegociacao(db *gorm.DB, negociacaoID uint) ([]Contrato, error) {
	var list []Contrato
	err := db.Where("negociacao_id = ?", negociacaoID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Contrato, error) {
	var c Contrato
	err := db.First(&c, id).Error
	return &c, err
}
