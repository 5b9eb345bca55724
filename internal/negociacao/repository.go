package negociacao

import (
	"github.com/ConectaSaude/api-rede/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, n *models.Negociacao) error
	BuscarPorID(db *gorm.DB, id uint) (*models.Negociacao, error)
	ListarTodas(db *gorm.DB) ([]models.Negociacao, error)
	ListarPorCriador(db *gorm.DB, criadorID uint) ([]models.Negociacao, error)
	ListarPorEntidade(db *gorm.DB, tipo string, id uint) ([]models.Negociacao, error)
	Atualizar(db *gorm.DB, n *models.Negociacao) error
	BuscarItemPorID(db *gorm.DB, id uint) (*models.ItemNegociacao, error)
	AtualizarItem(db *gorm.DB, item *models.ItemNegociacao) error
	RemoverItens(db *gorm.DB, ids []uint) error
	SalvarForks(db *gorm.DB, forks []models.Negociacao) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, n *models.Negociacao) error {
	return db.Create(n).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*models.Negociacao, error) {
	var n models.Negociacao
	err := db.
		Preload("Itens").
		Preload("Historico").
		First(&n, id).Error
	return &n, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]models.Negociacao, error) {
	var list []models.Negociacao
	err := db.Preload("Itens").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorCriador(db *gorm.DB, criadorID uint) ([]models.Negociacao, error) {
	var list []models.Negociacao
	err := db.
		Where("criador_id = ?", criadorID).
		Preload("Itens").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorEntidade(db *gorm.DB, tipo string, id uint) ([]models.Negociacao, error) {
	var list []models.Negociacao
	err := db.
		Where("tipo_negociavel = ? AND negociavel_id = ?", tipo, id).
		Preload("Itens").
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, n *models.Negociacao) error {
	return db.Session(&gorm.Session{FullSaveAssociations: true}).Save(n).Error
}

func (r *repositoryImpl) BuscarItemPorID(db *gorm.DB, id uint) (*models.ItemNegociacao, error) {
	var item models.ItemNegociacao
	err := db.First(&item, id).Error
	return &item, err
}

func (r *repositoryImpl) AtualizarItem(db *gorm.DB, item *models.ItemNegociacao) error {
	return db.Save(item).Error
}

func (r *repositoryImpl) RemoverItens(db *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Delete(&models.ItemNegociacao{}, ids).Error
}

func (r *repositoryImpl) SalvarForks(db *gorm.DB, forks []models.Negociacao) error {
	return db.Create(&forks).Error
}
