package entidade

import (
	"gorm.io/gorm"
)

type Repository interface {
	SalvarOperadora(db *gorm.DB, o *Operadora) error
	ListarOperadoras(db *gorm.DB) ([]Operadora, error)
	BuscarOperadora(db *gorm.DB, id uint) (*Operadora, error)

	SalvarProfissional(db *gorm.DB, p *Profissional) error
	ListarProfissionais(db *gorm.DB) ([]Profissional, error)
	BuscarProfissional(db *gorm.DB, id uint) (*Profissional, error)

	SalvarClinica(db *gorm.DB, c *Clinica) error
	ListarClinicas(db *gorm.DB) ([]Clinica, error)
	BuscarClinica(db *gorm.DB, id uint) (*Clinica, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) SalvarOperadora(db *gorm.DB, o *Operadora) error {
	return db.Create(o).Error
}

func (r *repositoryImpl) ListarOperadoras(db *gorm.DB) ([]Operadora, error) {
	var list []Operadora
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarOperadora(db *gorm.DB, id uint) (*Operadora, error) {
	var o Operadora
	err := db.First(&o, id).Error
	return &o, err
}

func (r *repositoryImpl) SalvarProfissional(db *gorm.DB, p *Profissional) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) ListarProfissionais(db *gorm.DB) ([]Profissional, error) {
	var list []Profissional
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarProfissional(db *gorm.DB, id uint) (*Profissional, error) {
	var p Profissional
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) SalvarClinica(db *gorm.DB, c *Clinica) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) ListarClinicas(db *gorm.DB) ([]Clinica, error) {
	var list []Clinica
	err := db.Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarClinica(db *gorm.DB, id uint) (*Clinica, error) {
	var c Clinica
	err := db.First(&c, id).Error
	return &c, err
}
