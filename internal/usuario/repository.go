package usuario

import (
	"github.com/ConectaSaude/api-rede/internal/papel"
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	Atualizar(db *gorm.DB, u *Usuario) error
	Deletar(db *gorm.DB, id uint) error
	AtribuirPapeis(db *gorm.DB, u *Usuario, nomes []string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var list []Usuario
	err := db.Preload("Papeis").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Papeis").First(&u, id).Error
	return &u, err
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Papeis").Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Usuario{}, id).Error
}

// AtribuirPapeis substitui os papéis do usuário pelos papéis nomeados.
func (r *repositoryImpl) AtribuirPapeis(db *gorm.DB, u *Usuario, nomes []string) error {
	var papeis []papel.Papel
	if len(nomes) > 0 {
		if err := db.Where("nome IN ?", nomes).Find(&papeis).Error; err != nil {
			return err
		}
	}
	return db.Model(u).Association("Papeis").Replace(papeis)
}
