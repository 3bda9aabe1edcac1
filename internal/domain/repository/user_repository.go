package repository

import "github.com/in100tiva/PDV/internal/domain/entity"

// UserRepository define o porto de persistência para usuários (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
}
