package repositories

import "github.com/Manzzzx/cafe-pos/internal/models"

// UserRepository defines the interface for staff user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
