package store

import (
	"github.com/rigalabs/invoice-manager/internal/model"
)

// UserByName fetches a user account by username.
func (s *Store) UserByName(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// CreateUser inserts a new operator account.
func (s *Store) CreateUser(user *model.User) error {
	return s.db.Create(user).Error
}

// UpdateUser saves the username and, when set, a new password hash.
func (s *Store) UpdateUser(currentUsername, newUsername, newPasswordHash string) (*model.User, error) {
	user, err := s.UserByName(currentUsername)
	if err != nil {
		return nil, err
	}
	user.Username = newUsername
	if newPasswordHash != "" {
		user.PasswordHash = newPasswordHash
	}
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
