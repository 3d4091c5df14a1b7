package store

import (
	"github.com/rigalabs/invoice-manager/internal/model"
)

// Clients lists clients with pagination and optional name/reg-number
// search, ordered by name.
func (s *Store) Clients(page, size int, search string) (*Page[model.Client], error) {
	query := s.db.Model(&model.Client{})
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("name LIKE ? OR reg_number LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.Client
	err := query.Order("name").
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page[model.Client]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pageCount(total, size),
	}, nil
}

// Client fetches one client by id.
func (s *Store) Client(id uint) (*model.Client, error) {
	var client model.Client
	if err := s.db.First(&client, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

// CreateClient inserts a new client.
func (s *Store) CreateClient(client *model.Client) error {
	return s.db.Create(client).Error
}

// UpdateClient saves all fields of an existing client.
func (s *Store) UpdateClient(client *model.Client) error {
	return s.db.Save(client).Error
}

// DeleteClient removes a client. Deleting a client that still has
// invoices fails on the foreign key constraint.
func (s *Store) DeleteClient(id uint) error {
	res := s.db.Delete(&model.Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
