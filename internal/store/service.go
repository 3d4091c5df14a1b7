package store

import (
	"github.com/rigalabs/invoice-manager/internal/model"
)

// Services lists catalog entries with pagination and optional name
// search, ordered by name.
func (s *Store) Services(page, size int, search string) (*Page[model.Service], error) {
	query := s.db.Model(&model.Service{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.Service
	err := query.Order("name").
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page[model.Service]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pageCount(total, size),
	}, nil
}

// Service fetches one catalog entry by id.
func (s *Store) Service(id uint) (*model.Service, error) {
	var svc model.Service
	if err := s.db.First(&svc, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

// CreateService inserts a new catalog entry.
func (s *Store) CreateService(svc *model.Service) error {
	return s.db.Create(svc).Error
}

// UpdateService saves all fields of an existing catalog entry.
func (s *Store) UpdateService(svc *model.Service) error {
	return s.db.Save(svc).Error
}

// DeleteService removes a catalog entry.
func (s *Store) DeleteService(id uint) error {
	res := s.db.Delete(&model.Service{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
