package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/settings"
)

// Settings loads all settings rows as a typed struct. Missing rows
// keep their defaults.
func (s *Store) Settings() (settings.Settings, error) {
	var rows []model.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return settings.Default(), err
	}
	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return settings.FromMap(values), nil
}

// UpdateSettings upserts the given key-value pairs. Unknown keys are
// rejected silently by writing only recognized ones.
func (s *Store) UpdateSettings(values map[string]string) error {
	known := make(map[string]struct{}, len(settings.Keys))
	for _, k := range settings.Keys {
		known[k] = struct{}{}
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if _, ok := known[key]; !ok {
				continue
			}
			row := model.Setting{Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SetSetting writes a single settings value.
func (s *Store) SetSetting(key, value string) error {
	return s.UpdateSettings(map[string]string{key: value})
}
