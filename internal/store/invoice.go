package store

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/numbering"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Search   string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// Invoices lists invoices with their client and items preloaded,
// newest first.
func (s *Store) Invoices(page, size int, filter InvoiceFilter) (*Page[model.Invoice], error) {
	query := s.db.Model(&model.Invoice{}).
		Preload("Client").
		Preload("Items")

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN clients ON clients.id = invoices.client_id").
			Where("invoices.invoice_number LIKE ? OR clients.name LIKE ?", term, term)
	}
	if filter.Status != "" {
		query = query.Where("invoices.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("invoices.date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("invoices.date <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.Invoice
	err := query.Order("invoices.id DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page[model.Invoice]{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pageCount(total, size),
	}, nil
}

// Invoice fetches one invoice with client and items.
func (s *Store) Invoice(id uint) (*model.Invoice, error) {
	var inv model.Invoice
	err := s.db.Preload("Client").Preload("Items").First(&inv, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &inv, nil
}

// lastNumber returns the invoice number of the most recently inserted
// invoice matching "{prefix}-%". Ties break on highest id.
func lastNumber(tx *gorm.DB, prefix string) (string, bool, error) {
	var inv model.Invoice
	err := tx.Where("invoice_number LIKE ?", prefix+"-%").
		Order("id DESC").
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return inv.InvoiceNumber, true, nil
}

// CreateInvoice allocates the next invoice number and inserts the
// invoice with its line items in one transaction. A racing creation
// surfaces as a DuplicateNumberError from the unique index; the caller
// retries, the store does not.
func (s *Store) CreateInvoice(inv *model.Invoice, prefix string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := numbering.Next(prefix, func(p string) (string, bool, error) {
			return lastNumber(tx, p)
		})
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number
		if inv.Status == "" {
			inv.Status = model.StatusSent
		}
		return tx.Create(inv).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return model.NewDuplicateNumberError(inv.InvoiceNumber, err)
		}
		return err
	}
	return nil
}

// UpdateInvoice saves invoice fields; a non-nil items slice replaces
// all line items. The invoice number is immutable.
func (s *Store) UpdateInvoice(inv *model.Invoice, items []model.LineItem) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Invoice{ID: inv.ID}).Updates(map[string]interface{}{
			"client_id":   inv.ClientID,
			"date":        inv.Date,
			"due_date":    inv.DueDate,
			"issuer_name": inv.IssuerName,
			"notes":       inv.Notes,
			"status":      inv.Status,
		}).Error
		if err != nil {
			return err
		}
		if items != nil {
			if err := tx.Where("invoice_id = ?", inv.ID).Delete(&model.LineItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].InvoiceID = inv.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DeleteInvoice removes an invoice and, via cascade, its line items.
func (s *Store) DeleteInvoice(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&model.LineItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Invoice{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrNotFound
		}
		return nil
	})
}

// DeleteInvoices removes many invoices, returning the count deleted.
func (s *Store) DeleteInvoices(ids []uint) (int, error) {
	deleted := 0
	for _, id := range ids {
		err := s.DeleteInvoice(id)
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// MonthTotal is one month of turnover for the dashboard.
type MonthTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// Stats holds the dashboard aggregates.
type Stats struct {
	UnpaidTotal     float64      `json:"unpaid_total"`
	MonthlyTurnover float64      `json:"monthly_turnover"`
	MonthlyData     []MonthTotal `json:"monthly_data"`
}

// grandTotalExpr derives a line's VAT-inclusive total in SQL, matching
// the per-line computation of the model.
const grandTotalExpr = "line_items.quantity * line_items.unit_price * (1 + line_items.vat_rate / 100.0)"

// Stats computes dashboard aggregates with SQL sums.
func (s *Store) Stats(now time.Time) (*Stats, error) {
	stats := &Stats{}

	err := s.db.Model(&model.LineItem{}).
		Select("COALESCE(SUM("+grandTotalExpr+"), 0)").
		Joins("JOIN invoices ON invoices.id = line_items.invoice_id").
		Where("invoices.status <> ?", model.StatusPaid).
		Scan(&stats.UnpaidTotal).Error
	if err != nil {
		return nil, err
	}
	stats.UnpaidTotal = round2(stats.UnpaidTotal)

	monthly, err := s.monthTotal(now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}
	stats.MonthlyTurnover = monthly

	for i := 5; i >= 0; i-- {
		month := int(now.Month()) - i
		year := now.Year()
		if month <= 0 {
			month += 12
			year--
		}
		total, err := s.monthTotal(year, month)
		if err != nil {
			return nil, err
		}
		stats.MonthlyData = append(stats.MonthlyData, MonthTotal{
			Label: fmt.Sprintf("%s %d", time.Month(month).String()[:3], year),
			Total: total,
		})
	}

	return stats, nil
}

func (s *Store) monthTotal(year, month int) (float64, error) {
	var total float64
	err := s.db.Model(&model.LineItem{}).
		Select("COALESCE(SUM("+grandTotalExpr+"), 0)").
		Joins("JOIN invoices ON invoices.id = line_items.invoice_id").
		Where("strftime('%Y', invoices.date) = ? AND strftime('%m', invoices.date) = ?",
			fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return round2(total), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
