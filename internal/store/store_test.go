package store_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/settings"
	"github.com/rigalabs/invoice-manager/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return s
}

func seedClient(t *testing.T, s *store.Store, name string) *model.Client {
	t.Helper()
	client := &model.Client{
		Name:         name,
		RegNumber:    "40001234567",
		VATNumber:    "LV40001234567",
		LegalAddress: "Brīvības iela 1",
		PostalCode:   "LV-1010",
	}
	require.NoError(t, s.CreateClient(client))
	return client
}

func newInvoice(clientID uint) *model.Invoice {
	return &model.Invoice{
		ClientID: clientID,
		Date:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		DueDate:  time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
		Items: []model.LineItem{
			{
				Description: "Consulting",
				Unit:        "gab.",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromInt(10),
				VATRate:     decimal.NewFromInt(21),
			},
		},
	}
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	s := newTestStore(t)
	client := seedClient(t, s, "Alpha")

	first := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(first, "NC"))
	assert.Equal(t, "NC-000001", first.InvoiceNumber)
	assert.Equal(t, model.StatusSent, first.Status)

	second := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(second, "NC"))
	assert.Equal(t, "NC-000002", second.InvoiceNumber)
}

func TestCreateInvoice_PrefixesIndependent(t *testing.T) {
	s := newTestStore(t)
	client := seedClient(t, s, "Alpha")

	nc := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(nc, "NC"))
	assert.Equal(t, "NC-000001", nc.InvoiceNumber)

	// A different prefix starts its own sequence.
	x := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(x, "X"))
	assert.Equal(t, "X-000001", x.InvoiceNumber)
}

func TestCreateInvoice_MalformedLastNumberRestarts(t *testing.T) {
	s := newTestStore(t)
	client := seedClient(t, s, "Alpha")

	first := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(first, "NC"))
	require.Equal(t, "NC-000001", first.InvoiceNumber)

	// A hand-edited number breaks the sequence; the allocator restarts
	// at 1 and collides with the existing NC-000001.
	broken := newInvoice(client.ID)
	broken.InvoiceNumber = "NC-abc"
	require.NoError(t, s.DB().Create(broken).Error)

	next := newInvoice(client.ID)
	err := s.CreateInvoice(next, "NC")
	require.Error(t, err)

	var dup *model.DuplicateNumberError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "NC-000001", dup.Number)
}

func TestInvoice_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Invoice(9999)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestInvoices_FilterAndPaginate(t *testing.T) {
	s := newTestStore(t)
	alpha := seedClient(t, s, "Alpha")
	beta := seedClient(t, s, "Beta")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateInvoice(newInvoice(alpha.ID), "NC"))
	}
	paid := newInvoice(beta.ID)
	require.NoError(t, s.CreateInvoice(paid, "NC"))
	paid.Status = model.StatusPaid
	require.NoError(t, s.UpdateInvoice(paid, nil))

	page, err := s.Invoices(1, 2, store.InvoiceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pages)
	// Newest first.
	assert.Equal(t, "NC-000004", page.Items[0].InvoiceNumber)
	require.NotNil(t, page.Items[0].Client)
	assert.Equal(t, "Beta", page.Items[0].Client.Name)
	assert.Len(t, page.Items[0].Items, 1)

	byStatus, err := s.Invoices(1, 10, store.InvoiceFilter{Status: model.StatusPaid})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byStatus.Total)

	bySearch, err := s.Invoices(1, 10, store.InvoiceFilter{Search: "Beta"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, bySearch.Total)

	byNumber, err := s.Invoices(1, 10, store.InvoiceFilter{Search: "NC-000002"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, byNumber.Total)
}

func TestUpdateInvoice_ReplacesItems(t *testing.T) {
	s := newTestStore(t)
	client := seedClient(t, s, "Alpha")

	inv := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(inv, "NC"))

	replacement := []model.LineItem{
		{
			Description: "Hosting",
			Unit:        "gab.",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.NewFromInt(5),
			VATRate:     decimal.Zero,
		},
		{
			Description: "Support",
			Unit:        "gab.",
			Quantity:    decimal.NewFromInt(3),
			UnitPrice:   decimal.NewFromInt(20),
			VATRate:     decimal.NewFromInt(21),
		},
	}
	inv.Status = model.StatusPaid
	require.NoError(t, s.UpdateInvoice(inv, replacement))

	got, err := s.Invoice(inv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Hosting", got.Items[0].Description)
	// The number never changes on update.
	assert.Equal(t, inv.InvoiceNumber, got.InvoiceNumber)
}

func TestDeleteInvoice_RemovesLineItems(t *testing.T) {
	s := newTestStore(t)
	client := seedClient(t, s, "Alpha")

	inv := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(inv, "NC"))
	require.NoError(t, s.DeleteInvoice(inv.ID))

	_, err := s.Invoice(inv.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	var orphans int64
	require.NoError(t, s.DB().Model(&model.LineItem{}).Where("invoice_id = ?", inv.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	assert.ErrorIs(t, s.DeleteInvoice(inv.ID), model.ErrNotFound)
}

func TestDeleteInvoices_SkipsMissing(t *testing.T) {
	s := newTestStore(t)
	client := seedClient(t, s, "Alpha")

	inv := newInvoice(client.ID)
	require.NoError(t, s.CreateInvoice(inv, "NC"))

	deleted, err := s.DeleteInvoices([]uint{inv.ID, 9999})
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)
}

func TestClients_SearchOrderedByName(t *testing.T) {
	s := newTestStore(t)
	seedClient(t, s, "Zeta")
	seedClient(t, s, "Alpha")
	seedClient(t, s, "Alphabet")

	page, err := s.Clients(1, 10, "Alpha")
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, "Alpha", page.Items[0].Name)
	assert.Equal(t, "Alphabet", page.Items[1].Name)
}

func TestServiceCRUD(t *testing.T) {
	s := newTestStore(t)

	svc := &model.Service{
		Name:         "Monthly maintenance",
		Unit:         "gab.",
		DefaultPrice: decimal.NewFromInt(100),
		VATRate:      decimal.NewFromInt(21),
	}
	require.NoError(t, s.CreateService(svc))

	got, err := s.Service(svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monthly maintenance", got.Name)

	got.Name = "Maintenance"
	require.NoError(t, s.UpdateService(got))

	require.NoError(t, s.DeleteService(svc.ID))
	_, err = s.Service(svc.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSettings_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	// Empty table yields the defaults.
	cfg, err := s.Settings()
	require.NoError(t, err)
	assert.True(t, cfg.VATEnabled)
	assert.Equal(t, settings.DefaultPrefix, cfg.Prefix())

	err = s.UpdateSettings(map[string]string{
		"company_name":   "SIA Darbnīca",
		"vat_enabled":    "false",
		"invoice_prefix": "RX",
		"not_a_real_key": "ignored",
	})
	require.NoError(t, err)

	cfg, err = s.Settings()
	require.NoError(t, err)
	assert.Equal(t, "SIA Darbnīca", cfg.CompanyName)
	assert.False(t, cfg.VATEnabled)
	assert.Equal(t, "RX", cfg.Prefix())

	// Unknown keys are dropped, not stored.
	var count int64
	require.NoError(t, s.DB().Model(&model.Setting{}).Where("key = ?", "not_a_real_key").Count(&count).Error)
	assert.Zero(t, count)

	// Upsert overwrites in place.
	require.NoError(t, s.SetSetting("company_name", "SIA Cits"))
	cfg, err = s.Settings()
	require.NoError(t, err)
	assert.Equal(t, "SIA Cits", cfg.CompanyName)
}

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateUser(&model.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "hash1",
	}))

	user, err := s.UserByName("admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = s.UserByName("ghost")
	assert.ErrorIs(t, err, model.ErrNotFound)

	updated, err := s.UpdateUser("admin", "root", "hash2")
	require.NoError(t, err)
	assert.Equal(t, "root", updated.Username)
	assert.Equal(t, "hash2", updated.PasswordHash)

	_, err = s.UserByName("admin")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	client := seedClient(t, s, "Alpha")
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	unpaid := newInvoice(client.ID) // 2 x 10 @ 21% = 24.20 gross
	unpaid.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateInvoice(unpaid, "NC"))

	paid := newInvoice(client.ID)
	paid.Date = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateInvoice(paid, "NC"))
	paid.Status = model.StatusPaid
	require.NoError(t, s.UpdateInvoice(paid, nil))

	stats, err := s.Stats(now)
	require.NoError(t, err)

	assert.InDelta(t, 24.20, stats.UnpaidTotal, 0.001)
	assert.InDelta(t, 24.20, stats.MonthlyTurnover, 0.001)

	require.Len(t, stats.MonthlyData, 6)
	assert.Equal(t, "Oct 2025", stats.MonthlyData[0].Label)
	assert.Equal(t, "Mar 2026", stats.MonthlyData[5].Label)
	assert.InDelta(t, 24.20, stats.MonthlyData[4].Total, 0.001) // February, the paid one
	assert.InDelta(t, 24.20, stats.MonthlyData[5].Total, 0.001)
}
