package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rigalabs/invoice-manager/internal/model"
)

func item(qty, price, rate string) model.LineItem {
	return model.LineItem{
		Description: "Service",
		Unit:        "gab.",
		Quantity:    mustDec(qty),
		UnitPrice:   mustDec(price),
		VATRate:     mustDec(rate),
	}
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineItem_Derived(t *testing.T) {
	li := item("2", "10", "21")

	assert.Equal(t, "20.00", li.Total().StringFixed(2))
	assert.Equal(t, "4.20", li.VATAmount().StringFixed(2))
	assert.Equal(t, "24.20", li.TotalWithVAT().StringFixed(2))
}

func TestLineItem_TotalWithVATIdentity(t *testing.T) {
	items := []model.LineItem{
		item("2", "10", "21"),
		item("1.5", "33.33", "21"),
		item("3", "0.99", "0"),
	}
	for _, li := range items {
		want := li.Total().Add(li.VATAmount())
		assert.True(t, li.TotalWithVAT().Equal(want),
			"total_with_vat %s != total+vat %s", li.TotalWithVAT(), want)
	}
}

func TestInvoice_Totals(t *testing.T) {
	inv := model.Invoice{
		InvoiceNumber: "NC-000001",
		Date:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Items: []model.LineItem{
			item("2", "10", "21"),
			item("1", "5", "0"),
		},
	}

	assert.Equal(t, "25.00", inv.Subtotal().StringFixed(2))
	assert.Equal(t, "4.20", inv.VATAmount().StringFixed(2))
	assert.Equal(t, "29.20", inv.GrandTotal().StringFixed(2))
}

func TestInvoice_GrandTotalIdentity(t *testing.T) {
	tests := []struct {
		name  string
		items []model.LineItem
	}{
		{"empty invoice", nil},
		{"single line", []model.LineItem{item("1", "100", "21")}},
		{"mixed rates", []model.LineItem{
			item("8", "120", "21"),
			item("2", "100", "21"),
			item("1", "500", "0"),
		}},
		{"fractional amounts", []model.LineItem{
			item("0.5", "33.33", "21"),
			item("2.25", "9.99", "21"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := model.Invoice{Items: tt.items}
			want := inv.Subtotal().Add(inv.VATAmount())
			assert.True(t, inv.GrandTotal().Equal(want),
				"grand_total %s != subtotal+vat %s", inv.GrandTotal(), want)
		})
	}
}

func TestInvoice_PerLineRounding(t *testing.T) {
	// Three lines of 0.333: each rounds to 0.33 before summing, so
	// the subtotal is 0.99, not round(0.999) = 1.00.
	inv := model.Invoice{
		Items: []model.LineItem{
			item("1", "0.333", "0"),
			item("1", "0.333", "0"),
			item("1", "0.333", "0"),
		},
	}
	assert.Equal(t, "0.99", inv.Subtotal().StringFixed(2))
}
