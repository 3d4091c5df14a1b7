package einvoice

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/money"
	"github.com/rigalabs/invoice-manager/internal/numbering"
	"github.com/rigalabs/invoice-manager/internal/settings"
)

// dateLayout is the EN 16931 date format.
const dateLayout = "2006-01-02"

// fallbackItemName is emitted when a line has no description.
const fallbackItemName = "Service"

// Supplier address fields not captured in settings; the issuer is a
// fixed-jurisdiction operator.
const (
	supplierCity = "Riga"
	countryCode  = "LV"
)

// Build assembles the UBL document tree for one invoice. The invoice
// and client are mandatory structural inputs; everything else degrades
// to defined fallbacks. Missing VAT or registration numbers omit the
// corresponding tax-scheme block instead of failing.
//
// The document ID is derived from the invoice's database id, not the
// human-facing invoice number.
func Build(inv *model.Invoice, client *model.Client, cfg settings.Settings) (*Document, error) {
	if inv == nil {
		return nil, model.NewBuildError("invoice", "invoice is required")
	}
	if client == nil {
		return nil, model.NewBuildError("client", "client is required")
	}

	doc := &Document{
		Xmlns:    NamespaceInvoice,
		XmlnsCAC: NamespaceCAC,
		XmlnsCBC: NamespaceCBC,

		CustomizationID: CustomizationID,
		ProfileID:       ProfileID,
		ID:              numbering.Format(cfg.Prefix(), int(inv.ID)),
		IssueDate:       inv.Date.Format(dateLayout),
		DueDate:         inv.DueDate.Format(dateLayout),
		InvoiceTypeCode: InvoiceTypeCode,
		CurrencyCode:    CurrencyEUR,
	}

	doc.SupplierParty.Party = buildSupplier(cfg)
	doc.CustomerParty.Party = buildCustomer(client)
	doc.PaymentMeans = buildPaymentMeans(cfg)

	buildAmounts(doc, inv, cfg)

	return doc, nil
}

func buildSupplier(cfg settings.Settings) Party {
	p := Party{
		EndpointID: endpointID(cfg.VATNumber, cfg.RegNumber),
		Name:       cfg.CompanyName,
		LegalEntity: LegalEntity{
			RegistrationName: cfg.CompanyName,
			CompanyID:        cfg.RegNumber,
		},
	}
	p.Address.StreetName = cfg.LegalAddress
	p.Address.CityName = supplierCity
	p.Address.Country.IdentificationCode = countryCode

	// Supplier tax scheme is gated on the global VAT flag.
	if cfg.VATEnabled && cfg.VATNumber != "" {
		p.TaxScheme = &PartyTaxScheme{
			CompanyID: cfg.VATNumber,
			TaxScheme: TaxScheme{ID: "VAT"},
		}
	}
	return p
}

func buildCustomer(client *model.Client) Party {
	p := Party{
		EndpointID: endpointID(client.VATNumber, client.RegNumber),
		Name:       client.Name,
		LegalEntity: LegalEntity{
			RegistrationName: client.Name,
			CompanyID:        client.RegNumber,
		},
	}
	p.Address.StreetName = client.LegalAddress
	p.Address.PostalZone = client.PostalCode
	p.Address.Country.IdentificationCode = countryCode

	// The customer tax scheme depends only on the client's own VAT
	// registration, not on the issuer's VAT flag.
	if client.VATNumber != "" {
		p.TaxScheme = &PartyTaxScheme{
			CompanyID: client.VATNumber,
			TaxScheme: TaxScheme{ID: "VAT"},
		}
	}
	return p
}

func buildPaymentMeans(cfg settings.Settings) PaymentMeans {
	pm := PaymentMeans{Code: PaymentMeansCreditTransfer}
	pm.Account.ID = cfg.Bank1Account
	pm.Account.Branch.ID = cfg.Bank1SWIFT
	return pm
}

// taxBucket accumulates the taxable base and tax amount for one rate.
type taxBucket struct {
	rate   decimal.Decimal
	base   decimal.Decimal
	amount decimal.Decimal
}

// buildAmounts computes the per-line amounts, the rate-keyed tax
// subtotals, the tax total, the legal monetary totals, and the invoice
// lines. With VAT globally disabled every line is treated as 0%.
func buildAmounts(doc *Document, inv *model.Invoice, cfg settings.Settings) {
	lineExtension := money.Zero
	taxExclusive := money.Zero
	taxInclusive := money.Zero

	var bucketOrder []string
	buckets := make(map[string]*taxBucket)

	for i := range inv.Items {
		item := &inv.Items[i]

		rate := item.VATRate
		if !cfg.VATEnabled {
			rate = money.Zero
		}

		excl := money.LineTotal(item.Quantity, item.UnitPrice)
		vat := money.LineVAT(excl, rate)
		incl := money.LineTotalWithVAT(excl, vat)

		lineExtension = lineExtension.Add(excl)
		taxExclusive = taxExclusive.Add(excl)
		taxInclusive = taxInclusive.Add(incl)

		key := rate.StringFixed(2)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &taxBucket{rate: rate, base: money.Zero, amount: money.Zero}
			buckets[key] = bucket
			bucketOrder = append(bucketOrder, key)
		}
		bucket.base = bucket.base.Add(excl)
		bucket.amount = bucket.amount.Add(vat)

		name := item.Description
		if name == "" {
			name = fallbackItemName
		}

		doc.Lines = append(doc.Lines, InvoiceLine{
			ID:                  strconv.Itoa(i + 1),
			InvoicedQuantity:    Quantity{UnitCode: UnitCodeEach, Value: item.Quantity.StringFixed(2)},
			LineExtensionAmount: eur(excl),
			Item: Item{
				Name:        name,
				TaxCategory: taxCategory(rate),
			},
			Price: Price{PriceAmount: eur(item.UnitPrice.Round(2))},
		})
	}

	payable := taxInclusive

	doc.TaxTotal.TaxAmount = eur(taxInclusive.Sub(taxExclusive))
	for _, key := range bucketOrder {
		bucket := buckets[key]
		doc.TaxTotal.TaxSubtotal = append(doc.TaxTotal.TaxSubtotal, TaxSubtotal{
			TaxableAmount: eur(bucket.base),
			TaxAmount:     eur(bucket.amount),
			TaxCategory:   taxCategory(bucket.rate),
		})
	}

	doc.LegalMonetaryTotal = MonetaryTotal{
		LineExtensionAmount: eur(lineExtension),
		TaxExclusiveAmount:  eur(taxExclusive),
		TaxInclusiveAmount:  eur(taxInclusive),
		PayableAmount:       eur(payable),
	}
}

func endpointID(vatNumber, regNumber string) EndpointID {
	switch {
	case vatNumber != "":
		return EndpointID{SchemeID: EndpointSchemeVAT, Value: vatNumber}
	case regNumber != "":
		return EndpointID{SchemeID: EndpointSchemeRegistry, Value: regNumber}
	default:
		return EndpointID{SchemeID: EndpointSchemeRegistry, Value: EndpointUnknown}
	}
}

func taxCategory(rate decimal.Decimal) TaxCategory {
	id := TaxCategoryExempt
	if rate.GreaterThan(money.Zero) {
		id = TaxCategoryStandard
	}
	return TaxCategory{
		ID:        id,
		Percent:   rate.StringFixed(2),
		TaxScheme: TaxScheme{ID: "VAT"},
	}
}

func eur(d decimal.Decimal) Amount {
	return Amount{CurrencyID: CurrencyEUR, Value: money.Format(d)}
}
