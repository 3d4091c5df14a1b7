package server

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rigalabs/invoice-manager/internal/einvoice"
	"github.com/rigalabs/invoice-manager/internal/gateway"
	"github.com/rigalabs/invoice-manager/internal/gdrive"
	"github.com/rigalabs/invoice-manager/internal/mailer"
	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/money"
	"github.com/rigalabs/invoice-manager/internal/pdf"
	"github.com/rigalabs/invoice-manager/internal/store"
)

// createRetries bounds retrying on invoice-number races. The allocator
// does not lock; a concurrent creation loses to the unique index and
// is retried here.
const createRetries = 3

func (s *Server) handleListInvoices(c *gin.Context) {
	page, size := pagination(c)

	filter := store.InvoiceFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(apiDateLayout, v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(apiDateLayout, v); err == nil {
			filter.DateTo = &t
		}
	}

	result, err := s.store.Invoices(page, size, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list invoices", Details: err.Error()})
		return
	}

	items := make([]invoiceJSON, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toInvoiceJSON(&result.Items[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": result.Total,
		"page":  result.Page,
		"size":  result.Size,
		"pages": result.Pages,
	})
}

func (s *Server) handleGetInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	inv, err := s.store.Invoice(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, toInvoiceJSON(inv))
}

func itemsFromRequest(items []LineItemRequest) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for _, it := range items {
		unit := it.Unit
		if unit == "" {
			unit = "gab."
		}
		out = append(out, model.LineItem{
			Description: it.Description,
			Unit:        unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			VATRate:     it.VATRate,
		})
	}
	return out
}

func (s *Server) handleCreateInvoice(c *gin.Context) {
	var req InvoiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	date, err := time.Parse(apiDateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date", Details: err.Error()})
		return
	}
	dueDate, err := time.Parse(apiDateLayout, req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid due_date", Details: err.Error()})
		return
	}
	if _, err := s.store.Client(req.ClientID); err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "client not found"})
		return
	}

	cfg, err := s.store.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load settings", Details: err.Error()})
		return
	}

	var inv *model.Invoice
	for attempt := 0; attempt < createRetries; attempt++ {
		candidate := &model.Invoice{
			ClientID:   req.ClientID,
			Date:       date,
			DueDate:    dueDate,
			IssuerName: req.IssuerName,
			Notes:      req.Notes,
			Items:      itemsFromRequest(req.Items),
		}
		err = s.store.CreateInvoice(candidate, cfg.Prefix())
		if err == nil {
			inv = candidate
			break
		}
		var dup *model.DuplicateNumberError
		if !errors.As(err, &dup) {
			break
		}
		log.Warn().Str("number", dup.Number).Int("attempt", attempt+1).Msg("invoice number race, retrying")
	}
	if inv == nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "could not create invoice", Details: err.Error()})
		return
	}

	created, err := s.store.Invoice(inv.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load created invoice", Details: err.Error()})
		return
	}

	if cfg.GDriveEnabled && gdrive.Configured(cfg) {
		go func() {
			data, err := pdf.Render(created, created.Client, cfg)
			if err != nil {
				log.Warn().Err(err).Str("invoice", created.InvoiceNumber).Msg("drive sync render failed")
				return
			}
			filename := fmt.Sprintf("%s.pdf", created.InvoiceNumber)
			if err := gdrive.Upload(context.Background(), cfg, data, filename); err != nil {
				log.Warn().Err(err).Str("invoice", created.InvoiceNumber).Msg("drive upload failed")
			}
		}()
	}

	c.JSON(http.StatusCreated, toInvoiceJSON(created))
}

func (s *Server) handleUpdateInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req InvoiceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	inv, err := s.store.Invoice(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invoice not found"})
		return
	}

	if req.ClientID != nil {
		inv.ClientID = *req.ClientID
	}
	if req.Date != nil {
		if t, err := time.Parse(apiDateLayout, *req.Date); err == nil {
			inv.Date = t
		}
	}
	if req.DueDate != nil {
		if t, err := time.Parse(apiDateLayout, *req.DueDate); err == nil {
			inv.DueDate = t
		}
	}
	if req.IssuerName != nil {
		inv.IssuerName = *req.IssuerName
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if req.Status != nil {
		inv.Status = *req.Status
	}

	var items []model.LineItem
	if req.Items != nil {
		items = itemsFromRequest(req.Items)
	}
	if err := s.store.UpdateInvoice(inv, items); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update invoice", Details: err.Error()})
		return
	}

	updated, err := s.store.Invoice(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load updated invoice", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, toInvoiceJSON(updated))
}

func (s *Server) handleDeleteInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	err := s.store.DeleteInvoice(id)
	if errors.Is(err, model.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invoice not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not delete invoice", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (s *Server) handleBulkDeleteInvoices(c *gin.Context) {
	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}
	deleted, err := s.store.DeleteInvoices(req.InvoiceIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not delete invoices", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	result, err := s.store.Invoices(1, 100000, store.InvoiceFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load invoices", Details: err.Error()})
		return
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"Invoice Number", "Client", "Date", "Due Date", "Status", "Subtotal", "VAT", "Total"})
	for i := range result.Items {
		inv := &result.Items[i]
		clientName := ""
		if inv.Client != nil {
			clientName = inv.Client.Name
		}
		_ = w.Write([]string{
			inv.InvoiceNumber,
			clientName,
			inv.Date.Format(apiDateLayout),
			inv.DueDate.Format(apiDateLayout),
			inv.Status,
			money.Format(inv.Subtotal()),
			money.Format(inv.VATAmount()),
			money.Format(inv.GrandTotal()),
		})
	}
	w.Flush()

	c.Header("Content-Disposition", "attachment; filename=invoices.csv")
	c.Data(http.StatusOK, "text/csv", []byte(sb.String()))
}

// buildExportFiles generates e-invoice XML for the requested ids.
// Unknown ids are skipped.
func (s *Server) buildExportFiles(ids []uint) ([]einvoice.ExportFile, error) {
	cfg, err := s.store.Settings()
	if err != nil {
		return nil, err
	}

	var files []einvoice.ExportFile
	for _, id := range ids {
		inv, err := s.store.Invoice(id)
		if err != nil {
			continue
		}
		data, err := einvoice.Generate(inv, inv.Client, cfg)
		if err != nil {
			return nil, err
		}
		files = append(files, einvoice.ExportFile{
			Name: einvoice.Filename(cfg.Prefix(), inv.InvoiceNumber),
			Data: data,
		})
	}
	return files, nil
}

func (s *Server) handleExportXML(c *gin.Context) {
	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	files, err := s.buildExportFiles(req.InvoiceIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not build e-invoices", Details: err.Error()})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no valid invoices found for export"})
		return
	}

	data, name, contentType, err := einvoice.Bundle(files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not bundle e-invoices", Details: err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) handleSendEDS(c *gin.Context) {
	var req BulkIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	cfg, err := s.store.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load settings", Details: err.Error()})
		return
	}
	if strings.TrimSpace(cfg.EDSAPIKey) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "EDS API key is not configured"})
		return
	}

	client := gateway.NewClient(strings.TrimSpace(cfg.EDSAPIKey))
	success := 0
	var errs []string
	for _, id := range req.InvoiceIDs {
		inv, err := s.store.Invoice(id)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invoice %d: not found", id))
			continue
		}
		data, err := einvoice.Generate(inv, inv.Client, cfg)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", inv.InvoiceNumber, err))
			continue
		}
		if err := client.Submit(c.Request.Context(), data); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", inv.InvoiceNumber, err))
			continue
		}
		success++
	}

	c.JSON(http.StatusOK, gin.H{
		"success_count": success,
		"error_count":   len(errs),
		"errors":        errs,
	})
}

func (s *Server) handleDownloadPDF(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	inv, err := s.store.Invoice(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invoice not found"})
		return
	}
	cfg, err := s.store.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load settings", Details: err.Error()})
		return
	}
	data, err := pdf.Render(inv, inv.Client, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not render pdf", Details: err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", inv.InvoiceNumber))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) handleEmailInvoice(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	inv, err := s.store.Invoice(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "invoice not found"})
		return
	}
	cfg, err := s.store.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load settings", Details: err.Error()})
		return
	}
	data, err := pdf.Render(inv, inv.Client, cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not render pdf", Details: err.Error()})
		return
	}
	if err := mailer.SendInvoice(inv, cfg, data, req.ToEmail); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to send email", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

func (s *Server) handleSyncGDrive(c *gin.Context) {
	cfg, err := s.store.Settings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load settings", Details: err.Error()})
		return
	}
	if !cfg.GDriveEnabled || !gdrive.Configured(cfg) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "google drive sync is not configured"})
		return
	}

	result, err := s.store.Invoices(1, 100000, store.InvoiceFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load invoices", Details: err.Error()})
		return
	}

	synced := 0
	var errs []string
	for i := range result.Items {
		inv := &result.Items[i]
		data, err := pdf.Render(inv, inv.Client, cfg)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", inv.InvoiceNumber, err))
			continue
		}
		filename := fmt.Sprintf("%s.pdf", inv.InvoiceNumber)
		if err := gdrive.Upload(c.Request.Context(), cfg, data, filename); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", inv.InvoiceNumber, err))
			continue
		}
		synced++
	}

	c.JSON(http.StatusOK, gin.H{
		"synced": synced,
		"errors": errs,
	})
}
