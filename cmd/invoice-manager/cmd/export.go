package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rigalabs/invoice-manager/internal/einvoice"
	"github.com/rigalabs/invoice-manager/internal/store"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <invoice-id>...",
	Short: "Export invoices as PEPPOL e-invoice XML",
	Long: `Export one or more invoices as UBL 2.1 / PEPPOL BIS Billing 3.0
XML. A single invoice is written as one XML file; multiple invoices
are bundled into a zip archive.

Examples:
  invoice-manager export 7
  invoice-manager export 3 4 5 -o einvoices.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: the bundle's own name)")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	settings, err := st.Settings()
	if err != nil {
		return err
	}

	var files []einvoice.ExportFile
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid invoice id %q", arg)
		}
		inv, err := st.Invoice(uint(id))
		if err != nil {
			return fmt.Errorf("invoice %d: %w", id, err)
		}
		data, err := einvoice.Generate(inv, inv.Client, settings)
		if err != nil {
			return err
		}
		files = append(files, einvoice.ExportFile{
			Name: einvoice.Filename(settings.Prefix(), inv.InvoiceNumber),
			Data: data,
		})
	}

	data, name, _, err := einvoice.Bundle(files)
	if err != nil {
		return err
	}
	if exportOutput != "" {
		name = exportOutput
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d invoices)\n", name, len(files))
	return nil
}
