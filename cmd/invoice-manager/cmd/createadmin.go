package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rigalabs/invoice-manager/internal/auth"
	"github.com/rigalabs/invoice-manager/internal/model"
	"github.com/rigalabs/invoice-manager/internal/store"
)

var (
	adminUsername string
	adminPassword string
	adminEmail    string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or reset the operator account",
	Long: `Create the single operator account, or reset its password if
the username already exists.

Examples:
  invoice-manager create-admin --username admin --password secret
  invoice-manager create-admin --username admin   # prompts for password`,
	RunE: runCreateAdmin,
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "admin", "Account username")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "Account password (prompted if empty)")
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "Account email")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	if adminPassword == "" {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		adminPassword = strings.TrimSpace(line)
	}
	if adminPassword == "" {
		return fmt.Errorf("password must not be empty")
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	existing, err := st.UserByName(adminUsername)
	switch {
	case err == nil:
		if _, err := st.UpdateUser(existing.Username, adminUsername, hash); err != nil {
			return err
		}
		fmt.Printf("Password updated for %s\n", adminUsername)
	case errors.Is(err, model.ErrNotFound):
		user := &model.User{
			Username:     adminUsername,
			Email:        adminEmail,
			PasswordHash: hash,
		}
		if err := st.CreateUser(user); err != nil {
			return err
		}
		fmt.Printf("Created account %s\n", adminUsername)
	default:
		return err
	}
	return nil
}
