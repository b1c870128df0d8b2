package cmd

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/internal/config"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save a Kernel API key for --source kernel",
	Long: `Store a Kernel API key in the operating system keyring. KERNEL_API_KEY
takes precedence when set.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved Kernel API key",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().String("api-key", "", "API key to save (prompted for when omitted)")
}

// KeyStore persists the Kernel API key.
type KeyStore interface {
	Save(key string) error
	Delete() error
}

type keyringStore struct{}

func (keyringStore) Save(key string) error { return config.SaveKernelKey(key) }
func (keyringStore) Delete() error         { return config.DeleteKernelKey() }

// LoginCmd handles credential storage independent of cobra.
type LoginCmd struct {
	store  KeyStore
	prompt func() (string, error)
}

type LoginInput struct {
	APIKey string
}

func (c LoginCmd) Login(in LoginInput) error {
	key := strings.TrimSpace(in.APIKey)
	if key == "" && c.prompt != nil {
		entered, err := c.prompt()
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = strings.TrimSpace(entered)
	}
	if key == "" {
		return fmt.Errorf("no API key provided")
	}
	if err := c.store.Save(key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	pterm.Success.Println("Kernel API key saved")
	return nil
}

func (c LoginCmd) Logout() error {
	if err := c.store.Delete(); err != nil {
		return fmt.Errorf("failed to remove API key: %w", err)
	}
	pterm.Success.Println("Kernel API key removed")
	return nil
}

func promptAPIKey() (string, error) {
	return pterm.DefaultInteractiveTextInput.WithMask("*").Show("Kernel API key")
}

func runLogin(cmd *cobra.Command, args []string) error {
	apiKey, _ := cmd.Flags().GetString("api-key")
	c := LoginCmd{store: keyringStore{}, prompt: promptAPIKey}
	return c.Login(LoginInput{APIKey: apiKey})
}

func runLogout(cmd *cobra.Command, args []string) error {
	c := LoginCmd{store: keyringStore{}}
	return c.Logout()
}
