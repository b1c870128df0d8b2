package cmd

import (
	"github.com/kernel/kernel-go-sdk"
	"github.com/kernel/kernel-go-sdk/option"

	"github.com/kernel/shorturl/internal/config"
)

// getKernelClient creates a Kernel SDK client from the configured API key,
// falling back to the key saved by 'shorturl login'.
func getKernelClient(c *config.Config) (kernel.Client, error) {
	apiKey, err := c.KernelKey()
	if err != nil {
		return kernel.Client{}, err
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if c.KernelBaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.KernelBaseURL))
	}
	return kernel.NewClient(opts...), nil
}
