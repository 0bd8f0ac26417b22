package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var (
	healthURL     string
	healthTimeout time.Duration
)

// healthcheck is meant for container HEALTHCHECK lines.
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Exit non-zero unless the portal answers /healthz",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkHealth(cmd.Context(), healthURL, healthTimeout)
	},
}

func init() {
	healthcheckCmd.Flags().StringVar(&healthURL, "url", "http://localhost:8080/healthz", "health endpoint to probe")
	healthcheckCmd.Flags().DurationVar(&healthTimeout, "timeout", 3*time.Second, "probe timeout")
	rootCmd.AddCommand(healthcheckCmd)
}

func checkHealth(ctx context.Context, url string, timeout time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck: %s", resp.Status)
	}
	return nil
}
