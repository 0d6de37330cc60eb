package cmd

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/issuegloss/internal/config"
)

// ConfigCheckResult holds the result of configuration validation
type ConfigCheckResult struct {
	Missing []string          // Required settings that are missing
	Present map[string]string // Settings that are set (secrets masked)
}

// EnvCommand returns the env command
func EnvCommand() *cli.Command {
	return &cli.Command{
		Name:   "env",
		Usage:  "Show the effective configuration and environment overrides",
		Action: runEnv,
	}
}

func runEnv(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	PrintConfigCheck(CheckRequiredConfig(cfg))
	return nil
}

// CheckRequiredConfig reports which tracker settings are present after all
// configuration layers are merged
func CheckRequiredConfig(cfg *config.Config) *ConfigCheckResult {
	result := &ConfigCheckResult{
		Missing: []string{},
		Present: make(map[string]string),
	}

	if cfg.Tracker.Host == "" {
		result.Missing = append(result.Missing, "tracker.host")
	} else {
		result.Present["tracker.host"] = cfg.Tracker.Host
	}

	if cfg.Tracker.Token == "" {
		result.Missing = append(result.Missing, "tracker.token")
	} else {
		result.Present["tracker.token"] = maskSecret(cfg.Tracker.Token)
	}

	result.Present["vault.path"] = cfg.Vault.Path
	result.Present["notices.info_ms"] = fmt.Sprintf("%d", cfg.Notices.InfoMs)
	result.Present["notices.error_ms"] = fmt.Sprintf("%d", cfg.Notices.ErrorMs)

	// Environment overrides, shown separately so stale exports are easy to spot
	if val := os.Getenv("ISSUEGLOSS_TRACKER_HOST"); val != "" {
		result.Present["ISSUEGLOSS_TRACKER_HOST"] = val
	}
	if val := os.Getenv("ISSUEGLOSS_TRACKER_TOKEN"); val != "" {
		result.Present["ISSUEGLOSS_TRACKER_TOKEN"] = maskSecret(val)
	}

	return result
}

// PrintConfigCheck prints the configuration check results
func PrintConfigCheck(result *ConfigCheckResult) {
	fmt.Println("=== Configuration Check ===")
	fmt.Println("")

	if len(result.Missing) > 0 {
		fmt.Println("❌ Missing required settings:")
		for _, v := range result.Missing {
			fmt.Printf("   - %s\n", v)
		}
		fmt.Println("")
	}

	if len(result.Present) > 0 {
		fmt.Println("✓ Configured settings:")
		for k, v := range result.Present {
			fmt.Printf("   - %s = %s\n", k, v)
		}
		fmt.Println("")
	}

	if len(result.Missing) == 0 {
		fmt.Println("✓ All required configuration is present")
	}

	fmt.Println("============================")
}

// maskSecret masks a secret value for display, showing only first and last 2 chars
func maskSecret(value string) string {
	if len(value) <= 8 {
		return "****"
	}
	return value[:2] + "****" + value[len(value)-2:]
}
