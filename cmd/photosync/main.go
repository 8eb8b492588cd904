package main

import (
	"fmt"
	"os"
	"time"

	"photosync/internal/app"
	"photosync/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Sync", "Validate").
func newApp(cmd *cobra.Command, operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaults["config_path"]
	}

	cfg, err := config.ReadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cmd.Context(), cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "photosync",
	Short: "Synchronize a photo collection with S3 and the gallery manifest",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		bucket, _ := cmd.Flags().GetString("bucket")
		region, _ := cmd.Flags().GetString("region")

		cfg := config.NewConfig(bucket, region, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Collection: %s\n", cfg.Paths.PhotographyCollection)
		fmt.Printf("Manifest:   %s\n", cfg.Paths.GalleryConfig)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Bucket:     %s (%s)\n", cfg.S3.Bucket, cfg.S3.Region)
		fmt.Printf("Base path:  %s\n", cfg.S3.BasePath)
		fmt.Printf("Max size:   %d\n", cfg.ImageProcessing.MaxSize)
		fmt.Printf("Quality:    %d\n", cfg.ImageProcessing.Quality)
		fmt.Printf("Collection: %s\n", cfg.Paths.PhotographyCollection)
		fmt.Printf("Manifest:   %s\n", cfg.Paths.GalleryConfig)
		fmt.Printf("Log dir:    %s\n", cfg.LogDir)
		return nil
	},
}

// scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List discovered group directories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Scan")
		if err != nil {
			return err
		}
		defer a.Close()

		groups, err := a.Scan()
		if err != nil {
			return err
		}

		if len(groups) == 0 {
			fmt.Println("No groups found.")
			return nil
		}

		for _, g := range groups {
			fmt.Printf("%s  %-20s  %d image(s)\n", g.DateCaptured, g.ID, len(g.Images))
		}
		return nil
	},
}

// validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the collection's structural contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Validate")
		if err != nil {
			return err
		}
		defer a.Close()

		groups, report, err := a.Validate()
		if err != nil {
			return err
		}
		if err := report.Err(); err != nil {
			return err
		}

		if remote, _ := cmd.Flags().GetBool("remote"); remote {
			if err := a.ValidateStore(cmd.Context()); err != nil {
				return fmt.Errorf("remote store check failed: %w", err)
			}
			fmt.Println("Remote store OK")
		}

		fmt.Printf("Collection OK: %d group(s)\n", len(groups))
		return nil
	},
}

// sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the full synchronization pipeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, "Sync")
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.Sync(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		fmt.Printf("Synced %d group(s), %d image(s): %d fresh, %d regenerated, %d failed, %d uploaded (%s)\n",
			report.Groups,
			report.Images,
			report.Fresh,
			report.Regenerated,
			report.Failed,
			report.Uploaded,
			report.Duration.Truncate(time.Millisecond),
		)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().String("bucket", "my-bucket", "S3 bucket name")
	configInitCmd.Flags().String("region", "us-east-1", "S3 bucket region")
	configCmd.AddCommand(configListCmd)

	validateCmd.Flags().Bool("remote", false, "Also check that the remote store is reachable")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(syncCmd)
}
