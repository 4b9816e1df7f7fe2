package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/catalogdb/internal/checksum"
	"github.com/vvka-141/catalogdb/internal/config"
	"github.com/vvka-141/catalogdb/internal/files/csvtable"
	"github.com/vvka-141/catalogdb/internal/files/filesystem"
	"github.com/vvka-141/catalogdb/internal/logging"
	"github.com/vvka-141/catalogdb/internal/services"
	"github.com/vvka-141/catalogdb/internal/store"
	"github.com/vvka-141/catalogdb/internal/ui"
	"github.com/vvka-141/catalogdb/pkg/catalogdb"
)

type loadFlagValues struct {
	envFiles   []string
	configFile string
}

var loadFlags loadFlagValues

// lookupEnv is replaced in tests.
var lookupEnv config.LookupFunc = os.LookupEnv

func init() {
	rootCmd.Flags().StringSliceVar(&loadFlags.envFiles, "env-file", nil,
		"Read variables from .env files (can be specified multiple times)\n"+
			"Later files override earlier ones; the process environment overrides all")
	rootCmd.Flags().StringVar(&loadFlags.configFile, "config", "",
		"YAML file supplying sources.items, sources.reviews, sources.users,\n"+
			"database.path, database.driver and database.busy_retries;\n"+
			"environment variables override it")
}

// buildLoadConfig resolves the LoadConfig from flags, env files and the environment.
// Validation is left to the loader so every missing variable is reported at once.
func buildLoadConfig(flags loadFlagValues, verbose bool) (catalogdb.LoadConfig, error) {
	var fileCfg *config.FileConfig
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return catalogdb.LoadConfig{}, fmt.Errorf("failed to load config file: %w: %w", catalogdb.ErrConfiguration, err)
		}
		fileCfg = loaded
	}

	envValues, err := config.ReadEnvFiles(flags.envFiles)
	if err != nil {
		return catalogdb.LoadConfig{}, err
	}

	cfg, err := config.Resolve(config.Layered(lookupEnv, config.MapLookup(envValues)), fileCfg)
	if err != nil {
		return catalogdb.LoadConfig{}, err
	}
	cfg.Verbose = verbose

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
		fmt.Fprintf(os.Stderr, "  Items:    %s\n", cfg.ItemsPath)
		fmt.Fprintf(os.Stderr, "  Reviews:  %s\n", cfg.ReviewsPath)
		fmt.Fprintf(os.Stderr, "  Users:    %s\n", orNone(cfg.UsersPath))
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DBPath)
		fmt.Fprintf(os.Stderr, "  Driver:   %s\n", cfg.EffectiveDriver())
		fmt.Fprintf(os.Stderr, "  Retries:  %d\n", cfg.BusyRetries)
	}

	return cfg, nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildLoadConfig(loadFlags, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	reader := csvtable.NewReader(filesystem.NewOSFileSystem(), checksum.New())
	loader := services.NewLoaderService(reader, store.Opener, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := loader.Load(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	if verbose {
		color := ui.ColorEnabled(os.Stderr)
		for _, t := range result.Tables {
			logger.Verbose("%s", ui.Summary(fmt.Sprintf("%s: %d rows from %s", t.Name, t.Rows, t.Path), color))
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.SuccessLine(catalogdb.SuccessMessage, ui.ColorEnabled(out)))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
