package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vvka-141/catalogdb/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "catalogdb",
	Short: "Load item, review and user CSVs into a SQLite database",
	Long: `catalogdb reads the items, reviews and (optionally) users CSV files named by
environment variables and writes them as tables into a SQLite database file,
replacing any tables of the same name. It then builds the lookup indexes
idx_item_id, idx_review_item_id and idx_user_id.

Environment (a .env file in the working directory is read when present;
values set in the process environment take precedence over it):
  ITEM_CSV_PATH            items CSV (required)
  REVIEW_CSV_PATH          reviews CSV (required)
  USER_CSV_PATH            users CSV (optional, loads the users table)
  DB_PATH                  output database file (required)
  CATALOGDB_SQLITE_DRIVER  sqlite3 (default, CGO) or sqlite (pure Go)
  CATALOGDB_BUSY_RETRIES   retries while the database file is locked (default 0)

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (unexpected arguments or flags)
  3  - Panic or unexpected system error
  10 - Required environment variable unset or invalid
  11 - CSV file missing or unreadable
  12 - CSV file malformed
  13 - Column needed by an index is missing
  14 - Database file could not be opened or written`,
	Args:          cobra.NoArgs,
	RunE:          runLoad,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		errOut := rootCmd.ErrOrStderr()
		fmt.Fprintln(errOut, ui.ErrorLine("Error: "+err.Error(), ui.ColorEnabled(errOut)))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output on stderr")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	flag := cmd.Flag("verbose")
	if flag == nil {
		return false
	}
	verbose, err := strconv.ParseBool(flag.Value.String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
