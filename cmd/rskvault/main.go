// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for rskvault using the Cobra
// library. It defines the root command, the shared service bootstrap
// (config, logging, i18n, database), and the flags common to all commands.

package rskvault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rskvault/rskvault/internal/config"
	"github.com/rskvault/rskvault/internal/db"
	"github.com/rskvault/rskvault/internal/i18n"
	"github.com/rskvault/rskvault/internal/logging"
	"github.com/rskvault/rskvault/internal/provider"
	"github.com/rskvault/rskvault/internal/tui"
	"github.com/rskvault/rskvault/internal/wallet"
)

var cfgFile string
var verbose bool
var showVersionFlag bool
var fullRestore bool // Flag for the restore command

var appConfig config.Config

// openKeystore builds the wallet keystore from the configured file path.
// Tests point it at a temporary file.
var openKeystore = func() *wallet.Keystore {
	return wallet.NewKeystore(viper.GetString("wallet.file"))
}

// dialProvider connects to the configured RPC endpoint for the active
// network. Tests swap in a provider bound to a local test server.
var dialProvider = func() (*provider.Provider, error) {
	return provider.New(viper.GetString("network"), viper.GetString("rpc.url"), viper.GetBool("rpc.enforce_tls"))
}

// rpcTimeout bounds every single JSON-RPC round trip made by a command.
const rpcTimeout = 30 * time.Second

func setupDefaultServices(cmd *cobra.Command, args []string) error {
	// Load optional config file argument from cli
	optionalConfigPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	dataDir, err := config.DefaultDataDir()
	if err != nil {
		return err
	}

	defaults := map[string]any{
		"language":        "en",
		"log_level":       "info",
		"network":         provider.NetworkTestnet,
		"database.type":   "sqlite",
		"database.dsn":    filepath.Join(dataDir, "rskvault.db"),
		"wallet.file":     filepath.Join(dataDir, "wallets.json"),
		"rpc.url":         "",
		"rpc.enforce_tls": true,
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, defaults, optionalConfigPath)
	// A "file not found" error is expected on first run, so we handle it
	// specifically and write a default file for subsequent runs.
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			// Log a warning but don't fail, as the app can run on defaults.
			log.Warnf("could not write default config file: %v", writeErr)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Post-process config to ensure critical values are not empty, falling
	// back to defaults. This handles config files with blank fields.
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}
	if appConfig.LogLevel == "" {
		appConfig.LogLevel = defaults["log_level"].(string)
	}
	if appConfig.Network == "" {
		appConfig.Network = defaults["network"].(string)
	}
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Database.Dsn == "" {
		appConfig.Database.Dsn = defaults["database.dsn"].(string)
	}
	if appConfig.Wallet.File == "" {
		appConfig.Wallet.File = defaults["wallet.file"].(string)
	}

	appConfig.Network, err = provider.NormalizeNetwork(appConfig.Network)
	if err != nil {
		return err
	}

	// Mirror the effective config into the process-wide viper; the TUI,
	// config.Save and the commands read from there. Keys that were already
	// set earlier in the process (runtime changes, test fixtures) win.
	mirrorConfig("language", appConfig.Language)
	mirrorConfig("log_level", appConfig.LogLevel)
	mirrorConfig("network", appConfig.Network)
	mirrorConfig("database.type", appConfig.Database.Type)
	mirrorConfig("database.dsn", appConfig.Database.Dsn)
	mirrorConfig("wallet.file", appConfig.Wallet.File)
	mirrorConfig("rpc.url", appConfig.RPC.URL)
	mirrorConfig("rpc.enforce_tls", appConfig.RPC.EnforceTLS)

	// An explicit flag on this invocation wins over both the config file
	// and any earlier process state.
	if f := cmd.Flags().Lookup("network"); f != nil && f.Changed {
		viper.Set("network", appConfig.Network)
	}
	if f := cmd.Flags().Lookup("language"); f != nil && f.Changed {
		viper.Set("language", appConfig.Language)
	}

	logging.Init(viper.GetString("log_level"))
	if verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	// Initialize i18n
	i18n.Init(viper.GetString("language"))

	// Initialize the database if not already initialized by tests or
	// earlier setup.
	if !db.IsInitialized() {
		if err := db.InitDB(viper.GetString("database.type"), viper.GetString("database.dsn")); err != nil {
			return errors.New(i18n.T("config.error_init_db", err))
		}
	}

	return nil
}

func mirrorConfig(key string, value any) {
	if !viper.IsSet(key) {
		viper.Set(key, value)
	}
}

// effectiveConfig rebuilds the configuration from the process-wide viper
// state. After setup this matches the loaded file plus any runtime changes.
func effectiveConfig() config.Config {
	var c config.Config
	c.Language = viper.GetString("language")
	c.LogLevel = viper.GetString("log_level")
	c.Network = viper.GetString("network")
	c.Database.Type = viper.GetString("database.type")
	c.Database.Dsn = viper.GetString("database.dsn")
	c.Wallet.File = viper.GetString("wallet.file")
	c.RPC.URL = viper.GetString("rpc.url")
	c.RPC.EnforceTLS = viper.GetBool("rpc.enforce_tls")
	return c
}

// Execute runs the CLI entrypoint. The root main package calls this and
// handles process exit.
func Execute() error {
	rootCmd := NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func applyDefaultFlags(cmd *cobra.Command) {
	// Avoid redefining flags if they already exist (NewRootCmd may be called
	// multiple times in tests which creates a new root but uses package-level
	// subcommands). pflag will panic on duplicate flag definitions, so check
	// first.
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "Database type (e.g., sqlite, postgres)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "", "Database connection string (DSN)")
	}
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	// Only proceed if the user has explicitly set the --config flag.
	if cmd.Flags().Changed("config") {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return nil, fmt.Errorf("could not read --config flag: %w", err)
		}

		// If the flag is set but the value is empty, do nothing.
		if path == "" {
			return nil, nil
		}

		// Make sure the user-provided file exists to avoid unwanted behavior.
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
		}
		return &path, nil
	}
	return nil, nil
}

// NewRootCmd creates and configures a new root cobra command. This function
// is used to create the main application command as well as fresh instances
// for isolated testing.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rskvault",
		Short: "rskvault is a hardened wallet for the Rootstock network.",
		Long: `rskvault keeps Rootstock (RSK) keys sealed on disk and never lets
secret material reach logs, errors or the clipboard. Wallets, contacts,
provider API keys and an activity log live in a local database; RBTC
moves with legacy transactions signed locally.

Running without a subcommand will launch the interactive TUI.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if showVersionFlag {
				fmt.Printf("%s\n", compositeVersion())
				os.Exit(0)
			}
			return setupDefaultServices(cmd, args)
		},
		Run: func(cmd *cobra.Command, args []string) {
			// Config, i18n and the database are already initialized by
			// PersistentPreRunE, so we can just run the TUI.
			tui.Run()
		},
	}

	cmd.Version = compositeVersion()

	// Define flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&showVersionFlag, "version", "V", false, "Print version and exit")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `output language ("en", "de")`)
	cmd.PersistentFlags().String("network", "", `network ("mainnet", "testnet"; default from config)`)
	applyDefaultFlags(cmd)

	registerWalletCommands()
	registerContactCommands()
	registerAPIKeyCommands()

	applyDefaultFlags(dbMaintainCmd)
	if dbMaintainCmd.Flags().Lookup("timeout") == nil {
		dbMaintainCmd.Flags().Int("timeout", 0, "Timeout in seconds for maintenance (0 means no timeout)")
	}
	applyDefaultFlags(restoreCmd)
	if restoreCmd.Flags().Lookup("full") == nil {
		restoreCmd.Flags().BoolVar(&fullRestore, "full", false, "Perform a full, destructive restore (wipes wallets, contacts, keys and activity first)")
	}
	if transferCmd.Flags().Lookup("password") == nil {
		transferCmd.Flags().StringVarP(&transferPassword, "password", "p", "", "Wallet password (prompted when omitted)")
		transferCmd.Flags().String("from", "", "Send from the named wallet instead of the active one")
		transferCmd.Flags().BoolVarP(&transferYes, "yes", "y", false, "Skip the confirmation prompt")
		transferCmd.Flags().Bool("wait", false, "Wait for the transaction receipt")
	}
	if balanceCmd.Flags().Lookup("all") == nil {
		balanceCmd.Flags().Bool("all", false, "Show balances for every wallet")
	}
	if historyCmd.Flags().Lookup("limit") == nil {
		historyCmd.Flags().IntP("limit", "n", 10, "Maximum number of transfers to show")
		historyCmd.Flags().String("address", "", "Address to query (default: active wallet)")
		historyCmd.Flags().Bool("incoming", false, "Only incoming transfers")
		historyCmd.Flags().Bool("outgoing", false, "Only outgoing transfers")
	}
	if activityCmd.Flags().Lookup("limit") == nil {
		activityCmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show")
	}

	cmd.AddCommand(
		walletCmd,
		balanceCmd,
		transferCmd,
		historyCmd,
		contactCmd,
		apikeyCmd,
		networkCmd,
		backupCmd,
		restoreCmd,
		doctorCmd,
		activityCmd,
		dbMaintainCmd,
		versionCmd,
	)

	return cmd
}

// dbMaintainCmd runs database maintenance tasks for the configured database.
var dbMaintainCmd = &cobra.Command{
	Use:     "db-maintain",
	Short:   "Run database maintenance (VACUUM/OPTIMIZE) for the configured DB",
	Long:    `Runs engine-specific maintenance tasks (VACUUM, OPTIMIZE TABLE, PRAGMA optimize).`,
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		timeoutSec, _ := cmd.Flags().GetInt("timeout")
		dbType := viper.GetString("database.type")
		dsn := viper.GetString("database.dsn")
		if timeoutSec > 0 {
			done := make(chan error, 1)
			go func() {
				done <- db.RunDBMaintenance(dbType, dsn)
			}()
			select {
			case err := <-done:
				if err != nil {
					fmt.Printf("Maintenance failed: %v\n", err)
					os.Exit(1)
				}
				fmt.Println("Maintenance completed successfully")
			case <-time.After(time.Duration(timeoutSec) * time.Second):
				fmt.Println("Maintenance timed out")
				os.Exit(2)
			}
			return
		}
		if err := db.RunDBMaintenance(dbType, dsn); err != nil {
			fmt.Printf("Maintenance failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Maintenance completed successfully")
	},
}
