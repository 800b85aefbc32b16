package commands

import (
	"context"
	"fmt"
	"os"

	"literary_voice/internal/catalog"
	"literary_voice/internal/config"
	"literary_voice/internal/credentials"
	"literary_voice/internal/ledgerclient"
	"literary_voice/internal/shell"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type appKey struct{}

var (
	apiURL     string
	catalogURL string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:               "literary-voice",
	Short:             "literary-voice finds books, sums up their most liked review and tracks your credits.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		return appFrom(cmd).Run(cmd.Context())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", "", "Ledger service URL (overrides LITERARY_VOICE_API_URL).")
	flags.StringVar(&catalogURL, "catalog-url", "", "Book catalog URL (overrides LITERARY_VOICE_CATALOG_URL).")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr.")
}

// setup builds the shell.App every command runs against.
func setup(cmd *cobra.Command, _ []string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.WarnLevel)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := config.LoadClientConfig()
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if catalogURL != "" {
		cfg.CatalogBaseURL = catalogURL
	}
	logrus.WithFields(logrus.Fields{"api": cfg.APIBaseURL, "catalog": cfg.CatalogBaseURL}).Debug("client config loaded")

	cat, err := catalog.NewClient(catalog.Options{BaseURL: cfg.CatalogBaseURL})
	if err != nil {
		return err
	}
	app, err := shell.New(
		ledgerclient.New(cfg.APIBaseURL, 0),
		cat,
		credentials.NewStore(cfg.ConfigDir),
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
	)
	if err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, app))
	return nil
}

func appFrom(cmd *cobra.Command) *shell.App {
	return cmd.Context().Value(appKey{}).(*shell.App)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
