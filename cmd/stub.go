package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qkart/internal/authstub"
	"qkart/internal/config"
	"qkart/internal/log"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Serve a local auth service for development",
	Long: `Serve POST ` + authstub.BasePath + `/auth/register with the same response contract as
the storefront backend. Registered users are kept for stub.user_ttl, in memory
or, when stub.db_path is set, in a SQLite database.

Point the TUI at it with:
  qkart --endpoint http://127.0.0.1:8082` + authstub.BasePath,
	RunE: runStub,
}

func init() {
	stubCmd.Flags().String("addr", "", "listen address (default from stub.addr)")
	stubCmd.Flags().Duration("user-ttl", 0, "how long registrations are remembered (default from stub.user_ttl)")
	stubCmd.Flags().String("db", "", "SQLite file for registered users (default from stub.db_path, empty keeps them in memory)")
	_ = viper.BindPFlag("stub.addr", stubCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("stub.user_ttl", stubCmd.Flags().Lookup("user-ttl"))
	_ = viper.BindPFlag("stub.db_path", stubCmd.Flags().Lookup("db"))

	rootCmd.AddCommand(stubCmd)
}

func runStub(cmd *cobra.Command, _ []string) error {
	if err := config.ValidateStub(cfg.Stub); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := startLogging("stub")
	if err != nil {
		return fmt.Errorf("starting debug log: %w", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := authstub.New(authstub.Config{
		Addr:    cfg.Stub.Addr,
		UserTTL: cfg.Stub.UserTTL,
		DBPath:  cfg.Stub.DBPath,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.ErrorErr(log.CatStub, "Closing user store failed", err)
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "auth stub listening on http://%s%s\n", cfg.Stub.Addr, authstub.BasePath)
	log.Info(log.CatStub, "Serving", "addr", cfg.Stub.Addr, "ttl", cfg.Stub.UserTTL, "db", cfg.Stub.DBPath)

	return srv.ListenAndServe(ctx)
}
