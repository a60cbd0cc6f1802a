package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"qkart/internal/app"
	"qkart/internal/authclient"
	"qkart/internal/config"
	"qkart/internal/log"
	"qkart/internal/tracing"
	"qkart/internal/ui/markdown"
	"qkart/internal/ui/styles"
)

func init() {
	// Query the terminal background before any program starts so the OSC 11
	// reply cannot land in a text input.
	_ = lipgloss.HasDarkBackground()
}

// Project-local config path, created on first run.
const localConfigPath = ".qkart/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "qkart",
	Short: "Create a QKart account from the terminal",
	Long: `qkart registers a new account with the QKart storefront's authentication
service and hands off to login once the account exists.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .qkart/config.yaml, then ~/.config/qkart/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log and enable the log overlay (ctrl+x)")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "",
		"auth service base URL")

	_ = viper.BindPFlag("api.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	// A missing .env is normal.
	_ = godotenv.Load()

	setDefaults(viper.GetViper(), config.Defaults())

	viper.SetEnvPrefix("QKART")
	viper.SetEnvKeyReplacer(newKeyReplacer())
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(localConfigPath); err == nil {
		viper.SetConfigFile(localConfigPath)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "qkart"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(localConfigPath); writeErr == nil {
				viper.SetConfigFile(localConfigPath)
				_ = viper.ReadInConfig()
			}
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// newKeyReplacer maps nested keys like api.endpoint to QKART_API_ENDPOINT.
func newKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

// setDefaults registers every key so env vars and Unmarshal see it.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("api.endpoint", d.API.Endpoint)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.toast_duration", d.UI.ToastDuration)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("theme.preset", d.Theme.Preset)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("stub.addr", d.Stub.Addr)
	v.SetDefault("stub.user_ttl", d.Stub.UserTTL)
	v.SetDefault("stub.db_path", d.Stub.DBPath)
	v.SetDefault("debug", d.Debug)
}

// startLogging opens the debug log when --debug or QKART_DEBUG is set.
func startLogging(name string) (func(), error) {
	if !cfg.Debug && os.Getenv("QKART_DEBUG") == "" {
		return func() {}, nil
	}
	path := os.Getenv("QKART_LOG")
	if path == "" {
		path = "debug.log"
	}
	cleanup, err := log.Init(path)
	if err != nil {
		return nil, err
	}
	log.Info(log.CatConfig, "Starting", "command", name, "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := startLogging("qkart")
	if err != nil {
		return fmt.Errorf("starting debug log: %w", err)
	}
	defer cleanup()

	if err := styles.ApplyPreset(cfg.Theme.Preset); err != nil {
		return err
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}()

	renderer, err := markdown.New(cfg.UI.MarkdownStyle, 60)
	if err != nil {
		log.ErrorErr(log.CatUI, "Markdown renderer unavailable", err)
		renderer = nil
	}

	client := authclient.New(cfg.API.Endpoint, authclient.WithTimeout(cfg.API.Timeout))
	log.Info(log.CatHTTP, "Using auth service", "url", client.RegisterURL())

	zone.NewGlobal()
	model := app.New(app.Options{
		Config:    cfg,
		Registrar: client,
		Tracer:    provider.Tracer(),
		Markdown:  renderer,
		Debug:     cfg.Debug || os.Getenv("QKART_DEBUG") != "",
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	if viper.ConfigFileUsed() != "" {
		// "qkart endpoint set" in another terminal retargets this session.
		config.Watch(viper.GetViper(), func(api config.APIConfig) {
			client.SetEndpoint(api.Endpoint)
			p.Send(app.EndpointChangedMsg{Endpoint: api.Endpoint})
		})
	}

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
