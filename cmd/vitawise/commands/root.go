package commands

import (
	"fmt"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Test199T/vita-wise-ai-sub001/internal/client"
	"github.com/Test199T/vita-wise-ai-sub001/internal/config"
	"github.com/Test199T/vita-wise-ai-sub001/internal/repository/sqlite"
	"github.com/Test199T/vita-wise-ai-sub001/internal/security"
	"github.com/Test199T/vita-wise-ai-sub001/internal/service"
)

// App wires the client's services together; constructed once per invocation
type App struct {
	Config  *config.Config
	DB      *sqlx.DB
	State   *sqlite.StateRepository
	Tokens  *security.TokenStore
	Client  *client.Client
	Chat    *service.ChatService
	Profile *service.ProfileService
}

var app *App

var rootCmd = &cobra.Command{
	Use:           "vitawise",
	Short:         "VitaWise health companion client",
	Long:          "Command-line client for the VitaWise health-tracking backend: profile, health data and AI chat.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil && app.DB != nil {
			app.DB.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg.Logging)

	db, err := sqlite.NewDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open local state: %w", err)
	}
	if err := sqlite.RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to migrate local state: %w", err)
	}

	var encryptor *security.Encryptor
	if cfg.Storage.EncryptionKey != "" {
		encryptor, err = security.NewEncryptorFromBase64(cfg.Storage.EncryptionKey)
		if err != nil {
			db.Close()
			return fmt.Errorf("invalid state encryption key: %w", err)
		}
	}

	state := sqlite.NewStateRepository(db)
	endpointCache := sqlite.NewEndpointCacheRepository(db)
	tokens := security.NewTokenStore(state, encryptor)

	apiClient := client.NewClient(cfg.API.BaseURL, client.Timeouts{
		Request: cfg.API.RequestTimeout,
		Probe:   cfg.API.ProbeTimeout,
		Chat:    cfg.API.ChatTimeout,
	}, tokens, endpointCache)

	app = &App{
		Config:  cfg,
		DB:      db,
		State:   state,
		Tokens:  tokens,
		Client:  apiClient,
		Chat:    service.NewChatService(apiClient),
		Profile: service.NewProfileService(apiClient, state),
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr}
	writer, err := rotatelogs.New(
		cfg.File+".%Y%m%d",
		rotatelogs.WithLinkName(cfg.File),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		log.Logger = zerolog.New(console).Level(level).With().Timestamp().Logger()
		log.Warn().Err(err).Msg("Failed to open log file, logging to console only")
		return
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, writer)).
		Level(level).
		With().Timestamp().Logger()
}
