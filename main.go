package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/aws"
	"github.com/snosratiershad/avasho-go/config"
	"github.com/snosratiershad/avasho-go/processor"
	"github.com/snosratiershad/avasho-go/redis"
	"github.com/snosratiershad/avasho-go/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Speech server stopped")
	}
}

func run() error {
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(appConfig.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", appConfig.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	speechProcessor, cleanup, err := newSpeechProcessor(ctx, appConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(speechProcessor, appConfig.DefaultSpeaker)

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down speech server")
		if err := srv.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to shut down server")
		}
	}()

	if err := srv.Start(appConfig.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// newSpeechProcessor builds the processor from configuration. The returned cleanup
// releases any connections it opened.
func newSpeechProcessor(ctx context.Context, appConfig *config.Config) (*processor.SpeechProcessor, func(), error) {
	if appConfig.LocalMode {
		log.Warn().Msg("LOCAL_MODE enabled, using in-memory gateway, archive and job store")
		return processor.NewLocalSpeechProcessor(), func() {}, nil
	}

	gatewayClient := avasho.NewClient(
		appConfig.GatewayToken,
		avasho.WithBaseURL(appConfig.GatewayBaseURL),
		avasho.WithTimeout(appConfig.GatewayTimeout),
	)

	log.Info().
		Str("base_url", gatewayClient.BaseURL()).
		Dur("timeout", gatewayClient.Timeout()).
		Str("default_speaker", appConfig.DefaultSpeaker.String()).
		Msg("Avasho gateway client configured")

	var archive processor.AudioArchive
	if appConfig.ArchiveEnabled() {
		awsClient, err := aws.NewClient(appConfig.S3Region, appConfig.S3Bucket)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create S3 archive: %w", err)
		}
		archive = awsClient
	} else {
		log.Info().Msg("S3_BUCKET not set, audio archiving disabled")
	}

	if !appConfig.JobsEnabled() {
		log.Info().Msg("REDIS_ADDR not set, long speech jobs are not tracked")
		return processor.NewSpeechProcessor(gatewayClient, archive, nil), func() {}, nil
	}

	redisClient, err := redis.NewClient(ctx,
		appConfig.RedisAddr,
		appConfig.RedisPassword,
		appConfig.RedisDB,
		appConfig.JobTTL,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to job store: %w", err)
	}

	cleanup := func() {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}

	return processor.NewSpeechProcessor(gatewayClient, archive, redisClient), cleanup, nil
}
