// Command minutes-worker runs the meeting processing pipeline: it leases
// jobs from the Redis queue, transcribes and summarizes the audio, and
// persists progress to the record store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillsenselab/minutes/artifact"
	"github.com/skillsenselab/minutes/config"
	"github.com/skillsenselab/minutes/logger"
	"github.com/skillsenselab/minutes/meeting"
	"github.com/skillsenselab/minutes/pipeline"
	"github.com/skillsenselab/minutes/queue"
	"github.com/skillsenselab/minutes/redisconn"
	"github.com/skillsenselab/minutes/summarization"
	summarizationollama "github.com/skillsenselab/minutes/summarization/ollama"
	"github.com/skillsenselab/minutes/transcription"
	"github.com/skillsenselab/minutes/transcription/whisper"
	"github.com/skillsenselab/minutes/version"
)

const serviceName = "minutes-worker"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file")
	uploadDir := flag.String("uploads", "uploads", "audio artifact directory")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(*configFile, *uploadDir); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(configFile, uploadDir string) error {
	var cfg config.ServiceConfig
	var loadOpts []config.LoaderOption
	if configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(configFile))
	}
	if err := config.Load(serviceName, &cfg, loadOpts...); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	log.Info("starting", logger.Fields(
		"version", version.Get().String(),
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record store.
	mongoCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(mongoCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn("mongo disconnect failed", logger.ErrorFields("disconnect", err))
		}
	}()
	if err := mongoClient.Ping(mongoCtx, nil); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	coll := mongoClient.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	store := meeting.NewMongoStore(coll, log)
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// Audio artifacts.
	artifacts, err := artifact.NewLocalStore(uploadDir, log)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}

	// Stage providers.
	transcriber, summarizer, err := buildProviders(ctx, cfg, log)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessor(pipeline.ProcessorConfig{
		Store:         store,
		Artifacts:     artifacts,
		Transcriber:   transcriber,
		Summarizer:    summarizer,
		MaxAudioBytes: cfg.Worker.MaxAudioBytes,
		Logger:        log,
	})

	// Durable queue.
	redisClient, err := redisconn.New(cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()
	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	q := queue.NewRedisQueue(redisClient, queue.Config{
		LeaseTimeout: cfg.Queue.LeaseTimeout,
		MaxAttempts:  cfg.Queue.MaxAttempts,
		BaseDelay:    cfg.Queue.BaseDelay,
	}, log)

	worker := pipeline.NewWorker(pipeline.WorkerConfig{
		Queue:        q,
		Processor:    processor,
		Concurrency:  cfg.Worker.Concurrency,
		PollInterval: cfg.Worker.PollInterval,
		Logger:       log,
	})
	if err := worker.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutting down, draining in-flight jobs")
	worker.Stop()
	return nil
}

// buildProviders creates the configured stage backends through the
// provider registries.
func buildProviders(ctx context.Context, cfg config.ServiceConfig, log *logger.Logger) (transcription.Provider, summarization.Provider, error) {
	transcribers := transcription.NewRegistry()
	transcribers.RegisterFactory(transcription.MockProviderName, transcription.MockFactory())
	transcribers.RegisterFactory(whisper.ProviderName, whisper.Factory())

	summarizers := summarization.NewRegistry()
	summarizers.RegisterFactory(summarization.MockProviderName, summarization.MockFactory())
	summarizers.RegisterFactory(summarizationollama.ProviderName, summarizationollama.Factory())

	transcriber, err := transcribers.Create(cfg.Transcription.Provider, cfg.Transcription.Settings)
	if err != nil {
		return nil, nil, fmt.Errorf("create transcription provider: %w", err)
	}
	summarizer, err := summarizers.Create(cfg.Summarization.Provider, cfg.Summarization.Settings)
	if err != nil {
		return nil, nil, fmt.Errorf("create summarization provider: %w", err)
	}

	if !transcriber.IsAvailable(ctx) {
		log.Warn("transcription provider not reachable at startup",
			logger.Fields(logger.FieldProvider, transcriber.Name()))
	}
	if !summarizer.IsAvailable(ctx) {
		log.Warn("summarization provider not reachable at startup",
			logger.Fields(logger.FieldProvider, summarizer.Name()))
	}
	return transcriber, summarizer, nil
}
