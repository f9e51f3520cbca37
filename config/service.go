package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/minutes/logger"
	"github.com/skillsenselab/minutes/redisconn"
)

// ServiceConfig is the full configuration of a minutes worker process.
type ServiceConfig struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`

	Logging logger.Config    `yaml:"logging" mapstructure:"logging"`
	Redis   redisconn.Config `yaml:"redis" mapstructure:"redis"`
	Mongo   MongoConfig      `yaml:"mongo" mapstructure:"mongo"`
	Queue   QueueConfig      `yaml:"queue" mapstructure:"queue"`
	Worker  WorkerConfig     `yaml:"worker" mapstructure:"worker"`

	Transcription StageConfig `yaml:"transcription" mapstructure:"transcription"`
	Summarization StageConfig `yaml:"summarization" mapstructure:"summarization"`
}

// MongoConfig holds record store connection settings.
type MongoConfig struct {
	URI        string `yaml:"uri" mapstructure:"uri" validate:"required"`
	Database   string `yaml:"database" mapstructure:"database" validate:"required"`
	Collection string `yaml:"collection" mapstructure:"collection"`
}

// QueueConfig holds default job options for the durable queue.
type QueueConfig struct {
	MaxAttempts  int           `yaml:"max_attempts" mapstructure:"max_attempts" validate:"min=1"`
	BaseDelay    time.Duration `yaml:"base_delay" mapstructure:"base_delay"`
	LeaseTimeout time.Duration `yaml:"lease_timeout" mapstructure:"lease_timeout"`
}

// WorkerConfig holds pipeline worker settings.
type WorkerConfig struct {
	Concurrency   int           `yaml:"concurrency" mapstructure:"concurrency" validate:"min=1"`
	PollInterval  time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	MaxAudioBytes int64         `yaml:"max_audio_bytes" mapstructure:"max_audio_bytes" validate:"min=1"`
}

// StageConfig selects a stage provider and carries its backend settings.
type StageConfig struct {
	Provider string         `yaml:"provider" mapstructure:"provider" validate:"required"`
	Settings map[string]any `yaml:"settings" mapstructure:"settings"`
}

// ApplyDefaults applies default values to the full configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "minutes-worker"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	c.Redis.ApplyDefaults()
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "meetings"
	}
	if c.Queue.MaxAttempts == 0 {
		c.Queue.MaxAttempts = 3
	}
	if c.Queue.BaseDelay == 0 {
		c.Queue.BaseDelay = 2 * time.Second
	}
	if c.Queue.LeaseTimeout == 0 {
		c.Queue.LeaseTimeout = 5 * time.Minute
	}
	if c.Worker.Concurrency == 0 {
		c.Worker.Concurrency = 2
	}
	if c.Worker.PollInterval == 0 {
		c.Worker.PollInterval = time.Second
	}
	if c.Worker.MaxAudioBytes == 0 {
		c.Worker.MaxAudioBytes = 25 << 20
	}
	if c.Transcription.Provider == "" {
		c.Transcription.Provider = "mock"
	}
	if c.Summarization.Provider == "" {
		c.Summarization.Provider = "mock"
	}
}

// Validate checks the configuration for structural and semantic errors.
func (c *ServiceConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("config.redis: %w", err)
	}
	return nil
}
