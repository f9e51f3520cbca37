// Package config loads service configuration for the minutes pipeline from
// YAML files and environment variables (viper + godotenv), and validates
// the result with go-playground/validator struct tags.
package config
