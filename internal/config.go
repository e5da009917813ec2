package internal

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/halvard/skald/internal/articles"
	"github.com/halvard/skald/internal/articleservice"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	return c.Content.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel string     `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	return c.HTTP.Validate()
}

// Level parses LogLevel into a slog.Level. Unset or unknown values fall
// back to info.
func (c *ApplicationConfig) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig describes where article documents come from and how they
// are presented.
//
// Exactly one of Dir and BaseURL must be set: Dir reads documents from a
// local directory, BaseURL fetches them over HTTP. Documents lists the
// document IDs to load; an empty list yields an empty article index.
type ContentConfig struct {
	Dir             string   `yaml:"dir"`
	BaseURL         string   `yaml:"base_url"`
	Documents       []string `yaml:"documents"`
	ArticlesPerPage int      `yaml:"articles_per_page"`
	ExcerptLength   int      `yaml:"excerpt_length"`
	DateFormat      string   `yaml:"date_format"`
}

// Validate validates the content configuration and normalises the
// document list.
func (c *ContentConfig) Validate() error {
	// Drop blank entries so a stray "-" in the YAML list is harmless.
	docs := c.Documents[:0]
	for _, d := range c.Documents {
		if d = strings.TrimSpace(d); d != "" {
			docs = append(docs, d)
		}
	}
	c.Documents = docs

	if err := validation.ValidateStruct(c,
		validation.Field(&c.ArticlesPerPage, validation.Min(1)),
		validation.Field(&c.ExcerptLength, validation.Min(1)),
		validation.Field(&c.DateFormat, validation.Required),
	); err != nil {
		return err
	}
	if c.Dir == "" && c.BaseURL == "" {
		return fmt.Errorf("content: one of dir or base_url must be set")
	}
	if c.Dir != "" && c.BaseURL != "" {
		return fmt.Errorf("content: dir and base_url are mutually exclusive")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: "info",
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Dir:             "./content",
			ArticlesPerPage: articles.DefaultPageSize,
			ExcerptLength:   articles.DefaultExcerptLength,
			DateFormat:      articleservice.DefaultDateFormat,
		},
	}
}
