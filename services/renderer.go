package services

import (
	"os"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/athapong/richtext/pkg/imageurl"
	"github.com/athapong/richtext/pkg/metrics"
	"github.com/athapong/richtext/pkg/richtext"
)

// RendererConfig holds the environment driven renderer settings
type RendererConfig struct {
	EscapeAttrs bool
	LogLevel    logrus.Level
	ImageWidth  int
	ImageHeight int
}

// LoadRendererConfig reads RICHTEXT_ESCAPE_ATTRS, RICHTEXT_LOG_LEVEL,
// RICHTEXT_IMAGE_WIDTH and RICHTEXT_IMAGE_HEIGHT. Invalid values fall back
// to the defaults.
func LoadRendererConfig() RendererConfig {
	cfg := RendererConfig{LogLevel: logrus.InfoLevel}

	if v, err := strconv.ParseBool(os.Getenv("RICHTEXT_ESCAPE_ATTRS")); err == nil {
		cfg.EscapeAttrs = v
	}
	if level, err := logrus.ParseLevel(os.Getenv("RICHTEXT_LOG_LEVEL")); err == nil {
		cfg.LogLevel = level
	}
	if v, err := strconv.Atoi(os.Getenv("RICHTEXT_IMAGE_WIDTH")); err == nil && v > 0 {
		cfg.ImageWidth = v
	}
	if v, err := strconv.Atoi(os.Getenv("RICHTEXT_IMAGE_HEIGHT")); err == nil && v > 0 {
		cfg.ImageHeight = v
	}
	return cfg
}

// Options converts the config into renderer options.
func (c RendererConfig) Options(logger *logrus.Logger) []richtext.Option {
	opts := []richtext.Option{
		richtext.WithLogger(logger),
		richtext.WithObserver(metrics.Observer()),
		richtext.WithAttributeEscaping(c.EscapeAttrs),
	}
	if c.ImageWidth > 0 || c.ImageHeight > 0 {
		opts = append(opts, richtext.WithImageOptions(imageurl.Options{
			Width:  c.ImageWidth,
			Height: c.ImageHeight,
		}))
	}
	return opts
}

var DefaultLogger = sync.OnceValue(func() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	// stdout carries the MCP stdio transport
	logger.SetOutput(os.Stderr)
	logger.SetLevel(LoadRendererConfig().LogLevel)
	return logger
})

var DefaultRenderer = sync.OnceValue(func() *richtext.Renderer {
	return richtext.New(LoadRendererConfig().Options(DefaultLogger())...)
})
