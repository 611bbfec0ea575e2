package theme

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tonal/internal/image"
	"github.com/jmylchreest/tonal/internal/seed"
	"github.com/jmylchreest/tonal/internal/util/imagecache"
	"github.com/jmylchreest/tonal/pkg/colour/scheme"
)

// Environment variables read by WithEnvConfig.
const (
	EnvVariant  = "TONAL_VARIANT"
	EnvTheme    = "TONAL_THEME"
	EnvColours  = "TONAL_COLOURS"
	EnvSeedMode = "TONAL_SEED_MODE"
	EnvCacheDir = "TONAL_CACHE_DIR"
	EnvLogLevel = "TONAL_LOG_LEVEL"
)

// customVariant is the registry name given to Config.Custom.
const customVariant = "custom"

// Builder assembles a Pipeline.
type Builder struct {
	config   Config
	logger   hclog.Logger
	registry *scheme.Registry
	loader   image.Loader
	cache    imagecache.CacheOptions
	useEnv   bool
	getenv   func(string) string
	override []func(*Config)
}

// NewBuilder creates a new Pipeline builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		config: DefaultConfig(),
		getenv: os.Getenv,
	}
}

// WithConfig sets the configuration for the pipeline.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig applies TONAL_VARIANT, TONAL_THEME, TONAL_COLOURS,
// TONAL_SEED_MODE and TONAL_CACHE_DIR on top of the configuration when the
// pipeline is built.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithEnvLookup replaces os.Getenv, mainly for tests.
func (b *Builder) WithEnvLookup(getenv func(string) string) *Builder {
	b.getenv = getenv
	return b
}

// WithOverride registers a change applied after the environment, so that
// explicit command-line flags win over TONAL_* variables.
func (b *Builder) WithOverride(fn func(*Config)) *Builder {
	b.override = append(b.override, fn)
	return b
}

// WithLogger sets the logger. The default discards everything.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithRegistry sets the scheme registry. The default is
// scheme.DefaultRegistry. Build works on a copy, so registry is never
// modified. Config.Custom cannot be combined with a registry that already
// has a "custom" entry.
func (b *Builder) WithRegistry(registry *scheme.Registry) *Builder {
	b.registry = registry
	return b
}

// WithLoader overrides the image loader.
func (b *Builder) WithLoader(loader image.Loader) *Builder {
	b.loader = loader
	return b
}

// WithCache sets where remote images are cached.
func (b *Builder) WithCache(cache imagecache.CacheOptions) *Builder {
	b.cache = cache
	return b
}

// Build validates the configuration and constructs the Pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	config := b.config
	cache := b.cache

	if b.useEnv {
		if v := b.getenv(EnvVariant); v != "" {
			config.Variant = v
		}
		if v := b.getenv(EnvTheme); v != "" {
			m, err := ParseMode(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", EnvTheme, err)
			}
			config.Mode = m
		}
		if v := b.getenv(EnvColours); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid colour count %q", EnvColours, v)
			}
			config.Candidates = n
		}
		if v := b.getenv(EnvSeedMode); v != "" {
			m, err := seed.ParseMode(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", EnvSeedMode, err)
			}
			config.Seed.Mode = m
		}
		if v := b.getenv(EnvCacheDir); v != "" && cache.CacheDir == "" {
			cache.CacheDir = v
		}
	}

	for _, fn := range b.override {
		fn(&config)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := b.logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var registry *scheme.Registry
	if b.registry != nil {
		registry = b.registry.Clone()
	} else {
		registry = scheme.DefaultRegistry()
	}
	if config.Custom != nil {
		if err := registry.Register(customVariant, scheme.CustomConstructor(*config.Custom)); err != nil {
			return nil, fmt.Errorf("invalid configuration: custom options given but the registry already has %q: %w", customVariant, err)
		}
	}
	if _, ok := registry.Lookup(config.Variant); !ok {
		return nil, fmt.Errorf("invalid configuration: %w: %q (available: %v)",
			scheme.ErrUnknownVariant, config.Variant, registry.Names())
	}

	loader := b.loader
	if loader == nil {
		loader = image.NewSmartLoader(cache)
	}

	return &Pipeline{
		config:   config,
		logger:   logger.Named("theme"),
		registry: registry,
		loader:   loader,
	}, nil
}
