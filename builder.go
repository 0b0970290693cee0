package phpsess

import (
	"io"
	"log/slog"

	"github.com/MrEthical07/phpsess/internal/audit"
	"github.com/MrEthical07/phpsess/session"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Strategy]. A Builder is single-use.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	reader session.Reader

	verify    VerifyFunc
	logger    *slog.Logger
	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the configuration. Zero string and numeric fields fall
// back to defaults at Build; boolean fields are used as given.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis injects an externally owned Redis client. The Strategy never closes it.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithReader injects a custom session record source; it takes precedence over WithRedis.
func (b *Builder) WithReader(r session.Reader) *Builder {
	b.reader = r
	return b
}

// WithVerify sets the verify callback. Without one, a resolved session
// authenticates with its attributes as the user.
func (b *Builder) WithVerify(fn VerifyFunc) *Builder {
	b.verify = fn
	return b
}

// WithLogger sets the structured logger. The default discards everything.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets the sink used when Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the authenticate latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready Strategy. When no
// client or reader was injected, Build creates a Redis client from
// Config.Redis; go-redis connects lazily, so Build performs no I/O.
func (b *Builder) Build() (*Strategy, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := b.config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b.built = true

	var (
		reader = b.reader
		owned  io.Closer
	)
	if reader == nil {
		client := b.redis
		if client == nil {
			c := session.NewClient(cfg.Redis.options())
			client, owned = c, c
		}
		reader = session.NewStore(client, cfg.Redis.Prefix)
	}

	logger := b.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Strategy{
		sessionName:       cfg.SessionName,
		completelyLogout:  cfg.CompletelyLogout,
		passReqToCallback: cfg.PassReqToCallback,
		reader:            reader,
		owned:             owned,
		verify:            b.verify,
		logger:            logger,
		metrics:           NewMetrics(cfg.Metrics),
		audit:             audit.NewDispatcher(cfg.Audit.dispatcherConfig(), b.auditSink),
	}, nil
}
