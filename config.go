package registrar

import (
	"github.com/arloliu/registrar/auth"
	"github.com/arloliu/registrar/internal/logging"
	"github.com/arloliu/registrar/mail"
	"github.com/arloliu/registrar/schema"
	"github.com/arloliu/registrar/types"
)

// config holds the App-level settings filled in by Options.
type config struct {
	keyspace string
	logger   types.Logger
	mailer   mail.Sender
	decoder  auth.Decoder
}

func defaultConfig() config {
	return config{
		keyspace: schema.DefaultKeyspace,
		logger:   logging.NewNopLogger(),
		mailer:   mail.NewNopSender(),
	}
}

// Option configures the App.
type Option func(*config)

// WithKeyspace overrides the keyspace every table lives in.
//
// Parameters:
//   - keyspace: The keyspace name
//
// Returns:
//   - Option: Configuration option
func WithKeyspace(keyspace string) Option {
	return func(c *config) {
		if keyspace != "" {
			c.keyspace = keyspace
		}
	}
}

// WithLogger sets the structured logger shared by every manager.
//
// If not set, a no-op logger is used that discards all messages.
//
// Parameters:
//   - logger: The logger implementation
//
// Returns:
//   - Option: Configuration option
func WithLogger(logger types.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMailer sets the outbound mail sender used for notification side
// effects.
//
// If not set, a no-op sender is used that discards all messages.
//
// Parameters:
//   - mailer: The sender implementation
//
// Returns:
//   - Option: Configuration option
func WithMailer(mailer mail.Sender) Option {
	return func(c *config) {
		c.mailer = mailer
	}
}

// WithTokenDecoder sets the bearer-claims decoder exposed to the HTTP
// adapter through App.Decoder.
//
// Parameters:
//   - decoder: The decoder implementation
//
// Returns:
//   - Option: Configuration option
func WithTokenDecoder(decoder auth.Decoder) Option {
	return func(c *config) {
		c.decoder = decoder
	}
}
