package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-arcana/internal/messaging"
	"github.com/pixil98/go-errors"
)

const natsTokenEnv = "ARCANA_NATS_TOKEN"

// NatsConfig configures the embedded bus the chat front end talks to.
type NatsConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
	// Token, when set, is required of every client. ARCANA_NATS_TOKEN
	// overrides it so the secret can stay out of the config file.
	Token string `json:"token,omitempty"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing start_timeout: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("start_timeout must be positive"))
		}
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("port %d out of range", n.Port))
	}
	if n.Host != "" && n.Host != "127.0.0.1" && n.Host != "localhost" && n.token() == "" {
		el.Add(fmt.Errorf("a token is required when nats listens on %s", n.Host))
	}

	return el.Err()
}

func (n *NatsConfig) token() string {
	if t := os.Getenv(natsTokenEnv); t != "" {
		return t
	}
	return n.Token
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}
	if t := n.token(); t != "" {
		opts = append(opts, messaging.WithToken(t))
	}

	return messaging.NewNatsServer(opts...)
}
