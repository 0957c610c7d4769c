// Package mailer delivers notifications through an HTTP mail relay.
//
// The relay accepts one JSON message per request on POST {baseURL}/messages and
// answers 2xx once it has accepted the message. Calls go through a circuit breaker
// so an unavailable relay fails fast instead of holding the dispatch job.
package mailer

import (
	"context"
	"time"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"

	"github.com/go-faster/errors"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var _ ports.MailSender = (*RelayClient)(nil)

// Config configures the relay client.
type Config struct {
	BaseURL string
	Sender  string
	Timeout time.Duration
}

type relayMessage struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	IdempotencyKey string `json:"idempotency_key"`
}

// RelayClient implements ports.MailSender.
type RelayClient struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
	sender  string
	logger  *zap.Logger
}

// NewRelayClient creates a relay client.
func NewRelayClient(cfg Config, logger *zap.Logger) (*RelayClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("mail relay url is required")
	}
	if cfg.Sender == "" {
		return nil, errors.New("mail sender is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mail-relay",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.MailBreakerState.Set(stateValue(to))
			logger.Warn("Mail relay circuit breaker state changed",
				zap.String("circuit", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	metrics.MailBreakerState.Set(stateValue(gobreaker.StateClosed))

	return &RelayClient{
		client:  client,
		breaker: breaker,
		sender:  cfg.Sender,
		logger:  logger,
	}, nil
}

// Send posts the message to the relay. An open breaker fails with gobreaker.ErrOpenState.
func (c *RelayClient) Send(ctx context.Context, msg ports.Message) error {
	if msg.Recipient == "" {
		return errors.New("recipient is required")
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.client.R().
			SetContext(ctx).
			SetBody(relayMessage{
				From:           c.sender,
				To:             msg.Recipient,
				Subject:        msg.Subject,
				Body:           msg.Body,
				IdempotencyKey: msg.Key,
			}).
			Post("/messages")
		if err != nil {
			return nil, errors.Wrap(err, "post message")
		}
		if resp.IsError() {
			return nil, errors.Errorf("mail relay returned status %d: %s", resp.StatusCode(), resp.String())
		}
		return nil, nil
	})
	if err != nil {
		return errors.Wrap(err, "send mail")
	}
	return nil
}

func stateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
