package auth

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/config"
)

var (
	Module = fx.Provide(
		fx.Annotate(
			NewRemoteValidator,
			fx.As(new(TokenValidator)),
		),
	)
)

// TokenValidator decides whether a bearer token may perform protected operations.
type TokenValidator interface {
	IsValid(ctx context.Context, token string) bool
}

// RemoteValidator asks the identity service about every token. Nothing is cached.
type RemoteValidator struct {
	client *resty.Client
	url    string
	logger *zap.SugaredLogger
}

var ErrNoValidationURL = errors.New("token validation URL is required")

func NewRemoteValidator(cfg *config.Config, logger *zap.SugaredLogger) (*RemoteValidator, error) {
	if cfg.TokenValidationURL == "" {
		return nil, ErrNoValidationURL
	}

	client := resty.New().
		SetTimeout(cfg.TokenValidationTimeout).
		SetHeader("Accept", "application/json")

	return &RemoteValidator{
		client: client,
		url:    cfg.TokenValidationURL,
		logger: logger,
	}, nil
}

func (v *RemoteValidator) IsValid(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	resp, err := v.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(v.url)
	if err != nil {
		v.logger.Warnw("token validation request failed", "error", err)
		return false
	}
	if !resp.IsSuccess() {
		v.logger.Debugw("token rejected", "status", resp.StatusCode())
		return false
	}
	return true
}
