package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"tekmakon-site/handler"
	"tekmakon-site/internal/config"
	"tekmakon-site/internal/domain"
	"tekmakon-site/internal/integrations/mailtrap"
	"tekmakon-site/internal/integrations/paramstore"
	"tekmakon-site/internal/knowledge"
	"tekmakon-site/internal/usecase"
)

// NewHandler wires the services behind the site API from cfg. It is shared by
// the Lambda entrypoint and the local dev server.
func NewHandler(ctx context.Context, cfg config.Config, log *slog.Logger) (*handler.Handler, error) {
	tokens, err := tokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mailer, err := mailtrap.NewClient(tokens,
		mailtrap.WithBaseURL(cfg.MailtrapBaseURL),
		mailtrap.WithHTTPClient(&http.Client{Timeout: cfg.MailTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create mailtrap client: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	contact, err := usecase.NewContactService(mailer, usecase.ContactConfig{
		From:     domain.Address{Email: cfg.MailFromAddress, Name: cfg.MailFromName},
		To:       domain.Address{Email: cfg.MailToAddress},
		Category: cfg.MailCategory,
		Location: loc,
	})
	if err != nil {
		return nil, fmt.Errorf("create contact service: %w", err)
	}

	matcher, err := knowledge.NewMatcher(knowledge.DefaultEntries(), knowledge.Fallback)
	if err != nil {
		return nil, fmt.Errorf("build knowledge matcher: %w", err)
	}
	chat, err := usecase.NewChatService(matcher, cfg.ChatMinLatency)
	if err != nil {
		return nil, fmt.Errorf("create chat service: %w", err)
	}

	return handler.NewHandler(chat, contact,
		handler.WithLogger(log),
		handler.WithAllowedOrigin(cfg.AllowedOrigin),
	)
}

func tokenSource(ctx context.Context, cfg config.Config) (mailtrap.TokenSource, error) {
	if !cfg.UseParamStore() {
		return mailtrap.StaticToken(cfg.MailtrapToken), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		return nil, fmt.Errorf("create SSM client: %w", err)
	}
	return mailtrap.ParamStoreToken(ssmClient, cfg.TokenParameter()), nil
}
