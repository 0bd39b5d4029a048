package email

import (
	"context"
	"strings"

	"shippertrip_backend/internal/logger"
)

// LogProvider ничего не отправляет, только пишет письмо в лог.
// Используется, когда email.enabled = false.
type LogProvider struct {
	renderer TemplateRenderer
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "Email delivery disabled, message logged",
		"to", strings.Join(email.To, ","),
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) SendTemplate(ctx context.Context, to []string, subject, templateName string, data TemplateData) error {
	if p.renderer != nil {
		if _, err := p.renderer.Render(templateName, data); err != nil {
			return err
		}
	}
	return p.Send(ctx, &Email{To: to, Subject: subject})
}

func (p *LogProvider) Close() error {
	return nil
}
