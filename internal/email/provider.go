package email

import "context"

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет email сообщение
	Send(ctx context.Context, email *Email) error

	// SendTemplate рендерит шаблон и отправляет результат как HTML
	SendTemplate(ctx context.Context, to []string, subject string, templateName string, data TemplateData) error

	// Close закрывает соединение с провайдером
	Close() error
}

// TemplateRenderer определяет интерфейс для рендеринга шаблонов
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
