package email

import (
	"strings"
	"time"
)

const (
	defaultSMTPPort = 587
	defaultFromName = "ShipperTrip"
	defaultTimeout  = 30 * time.Second
)

// SMTPConfig - параметры SMTP для писем об алертах
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// NewSMTPConfig собирает конфиг из секции email. Порт 0 значит 587,
// пустое имя отправителя - ShipperTrip, а без from_email письма уходят от имени логина.
func NewSMTPConfig(host string, port int, username, password, fromEmail, fromName string) *SMTPConfig {
	cfg := &SMTPConfig{
		Host:      strings.TrimSpace(host),
		Port:      port,
		Username:  username,
		Password:  password,
		FromEmail: strings.TrimSpace(fromEmail),
		FromName:  strings.TrimSpace(fromName),
		Timeout:   defaultTimeout,
	}
	if cfg.Port == 0 {
		cfg.Port = defaultSMTPPort
	}
	if cfg.FromName == "" {
		cfg.FromName = defaultFromName
	}
	if cfg.FromEmail == "" && strings.Contains(cfg.Username, "@") {
		cfg.FromEmail = cfg.Username
	}
	return cfg
}
