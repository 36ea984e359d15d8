package templates

import (
	"time"

	"github.com/oksasatya/go-finances/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithFavored(name, taxNumber string) Option {
	return func(d *EmailData) {
		d.FavoredName = name
		d.FavoredTaxNumber = taxNumber
	}
}

// NewBaseEmailData fills the common fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ string, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:    cfg.LogoURL,
		SupportURL: cfg.SupportURL,
		PrivacyURL: cfg.PrivacyURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(cfg, Welcome, name, email, opts...))
}

func NewFavoredRegisteredData(cfg *config.Config, name, email, favoredName, taxNumber string, opts ...Option) map[string]any {
	opts = append([]Option{WithFavored(favoredName, taxNumber)}, opts...)
	return ToMap(NewBaseEmailData(cfg, FavoredRegistered, name, email, opts...))
}
