// services/mail_service.go
package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"gymstar/internal/config"
)

type IMailService interface {
	SendSubscriptionReceipt(ctx context.Context, to string, receipt Receipt) error
}

// Receipt is the customer facing summary of one completed payment.
type Receipt struct {
	CustomerName string
	PlanName     string
	StartDate    time.Time
	ExpiryDate   time.Time
	Subtotal     string
	Discount     string
	Total        string
	Promocode    string
	Extended     bool
	Reference    string
}

type smtpMailService struct {
	cfg     config.SMTPConfig
	log     *zap.Logger
	dialer  *gomail.Dialer
	htmlTpl *template.Template
	textTpl *texttemplate.Template
}

// NewMailService returns a gomail backed sender, or a sender that only logs
// when no SMTP host is configured.
func NewMailService(cfg config.SMTPConfig, log *zap.Logger) IMailService {
	if cfg.Host == "" {
		log.Warn("SMTP host not configured, receipts will be logged only")
		return &logOnlyMailService{log: log}
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	d.SSL = cfg.Port == 465

	return &smtpMailService{
		cfg:     cfg,
		log:     log,
		dialer:  d,
		htmlTpl: template.Must(template.New("receiptHTML").Parse(receiptHTMLTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("receiptText").Parse(receiptTextTemplate)),
	}
}

type receiptView struct {
	Receipt
	AppName string
	Start   string
	Expiry  string
	Year    int
}

func (s *smtpMailService) SendSubscriptionReceipt(ctx context.Context, to string, r Receipt) error {
	subject := fmt.Sprintf("Your %s membership is confirmed", r.PlanName)
	if r.Extended {
		subject = fmt.Sprintf("Your %s membership has been extended", r.PlanName)
	}

	view := receiptView{
		Receipt: r,
		AppName: s.cfg.FromName,
		Start:   r.StartDate.Format("02 Jan 2006"),
		Expiry:  r.ExpiryDate.Format("02 Jan 2006"),
		Year:    time.Now().Year(),
	}

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, view); err != nil {
		return fmt.Errorf("render receipt html: %w", err)
	}
	if err := s.textTpl.Execute(&tb, view); err != nil {
		return fmt.Errorf("render receipt text: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", tb.String())
	m.AddAlternative("text/html", hb.String())

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send receipt to %s: %w", to, err)
	}
	s.log.Info("receipt sent", zap.String("to", to), zap.String("reference", r.Reference))
	return nil
}

type logOnlyMailService struct {
	log *zap.Logger
}

func (l *logOnlyMailService) SendSubscriptionReceipt(_ context.Context, to string, r Receipt) error {
	l.log.Info("receipt (not sent)",
		zap.String("to", to),
		zap.String("plan", r.PlanName),
		zap.String("total", r.Total),
		zap.String("reference", r.Reference),
	)
	return nil
}

const receiptHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.PlanName}}</title>
  <style>
    body { margin: 0; padding: 0; background: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #1e293b; border-radius: 16px; overflow: hidden; }
    .header { padding: 24px 32px; color: #f97316; font-weight: 700; font-size: 22px; text-transform: uppercase; }
    .hero { padding: 8px 32px 32px; color: #e2e8f0; }
    h1 { font-size: 24px; margin: 0 0 16px; color: #f1f5f9; }
    table { width: 100%; border-collapse: collapse; }
    td { padding: 8px 0; border-bottom: 1px solid rgba(148, 163, 184, 0.15); color: #cbd5e1; }
    td.value { text-align: right; color: #f1f5f9; }
    .total td { font-weight: 700; color: #f97316; border-bottom: none; }
    .footer { padding: 16px 32px; color: #64748b; font-size: 13px; text-align: center; background: #1a2332; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h1>Hi {{.CustomerName}}, thanks for your payment!</h1>
      <table>
        <tr><td>Plan</td><td class="value">{{.PlanName}}{{if .Extended}} (extension){{end}}</td></tr>
        <tr><td>Starts</td><td class="value">{{.Start}}</td></tr>
        <tr><td>Expires</td><td class="value">{{.Expiry}}</td></tr>
        <tr><td>Subtotal</td><td class="value">{{.Subtotal}}</td></tr>
        <tr><td>Discount</td><td class="value">{{.Discount}}%</td></tr>
        <tr><td>Promocode</td><td class="value">{{.Promocode}}</td></tr>
        <tr class="total"><td>Total paid</td><td class="value">{{.Total}}</td></tr>
      </table>
    </div>
    <div class="footer">Reference {{.Reference}} &middot; © {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const receiptTextTemplate = `Hi {{.CustomerName}}, thanks for your payment!

Plan:       {{.PlanName}}{{if .Extended}} (extension){{end}}
Starts:     {{.Start}}
Expires:    {{.Expiry}}
Subtotal:   {{.Subtotal}}
Discount:   {{.Discount}}%
Promocode:  {{.Promocode}}
Total paid: {{.Total}}

Reference {{.Reference}}
{{.AppName}} (c) {{.Year}}
`
