package services

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type MailServiceInterface interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
	SendAlertEmail(to, subject, body string) error
}

// SMTPConfig holds SMTP and branding settings.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // SMTPS 465; false means STARTTLS 587
	RequireTLS bool

	AppName    string
	AppBaseURL string
}

func SMTPConfigFromEnv() SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return SMTPConfig{
		Host:       os.Getenv("SMTP_HOST"),
		Port:       port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		From:       os.Getenv("SMTP_FROM"),
		FromName:   os.Getenv("SMTP_FROM_NAME"),
		UseSSL:     port == 465,
		RequireTLS: os.Getenv("SMTP_REQUIRE_TLS") == "true",
		AppName:    "comunyCAR",
		AppBaseURL: os.Getenv("APP_BASE_URL"),
	}
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) MailServiceInterface {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("mailHTML").Parse(mailHTMLTemplate)),
		textTpl: template.Must(template.New("mailText").Parse(mailTextTemplate)),
	}
}

func (s *smtpMailService) SendVerificationEmail(to, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	return s.sendTemplated(to, "Confirme seu email", mailData{
		Title:     "Confirme seu email",
		Intro:     "Bem-vindo ao comunyCAR. Clique no botão abaixo para confirmar seu endereço de email. O link expira em 24 horas.",
		ButtonURL: link,
		ButtonTxt: "Confirmar email",
	})
}

func (s *smtpMailService) SendPasswordResetEmail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	return s.sendTemplated(to, "Redefinição de senha", mailData{
		Title:     "Redefinição de senha",
		Intro:     "Recebemos um pedido para redefinir sua senha. Clique no botão abaixo para continuar. Se você não pediu isso, ignore este email.",
		ButtonURL: link,
		ButtonTxt: "Redefinir senha",
	})
}

func (s *smtpMailService) SendAlertEmail(to, subject, body string) error {
	return s.sendTemplated(to, subject, mailData{
		Title: subject,
		Intro: body,
	})
}

type mailData struct {
	Title     string
	Intro     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const mailHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #0f172a; color: #ffffff; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; }
    .wrapper { width: 100%; padding: 40px 16px; box-sizing: border-box; }
    .container { max-width: 600px; margin: 0 auto; background: #1e293b; border-radius: 16px; overflow: hidden; }
    .header { padding: 28px 32px 20px; border-bottom: 1px solid rgba(148, 163, 184, 0.1); }
    .brand { font-weight: 700; letter-spacing: 0.5px; font-size: 22px; color: #60a5fa; }
    .hero { padding: 36px 32px; }
    h1 { margin: 0 0 16px; font-size: 26px; color: #f1f5f9; line-height: 1.3; }
    p { margin: 0 0 20px; line-height: 1.7; color: #cbd5e1; font-size: 16px; }
    .btn { display: inline-block; padding: 14px 28px; background: #2563eb; color: #ffffff !important; text-decoration: none; border-radius: 12px; font-weight: 600; }
    .muted { color: #94a3b8; font-size: 13px; line-height: 1.6; margin: 0; }
    .link-text { color: #60a5fa; word-break: break-all; font-size: 13px; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px; text-align: center; border-top: 1px solid rgba(148, 163, 184, 0.1); }
  </style>
</head>
<body>
  <div class="wrapper">
    <div class="container">
      <div class="header"><div class="brand">{{.AppName}}</div></div>
      <div class="hero">
        <h1>{{.Title}}</h1>
        <p>{{.Intro}}</p>
        {{if .ButtonURL}}
          <p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
          <p class="muted">Se o botão não funcionar, copie e cole este link no navegador:</p>
          <a href="{{.ButtonURL}}" class="link-text">{{.ButtonURL}}</a>
        {{end}}
      </div>
      <div class="footer">© {{.Year}} {{.AppName}}</div>
    </div>
  </div>
</body>
</html>`

const mailTextTemplate = `{{.Title}}

{{.Intro}}

{{if .ButtonURL}}Abra este link:
{{.ButtonURL}}
{{end}}

-- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) sendTemplated(to, subject string, data mailData) error {
	data.AppName = s.cfg.AppName
	data.Year = time.Now().Year()

	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.send(to, subject, hb.String(), tb.String())
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", encodeHeader(subject))
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS, implicit TLS
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		return s.transmit(c, auth, to, msg.Bytes())
	}

	// STARTTLS path
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}

	return s.transmit(c, auth, to, msg.Bytes())
}

func (s *smtpMailService) transmit(c *smtp.Client, auth smtp.Auth, to string, msg []byte) error {
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", encodeHeader(name), s.cfg.From)
}

// encodeHeader applies RFC 2047 encoding when the value carries non-ASCII
// characters, which Portuguese subjects usually do.
func encodeHeader(v string) string {
	for i := 0; i < len(v); i++ {
		if v[i] > 127 {
			return fmt.Sprintf("=?UTF-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(v)))
		}
	}
	return v
}
