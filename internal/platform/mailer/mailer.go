// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer implements the outbound notification gateway over SMTP.

It renders and delivers transactional mail (currently only the OTP
verification message) using the go-mail client.

Architecture:

  - Contract: Domain services depend on a one-method send interface they
    declare themselves; this package provides the concrete SMTP sender.
  - Rendering: The OTP message body is rendered from an embedded HTML template.
  - Delivery: Synchronous DialAndSend within the request that triggered it.
*/
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
)

// otpTemplate is the HTML body for OTP verification mail. The code expires
// five minutes after generation; the copy must match that window.
const otpTemplate = `<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1a1a2e;">
    <h2>Your Worklink verification code</h2>
    <p>Use the code below to verify your email address.</p>
    <p style="font-size: 32px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
    <p>The code is valid for 5 minutes. If you did not request it, you can ignore this email.</p>
  </body>
</html>`

var otpBody = template.Must(template.New("otp").Parse(otpTemplate))

// Config holds the SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// SMTPMailer delivers transactional mail via an SMTP relay.
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer validates the transport settings and returns a ready sender.
func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer: SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mailer: from address is required")
	}

	return &SMTPMailer{cfg: cfg}, nil
}

/*
SendOTP renders the verification template and delivers it to the recipient.

Parameters:
  - context: context.Context
  - recipient: string (Destination email address)
  - code: string (6-digit verification code)

Returns:
  - error: Rendering or SMTP delivery failures
*/
func (mailer *SMTPMailer) SendOTP(context context.Context, recipient, code string) error {

	// Render the HTML body
	var body bytes.Buffer
	if err := otpBody.Execute(&body, struct{ Code string }{Code: code}); err != nil {
		return fmt.Errorf("mailer: failed to render OTP body: %w", err)
	}

	return mailer.send(context, recipient, "Your Worklink verification code", body.String())
}

// send delivers a single HTML message over SMTP.
func (mailer *SMTPMailer) send(context context.Context, to, subject, htmlBody string) error {
	message := mail.NewMsg()

	if mailer.cfg.FromName != "" {
		if err := message.FromFormat(mailer.cfg.FromName, mailer.cfg.From); err != nil {
			return fmt.Errorf("mailer: invalid from address: %w", err)
		}
	} else {
		if err := message.From(mailer.cfg.From); err != nil {
			return fmt.Errorf("mailer: invalid from address: %w", err)
		}
	}

	if err := message.To(to); err != nil {
		return fmt.Errorf("mailer: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(mail.TypeTextHTML, htmlBody)

	// Build client options
	options := []mail.Option{
		mail.WithPort(mailer.cfg.Port),
	}

	if mailer.cfg.UseTLS {
		options = append(options, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS (SSL) for port 465, STARTTLS otherwise.
		if mailer.cfg.Port == 465 {
			options = append(options, mail.WithSSL())
		}
	} else {
		options = append(options, mail.WithTLSPolicy(mail.NoTLS))
	}

	if mailer.cfg.Username != "" && mailer.cfg.Password != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(mailer.cfg.Username),
			mail.WithPassword(mailer.cfg.Password),
		)
	}

	client, err := mail.NewClient(mailer.cfg.Host, options...)
	if err != nil {
		return fmt.Errorf("mailer: failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(context, message); err != nil {
		return fmt.Errorf("mailer: failed to send message: %w", err)
	}

	return nil
}
