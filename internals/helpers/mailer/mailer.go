package mailer

import (
	"crypto/tls"
	"errors"
	"io"
	"log"
	"strings"

	"salonku_backend/internals/configs"

	"gopkg.in/gomail.v2"
)

// Attachment is an in-memory file sent along with a message.
type Attachment struct {
	Name string
	Data []byte
}

type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Sender delivers one message; Mailer is the SMTP implementation.
type Sender interface {
	Send(msg Message) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

var ErrNoRecipient = errors.New("mailer: no recipient")

// NewFromEnv returns nil when MAIL_HOST is not configured.
func NewFromEnv() *Mailer {
	host := configs.GetEnv("MAIL_HOST")
	if host == "" {
		log.Println("[INFO] MAIL_HOST not set, email notifications disabled")
		return nil
	}
	user := configs.GetEnv("MAIL_USER")
	d := gomail.NewDialer(host, configs.GetEnvInt("MAIL_PORT", 587), user, configs.GetEnv("MAIL_PASS"))
	if configs.GetEnvBool("MAIL_INSECURE_TLS", false) {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Mailer{dialer: d, from: configs.GetEnv("MAIL_FROM", user)}
}

func (m *Mailer) Send(msg Message) error {
	msgs := build(m.from, msg)
	if len(msgs) == 0 {
		return ErrNoRecipient
	}
	return m.dialer.DialAndSend(msgs...)
}

func build(from string, msg Message) []*gomail.Message {
	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 {
		return nil
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", to...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	for _, a := range msg.Attachments {
		data := a.Data
		gm.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}
	return []*gomail.Message{gm}
}
