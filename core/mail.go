package core

import (
	"bytes"
	"net/mail"
	texttmpl "text/template"
)

type (
	// EmailMessage is a text/plain email. When Body is empty, it is rendered from Template and Data.
	EmailMessage struct {
		To       []mail.Address
		Subject  string
		Body     string
		Template *texttmpl.Template
		Data     interface{}
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*EmailMessage)
	}
)

func (m *EmailMessage) Render() error {
	if m.Body != "" || m.Template == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := m.Template.Execute(&buf, m.Data); err != nil {
		return err
	}
	m.Body = buf.String()
	return nil
}

// Ready reports whether the message has somewhere to go and something to say.
func (m *EmailMessage) Ready() bool {
	return len(m.To) > 0 && m.Body != ""
}
