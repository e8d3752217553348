// Package email defines the outbound message model, recipient parsing and
// validation, and RFC 5322 rendering of the plain-text message.
package email

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/sewoong/mailbridge/internal/mailer"
)

// Message represents a single outbound email. It exists only for the
// duration of one send.
type Message struct {
	From    string
	To      []string
	Cc      []string
	Subject string
	Body    string
}

// Validate checks the message before any network activity: at least one To
// recipient, every address syntactically valid, and no header-bound value
// carrying an embedded CR or LF.
func (m *Message) Validate() error {
	if len(m.To) == 0 {
		return &mailer.ValidationError{Reason: "no valid recipients in 'to' field"}
	}
	if err := checkHeaderSafe("subject", m.Subject); err != nil {
		return err
	}
	if err := checkHeaderSafe("from", m.From); err != nil {
		return err
	}
	if err := ValidateAddresses(m.To); err != nil {
		return err
	}
	if err := ValidateAddresses(m.Cc); err != nil {
		return err
	}
	return nil
}

// Recipients returns the envelope recipients: the To list followed by the
// Cc list, order preserved.
func (m *Message) Recipients() []string {
	all := make([]string, 0, len(m.To)+len(m.Cc))
	all = append(all, m.To...)
	all = append(all, m.Cc...)
	return all
}

// Render produces the RFC 5322 wire form of the message: headers with CRLF
// line endings, the Cc header omitted when empty, and the body verbatim.
func (m *Message) Render() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(m.To, ", "))
	if len(m.Cc) > 0 {
		fmt.Fprintf(&buf, "Cc: %s\r\n", strings.Join(m.Cc, ", "))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n")
	fmt.Fprintf(&buf, "\r\n")
	buf.WriteString(m.Body)

	return buf.Bytes()
}

// checkHeaderSafe rejects values that would allow header injection.
func checkHeaderSafe(field, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return &mailer.ValidationError{
			Reason: fmt.Sprintf("%s must not contain line breaks", field),
		}
	}
	return nil
}
