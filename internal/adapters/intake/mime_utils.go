package intake

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
)

var headerDecoder = &mime.WordDecoder{}

// decodeHeader decodes RFC 2047 encoded words, returning the raw value on failure
func decodeHeader(value string) string {
	decoded, err := headerDecoder.DecodeHeader(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}

// extractPostingBody returns the page carried by a message. A text/html part
// is preferred over text/plain anywhere in the MIME tree.
func extractPostingBody(msg *mail.Message) (string, error) {
	htmlBody, textBody, err := walkPart(textproto.MIMEHeader(msg.Header), msg.Body)
	if err != nil {
		return "", err
	}
	if htmlBody != "" {
		return htmlBody, nil
	}
	return textBody, nil
}

// walkPart collects the first html and first plain text body below a part
func walkPart(header textproto.MIMEHeader, body io.Reader) (string, string, error) {
	mediaType, params, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil {
		// Missing or broken Content-Type is treated as plain text
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return "", "", fmt.Errorf("multipart message without boundary")
		}
		return walkMultipart(multipart.NewReader(body, boundary))
	}

	if !strings.HasPrefix(mediaType, "text/") {
		return "", "", nil
	}

	content, err := io.ReadAll(decodeTransfer(header.Get("Content-Transfer-Encoding"), body))
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s part: %w", mediaType, err)
	}

	if mediaType == "text/html" {
		return string(content), "", nil
	}
	return "", string(content), nil
}

func walkMultipart(mr *multipart.Reader) (string, string, error) {
	var htmlBody, textBody string

	for {
		// NextRawPart keeps the transfer encoding so decodeTransfer sees it
		part, err := mr.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if htmlBody != "" || textBody != "" {
				break
			}
			return "", "", fmt.Errorf("failed to read MIME part: %w", err)
		}

		h, t, err := walkPart(part.Header, part)
		if err != nil {
			continue
		}
		if htmlBody == "" {
			htmlBody = h
		}
		if textBody == "" {
			textBody = t
		}
	}

	return htmlBody, textBody, nil
}

func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}

// messageID strips the angle brackets around a Message-ID
func messageID(value string) string {
	return strings.Trim(strings.TrimSpace(value), "<>")
}

// readMessage parses raw message bytes
func readMessage(raw []byte) (*mail.Message, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}
	return msg, nil
}
