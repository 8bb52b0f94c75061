package intake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func TestExtractPostingBody(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain without content type",
			raw:  "Subject: Stelle\n\nKontakt: jobs@firma.de\n",
			want: "Kontakt: jobs@firma.de\r\n",
		},
		{
			name: "quoted printable html",
			raw: "Content-Type: text/html; charset=utf-8\n" +
				"Content-Transfer-Encoding: quoted-printable\n\n" +
				"<p>Kontakt: jobs=40firma.de</p>",
			want: "<p>Kontakt: jobs@firma.de</p>",
		},
		{
			name: "alternative prefers html",
			raw: "MIME-Version: 1.0\n" +
				"Content-Type: multipart/alternative; boundary=\"b1\"\n\n" +
				"--b1\n" +
				"Content-Type: text/plain\n\n" +
				"Bewerbung an jobs@firma.de\n" +
				"--b1\n" +
				"Content-Type: text/html\n" +
				"Content-Transfer-Encoding: base64\n\n" +
				"PHA+QmV3ZXJidW5nIGFuIGpvYnNAZmlybWEuZGU8L3A+\n" +
				"--b1--\n",
			want: "<p>Bewerbung an jobs@firma.de</p>",
		},
		{
			name: "nested multipart",
			raw: "Content-Type: multipart/mixed; boundary=outer\n\n" +
				"--outer\n" +
				"Content-Type: multipart/alternative; boundary=inner\n\n" +
				"--inner\n" +
				"Content-Type: text/plain\n\n" +
				"nur text\n" +
				"--inner\n" +
				"Content-Type: text/html\n\n" +
				"<a href=\"mailto:hr@firma.de\">HR</a>\n" +
				"--inner--\n" +
				"--outer\n" +
				"Content-Type: application/pdf\n\n" +
				"%PDF-1.4\n" +
				"--outer--\n",
			want: "<a href=\"mailto:hr@firma.de\">HR</a>",
		},
		{
			name: "plain only multipart",
			raw: "Content-Type: multipart/mixed; boundary=x\n\n" +
				"--x\n" +
				"Content-Type: text/plain\n\n" +
				"jobs@firma.de\n" +
				"--x--\n",
			want: "jobs@firma.de",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := readMessage([]byte(crlf(tt.raw)))
			require.NoError(t, err)

			got, err := extractPostingBody(msg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractPostingBody_MissingBoundary(t *testing.T) {
	msg, err := readMessage([]byte(crlf("Content-Type: multipart/mixed\n\nbody\n")))
	require.NoError(t, err)

	_, err = extractPostingBody(msg)
	assert.Error(t, err)
}

func TestDecodeHeader(t *testing.T) {
	assert.Equal(t, "Müller GmbH", decodeHeader("=?UTF-8?Q?M=C3=BCller_GmbH?="))
	assert.Equal(t, "Firma AG", decodeHeader("  Firma AG "))
	assert.Equal(t, "abc@fetcher", messageID(" <abc@fetcher> "))
}
