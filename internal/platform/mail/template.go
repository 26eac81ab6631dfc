package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	texttemplate "text/template"
)

const resetSubject = "Password reset"

var resetHTML = htmltemplate.Must(htmltemplate.New("reset_html").Parse(`<!DOCTYPE html>
<html>
  <body>
    <p>We received a request to reset the password for your PetCare account.</p>
    <p><a href="{{.Link}}">Reset your password</a></p>
    <p>This link is valid for one hour. If you did not request a reset, you can ignore this email.</p>
  </body>
</html>
`))

var resetText = texttemplate.Must(texttemplate.New("reset_text").Parse(`We received a request to reset the password for your PetCare account.

Reset your password: {{.Link}}

This link is valid for one hour. If you did not request a reset, you can ignore this email.
`))

type resetData struct {
	Link string
}

// resetLink はリセットURLにトークンをクエリパラメータとして付与します。
func resetLink(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid reset url base: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// renderReset はリセットメールのHTML本文とテキスト本文を生成します。
func renderReset(base, token string) (htmlBody, textBody string, err error) {
	link, err := resetLink(base, token)
	if err != nil {
		return "", "", err
	}
	data := resetData{Link: link}

	var h, t bytes.Buffer
	if err := resetHTML.Execute(&h, data); err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}
	if err := resetText.Execute(&t, data); err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}
	return h.String(), t.String(), nil
}
