package email

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

var (
	ErrUnknownAction   = errors.New("unknown email action type")
	ErrUnknownTemplate = errors.New("unknown email template")
)

//go:embed templates/layout.html
var layoutHTML string

var layout = template.Must(template.New("layout").Parse(layoutHTML))

type row struct {
	Label string
	Value string
}

type view struct {
	Lang       string
	Subject    string
	Heading    string
	Paragraphs []string
	Rows       []row
	CodeLabel  string
	Code       string
	ButtonText string
	ButtonURL  string
	Footer     string
}

// Rendered is a ready-to-send email body.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// RenderAuth renders the email for an auth action. token is the one-time code shown
// next to the link; it may be empty.
func RenderAuth(locale, action, actionURL, token string) (Rendered, error) {
	locale = NormalizeLocale(locale)
	c, ok := authTexts[locale][action]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	common := commonTexts[locale]
	return render(view{
		Lang:       locale,
		Subject:    c.Subject,
		Heading:    c.Heading,
		Paragraphs: []string{c.Body},
		CodeLabel:  common.CodeLabel,
		Code:       token,
		ButtonText: c.Button,
		ButtonURL:  actionURL,
		Footer:     common.Footer,
	})
}

// RenderTransactional renders a named template with the caller's data. Fields absent
// from data are left out.
func RenderTransactional(locale, name, subject string, data map[string]any, buttonURL string) (Rendered, error) {
	locale = NormalizeLocale(locale)
	c, ok := transactionalTexts[locale][name]
	if !ok {
		return Rendered{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}

	v := view{
		Lang:       locale,
		Subject:    c.Subject,
		Heading:    c.Heading,
		Paragraphs: []string{c.Intro},
		ButtonText: c.Button,
		ButtonURL:  buttonURL,
		Footer:     commonTexts[locale].Footer,
	}
	if subject != "" {
		v.Subject = subject
	}
	if customer := stringValue(data, "customerName"); customer != "" {
		v.Heading += ", " + customer
	}
	for _, f := range c.Fields {
		if val, ok := data[f.Key]; ok {
			if s := formatValue(f.Key, val); s != "" {
				v.Rows = append(v.Rows, row{Label: f.Label, Value: s})
			}
		}
	}
	if name == TemplateGiftCard {
		v.CodeLabel = giftCodeLabel(locale)
		v.Code = stringValue(data, "code")
	}
	return render(v)
}

func render(v view) (Rendered, error) {
	var buf bytes.Buffer
	if err := layout.Execute(&buf, v); err != nil {
		return Rendered{}, fmt.Errorf("render email: %w", err)
	}
	return Rendered{Subject: v.Subject, HTML: buf.String(), Text: plainText(v)}, nil
}

func plainText(v view) string {
	var sb strings.Builder
	sb.WriteString(v.Heading + "\n\n")
	for _, p := range v.Paragraphs {
		sb.WriteString(p + "\n\n")
	}
	for _, r := range v.Rows {
		sb.WriteString(r.Label + ": " + r.Value + "\n")
	}
	if v.Code != "" {
		sb.WriteString("\n" + v.CodeLabel + " " + v.Code + "\n")
	}
	if v.ButtonURL != "" {
		sb.WriteString("\n" + v.ButtonText + ": " + v.ButtonURL + "\n")
	}
	sb.WriteString("\n" + v.Footer + "\n")
	return sb.String()
}

func giftCodeLabel(locale string) string {
	if locale == LocaleEnglish {
		return "Your code:"
	}
	return "Din kode:"
}

func stringValue(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func formatValue(key string, val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if key == "amount" || key == "totalPrice" {
			return strconv.FormatFloat(v, 'f', -1, 64) + " kr."
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, p := range v {
			parts = append(parts, fmt.Sprint(p))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}
