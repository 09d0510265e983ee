package intelligence

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"beautyboosters/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type stubGenerator struct {
	out    string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func TestCleanTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Brudestyling i Aarhus  \n", "Brudestyling i Aarhus"},
		{`"Firmaevent med makeup"`, "Firmaevent med makeup"},
		{"“Festmakeup til gallafest”", "Festmakeup til gallafest"},
		{"Titel\nForklaring: bla bla", "Titel"},
		{strings.Repeat("æ", 80), strings.Repeat("æ", 50)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CleanTitle(tc.in))
	}
}

func TestGenerate(t *testing.T) {
	gen := &stubGenerator{out: "\"Bryllupsmakeup i København\"\n"}
	svc := NewTitleService(gen, nil)

	title, err := svc.Generate(context.Background(), models.JobTitleRequest{
		Services:   []string{"Makeup", " Hår "},
		Location:   "København",
		ClientType: models.ClientBusiness,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bryllupsmakeup i København", title)
	assert.Contains(t, gen.prompt, "Ydelser: Makeup, Hår")
	assert.Contains(t, gen.prompt, "Sted: København")
	assert.Contains(t, gen.prompt, "virksomhed")
}

func TestGenerate_NoServices(t *testing.T) {
	svc := NewTitleService(&stubGenerator{out: "x"}, nil)
	_, err := svc.Generate(context.Background(), models.JobTitleRequest{Services: []string{" "}})
	assert.ErrorIs(t, err, ErrNoServices)
}

func TestGenerate_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"googleapi 429", &googleapi.Error{Code: http.StatusTooManyRequests}, ErrRateLimited},
		{"googleapi 402", &googleapi.Error{Code: http.StatusPaymentRequired}, ErrBillingRequired},
		{"billing message", errors.New("FAILED_PRECONDITION: billing account not enabled"), ErrBillingRequired},
		{"rate message", errors.New("rpc error: code = RESOURCE_EXHAUSTED"), ErrRateLimited},
		{"429 quota message", errors.New("googleapi: Error 429: Quota exceeded for metric generate_content_requests"), ErrRateLimited},
		{"quota without 429", errors.New("monthly quota used up, upgrade your plan"), ErrBillingRequired},
		{"other", errors.New("connection reset"), ErrGeneration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewTitleService(&stubGenerator{err: tc.err}, nil)
			_, err := svc.Generate(context.Background(), models.JobTitleRequest{Services: []string{"Makeup"}})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerate_EmptyOutput(t *testing.T) {
	svc := NewTitleService(&stubGenerator{out: "  \"\" "}, nil)
	_, err := svc.Generate(context.Background(), models.JobTitleRequest{Services: []string{"Makeup"}})
	assert.ErrorIs(t, err, ErrGeneration)
}
