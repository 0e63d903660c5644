package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-consult/config"
)

func TestSendMailDisabled(t *testing.T) {
	config.ExtConfig.Mailer = config.MailerConfig{}
	err := SendMail(context.Background(), Mail{To: "someone@example.org", Subject: "hi"})
	assert.NoError(t, err)
}

func TestSendMail(t *testing.T) {
	var gotSubject string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/send", r.URL.Path)
		assert.Equal(t, "Bearer mail-key", r.Header.Get("Authorization"))
		var body struct {
			Subject string `json:"subject"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotSubject = body.Subject
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"m-1","errcode":0}`))
	}))
	defer srv.Close()
	config.ExtConfig.Mailer = config.MailerConfig{Endpoint: srv.URL, APIKey: "mail-key", From: "team@example.org"}
	defer func() { config.ExtConfig.Mailer = config.MailerConfig{} }()

	err := SendMail(context.Background(), Mail{To: "someone@example.org", Subject: "Project update"})
	require.NoError(t, err)
	assert.Equal(t, "Project update", gotSubject)
}

func TestSendMailRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errcode":422,"errmsg":"bad recipient"}`))
	}))
	defer srv.Close()
	config.ExtConfig.Mailer = config.MailerConfig{Endpoint: srv.URL, APIKey: "mail-key"}
	defer func() { config.ExtConfig.Mailer = config.MailerConfig{} }()

	err := SendMail(context.Background(), Mail{To: "someone@example.org"})
	assert.Error(t, err)
}
