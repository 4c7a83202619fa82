package service

import (
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	messages []*MailMessage
	fail     error
}

func (r *recordingSender) Send(msg *MailMessage) error {
	if r.fail != nil {
		return r.fail
	}
	r.messages = append(r.messages, msg)
	return nil
}

func TestLearnerCredentialsMail(t *testing.T) {
	sender := &recordingSender{}
	svc := NewMailService(&config.Config{
		Mail: config.MailConfig{Driver: "console", LoginURL: "http://localhost:3000/login"},
	})
	svc.Sender = sender

	learner := &model.User{Name: "Lea", LastName: "Rner", Email: "lea@x.com"}
	tutor := &model.User{Name: "Tu", LastName: "Tor"}

	require.NoError(t, svc.SendLearnerCredentials(learner, "Temp0rary!pw", tutor))
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, "lea@x.com", msg.ToEmail)
	assert.Contains(t, msg.HTMLBody, "Temp0rary!pw")
	assert.Contains(t, msg.HTMLBody, "Tu Tor")
	assert.Contains(t, msg.HTMLBody, "http://localhost:3000/login")
}

func TestAccountUpdatedMailVariants(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestMail()
	svc.Sender = sender

	user := &model.User{Name: "Ada", LastName: "L", Email: "a@x.com"}

	require.NoError(t, svc.SendAccountUpdated(user, true))
	require.NoError(t, svc.SendAccountUpdated(user, false))
	require.Len(t, sender.messages, 2)

	assert.Equal(t, "Your password has been updated", sender.messages[0].Subject)
	assert.Contains(t, sender.messages[0].HTMLBody, "password has been updated")
	assert.Contains(t, sender.messages[1].HTMLBody, "account information has been updated")
}

func TestNotifyNeverPropagatesFailure(t *testing.T) {
	sender := &recordingSender{fail: assert.AnError}
	svc := newTestMail()
	svc.Sender = sender

	user := &model.User{Name: "Ada", LastName: "L", Email: "a@x.com"}
	sent := notify(func() error { return svc.SendWelcome(user) }, "welcome", user.Email)
	assert.False(t, sent)
}
