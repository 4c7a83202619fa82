package service

import (
	"bytes"
	"fmt"
	"html/template"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// MailMessage is a rendered, ready-to-send notification.
type MailMessage struct {
	ToName   string
	ToEmail  string
	Subject  string
	HTMLBody string
	Template string
}

// EmailSender delivers a single message. Mail is best-effort everywhere: the
// caller logs failures and carries on.
type EmailSender interface {
	Send(msg *MailMessage) error
}

// ConsoleSender is the development backend; it only logs the message.
type ConsoleSender struct{}

func (ConsoleSender) Send(msg *MailMessage) error {
	logger.Log.Info("mail (console)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.String("template", msg.Template),
	)
	return nil
}

type SendgridSender struct {
	APIKey    string
	FromName  string
	FromEmail string
}

func (s *SendgridSender) Send(msg *MailMessage) error {
	m := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.FromName, s.FromEmail),
		msg.Subject,
		sgmail.NewEmail(msg.ToName, msg.ToEmail),
		"",
		msg.HTMLBody,
	)

	req := sendgrid.GetRequest(s.APIKey, "/v3/mail/send", "https://api.sendgrid.com")
	req.Method = "POST"
	req.Body = sgmail.GetRequestBody(m)

	res, err := sendgrid.API(req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid returned status %d", res.StatusCode)
	}
	return nil
}

const welcomeTemplate = `
<p>Hi {{.Name}} {{.LastName}},</p>
<p>Your tutor account has been created. You can sign in at
<a href="{{.LoginURL}}">{{.LoginURL}}</a>.</p>
`

const learnerCredentialsTemplate = `
<p>Hi {{.Name}} {{.LastName}},</p>
<p>{{.TutorName}} {{.TutorLastName}} invited you to the learning platform.</p>
<p>Sign in at <a href="{{.LoginURL}}">{{.LoginURL}}</a> with:</p>
<p>Email: {{.Email}}<br>Temporary password: {{.TemporaryPassword}}</p>
<p>Please change the password after your first login.</p>
`

const accountUpdatedTemplate = `
<p>Hi {{.Name}} {{.LastName}},</p>
<p>{{if .PasswordUpdated}}Your password has been updated.{{else}}Your account information has been updated.{{end}}</p>
<p>If this was not you, contact your administrator.</p>
`

type MailService struct {
	Sender EmailSender
	Cfg    *config.MailConfig

	templates map[string]*template.Template
}

func NewMailService(cfg *config.Config) *MailService {
	var sender EmailSender
	if cfg.Mail.Driver == "sendgrid" && cfg.Mail.APIKey != "" {
		sender = &SendgridSender{
			APIKey:    cfg.Mail.APIKey,
			FromName:  cfg.Mail.FromName,
			FromEmail: cfg.Mail.FromEmail,
		}
	} else {
		sender = ConsoleSender{}
	}

	return &MailService{
		Sender: sender,
		Cfg:    &cfg.Mail,
		templates: map[string]*template.Template{
			"welcome":             template.Must(template.New("welcome").Parse(welcomeTemplate)),
			"learner-credentials": template.Must(template.New("learner-credentials").Parse(learnerCredentialsTemplate)),
			"account-updated":     template.Must(template.New("account-updated").Parse(accountUpdatedTemplate)),
		},
	}
}

func (s *MailService) send(name, subject string, user *model.User, data interface{}) error {
	tmpl, ok := s.templates[name]
	if !ok {
		return fmt.Errorf("unknown mail template %q", name)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		monitoring.EmailCounter.WithLabelValues(name, "error").Inc()
		return err
	}

	err := s.Sender.Send(&MailMessage{
		ToName:   user.Name + " " + user.LastName,
		ToEmail:  user.Email,
		Subject:  subject,
		HTMLBody: body.String(),
		Template: name,
	})
	if err != nil {
		monitoring.EmailCounter.WithLabelValues(name, "error").Inc()
		return err
	}

	monitoring.EmailCounter.WithLabelValues(name, "sent").Inc()
	return nil
}

func (s *MailService) SendWelcome(user *model.User) error {
	return s.send("welcome", "Welcome to LMS!", user, map[string]interface{}{
		"Name":     user.Name,
		"LastName": user.LastName,
		"LoginURL": s.Cfg.LoginURL,
	})
}

func (s *MailService) SendLearnerCredentials(learner *model.User, temporaryPassword string, tutor *model.User) error {
	return s.send("learner-credentials", "Welcome to LMS!", learner, map[string]interface{}{
		"Name":              learner.Name,
		"LastName":          learner.LastName,
		"Email":             learner.Email,
		"TemporaryPassword": temporaryPassword,
		"TutorName":         tutor.Name,
		"TutorLastName":     tutor.LastName,
		"LoginURL":          s.Cfg.LoginURL,
	})
}

func (s *MailService) SendAccountUpdated(user *model.User, passwordUpdated bool) error {
	subject := "Your account information has been updated"
	if passwordUpdated {
		subject = "Your password has been updated"
	}
	return s.send("account-updated", subject, user, map[string]interface{}{
		"Name":            user.Name,
		"LastName":        user.LastName,
		"PasswordUpdated": passwordUpdated,
	})
}

// notify fires a best-effort mail and reports whether it went out. Failures
// never abort the surrounding business operation.
func notify(send func() error, what string, email string) bool {
	if err := send(); err != nil {
		logger.Log.Error("failed to send "+what+" email",
			zap.String("to", email),
			zap.Error(err),
		)
		return false
	}
	return true
}
