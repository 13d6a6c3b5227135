package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/tree-d/kiosk_api/dto"
)

// EmailService mails the curators a daily completion digest. SMTP is
// optional; when unconfigured every send is a logged no-op.
type EmailService struct {
	context.DefaultService

	analyticsSvc *AnalyticsService

	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	recipients   []string

	templates map[string]*template.Template
	closed    chan struct{}
}

const EMAIL_SVC = "email_svc"

func (svc EmailService) Id() string {
	return EMAIL_SVC
}

func (svc *EmailService) Configure(ctx *context.Context) error {
	svc.smtpHost = os.Getenv("SMTP_HOST")
	svc.smtpPort = os.Getenv("SMTP_PORT")
	svc.smtpUsername = os.Getenv("SMTP_USERNAME")
	svc.smtpPassword = os.Getenv("SMTP_PASSWORD")
	svc.fromEmail = os.Getenv("FROM_EMAIL")
	svc.fromName = os.Getenv("FROM_NAME")

	// Set defaults if not provided
	if svc.smtpPort == "" {
		svc.smtpPort = "587"
	}
	if svc.fromName == "" {
		svc.fromName = "TreeD Kiosk"
	}

	if raw := os.Getenv("DIGEST_RECIPIENTS"); raw != "" {
		for _, r := range strings.Split(raw, ",") {
			if r = strings.TrimSpace(r); r != "" {
				svc.recipients = append(svc.recipients, r)
			}
		}
	}

	svc.templates = make(map[string]*template.Template)
	svc.closed = make(chan struct{}, 1)

	return svc.DefaultService.Configure(ctx)
}

func (svc *EmailService) Start() error {
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)

	if err := svc.loadTemplates(); err != nil {
		log.WithError(err).Error("Failed to load email templates")
		// Don't fail startup, just log the error
	}

	if len(svc.recipients) > 0 && svc.smtpHost != "" {
		go svc.startDigestJob()
	} else {
		log.Info("Daily digest disabled; SMTP or recipients not configured")
	}

	return nil
}

func (svc *EmailService) Shutdown() {
	svc.closed <- struct{}{}
}

// Email templates
const dailyDigestEmailHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Daily Listening Digest - {{.AppName}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4F46E5; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .summary { background-color: white; padding: 15px; border-radius: 5px; margin: 15px 0; }
        table { width: 100%; border-collapse: collapse; background-color: white; }
        th, td { padding: 8px 12px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background-color: #4F46E5; color: white; }
        .footer { padding: 20px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Daily Listening Digest</h1>
            <p>{{.Date}}</p>
        </div>
        <div class="content">
            <div class="summary">
                <strong>Overall:</strong><br>
                <strong>Total scans:</strong> {{.TotalScans}}<br>
                <strong>Completed listens:</strong> {{.CompletedListens}}<br>
                <strong>Completion rate:</strong> {{printf "%.1f" .OverallRate}}%
            </div>
            <table>
                <tr><th>Artifact</th><th>Language</th><th>Scans</th><th>Completed</th><th>Rate</th></tr>
                {{range .TopPairs}}
                <tr>
                    <td>{{.Artifact}}</td>
                    <td>{{.Language}}</td>
                    <td>{{.TotalScans}}</td>
                    <td>{{.CompletedCount}}</td>
                    <td>{{printf "%.1f" .CompletionRate}}%</td>
                </tr>
                {{end}}
            </table>
        </div>
        <div class="footer">
            <p>&copy; 2025 {{.AppName}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

// Template data structures
type DailyDigestEmailData struct {
	AppName          string
	Date             string
	TotalScans       int64
	CompletedListens int64
	OverallRate      float64
	TopPairs         interface{}
}

// Load email templates
func (svc *EmailService) loadTemplates() error {
	var err error

	svc.templates["daily_digest"], err = template.New("daily_digest").Parse(dailyDigestEmailHTML)
	if err != nil {
		return fmt.Errorf("failed to parse daily digest email template: %v", err)
	}

	return nil
}

// SendDailyDigest folds the current counters and mails the result to every
// configured recipient.
func (svc *EmailService) SendDailyDigest() error {
	if svc.smtpHost == "" {
		log.Warn("SMTP not configured, skipping daily digest")
		return nil
	}

	summary, err := svc.analyticsSvc.CompletionSummary(dto.SourceCounters)
	if err != nil {
		return fmt.Errorf("failed to build digest summary: %v", err)
	}

	rates, err := svc.analyticsSvc.CompletionRates(dto.SourceCounters)
	if err != nil {
		return fmt.Errorf("failed to build digest rates: %v", err)
	}

	top := rates.Rates
	if len(top) > 10 {
		top = top[:10]
	}

	data := DailyDigestEmailData{
		AppName:          "TreeD Kiosk",
		Date:             time.Now().UTC().Format("2006-01-02"),
		TotalScans:       summary.TotalScans,
		CompletedListens: summary.CompletedListens,
		OverallRate:      summary.OverallRate,
		TopPairs:         top,
	}

	subject := fmt.Sprintf("Daily Listening Digest - %s", data.Date)
	for _, to := range svc.recipients {
		if err := svc.sendTemplateEmail(to, subject, "daily_digest", data); err != nil {
			return err
		}
	}

	return nil
}

// Send template email
func (svc *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	tmpl, exists := svc.templates[templateName]
	if !exists {
		return fmt.Errorf("template %s not found", templateName)
	}

	var body bytes.Buffer
	err := tmpl.Execute(&body, data)
	if err != nil {
		return fmt.Errorf("failed to execute template: %v", err)
	}

	return svc.sendEmail(to, subject, body.String())
}

// Send email using SMTP
func (svc *EmailService) sendEmail(to, subject, body string) error {
	if svc.smtpHost == "" {
		return fmt.Errorf("SMTP not configured")
	}

	auth := smtp.PlainAuth("", svc.smtpUsername, svc.smtpPassword, svc.smtpHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		svc.fromName, svc.fromEmail, to, subject, body))

	err := smtp.SendMail(
		svc.smtpHost+":"+svc.smtpPort,
		auth,
		svc.fromEmail,
		[]string{to},
		msg,
	)

	if err != nil {
		log.WithError(err).WithFields(log.Fields{"to": to, "subject": subject}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %v", err)
	}

	log.WithFields(log.Fields{"to": to, "subject": subject}).Info("Email sent successfully")
	return nil
}

// startDigestJob fires the digest once a day.
func (svc *EmailService) startDigestJob() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := svc.SendDailyDigest(); err != nil {
				log.WithError(err).Error("Daily digest failed")
			}
		case <-svc.closed:
			return
		}
	}
}
