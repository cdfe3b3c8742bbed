package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"gopkg.in/gomail.v2"

	"github.com/CuCryptos/cruise-photos/config"
)

// DownloadLink pairs a purchased photo with its redeemable token.
type DownloadLink struct {
	PhotoID uint
	Token   string
}

// SMTPMailer sends the guest-facing HTML emails and the admin summary.
// SMTP settings are read from the environment at send time.
type SMTPMailer struct {
	AppURL      string
	TemplateDir string
}

func NewSMTPMailer() *SMTPMailer {
	appURL := config.Config("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}
	return &SMTPMailer{AppURL: appURL, TemplateDir: "templates"}
}

type downloadLinkView struct {
	Label string
	URL   string
}

type orderConfirmationView struct {
	OrderID uint
	Total   string
	Links   []downloadLinkView
}

// SendOrderConfirmation mails the receipt plus one download link per item.
func (m *SMTPMailer) SendOrderConfirmation(to string, orderID uint, totalCents int64, links []DownloadLink) error {
	data := orderConfirmationView{
		OrderID: orderID,
		Total:   fmt.Sprintf("$%.2f", float64(totalCents)/100),
		Links:   m.linkViews(links),
	}
	return m.sendHTML(to, "Your Cruise Photos - Download Ready!", "order_confirmation.html", data)
}

// SendDownloadRecovery re-sends the download links for a paid order.
func (m *SMTPMailer) SendDownloadRecovery(to string, links []DownloadLink) error {
	data := struct{ Links []downloadLinkView }{Links: m.linkViews(links)}
	return m.sendHTML(to, "Your Cruise Photos - Download Links", "download_recovery.html", data)
}

// SendGalleryAccess invites a guest to their table's gallery.
func (m *SMTPMailer) SendGalleryAccess(to, accessCode, cruiseName, tableNumber string) error {
	data := struct {
		CruiseName  string
		TableNumber string
		AccessCode  string
		GalleryURL  string
	}{
		CruiseName:  cruiseName,
		TableNumber: tableNumber,
		AccessCode:  accessCode,
		GalleryURL:  m.AppURL + "/gallery/" + accessCode,
	}
	return m.sendHTML(to, fmt.Sprintf("Your %s Photos Are Ready!", cruiseName), "gallery_access.html", data)
}

func (m *SMTPMailer) linkViews(links []DownloadLink) []downloadLinkView {
	views := make([]downloadLinkView, 0, len(links))
	for i, link := range links {
		views = append(views, downloadLinkView{
			Label: fmt.Sprintf("Download Photo %d", i+1),
			URL:   m.AppURL + "/download/" + link.Token,
		})
	}
	return views
}

func (m *SMTPMailer) sendHTML(to, subject, templateName string, data any) error {
	tmpl, err := template.ParseFiles(m.TemplateDir + "/" + templateName)
	if err != nil {
		return fmt.Errorf("load email template %s: %w", templateName, err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render email template %s: %w", templateName, err)
	}

	host := config.Config("SMTP_HOST")
	port, _ := strconv.Atoi(config.Config("SMTP_PORT"))
	username := config.Config("SMTP_USERNAME")
	password := config.Config("SMTP_PASSWORD")
	from := config.Config("SMTP_FROM")

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	d := gomail.NewDialer(host, port, username, password)
	return d.DialAndSend(msg)
}

// SendDailySummary mails the plain-text sales rollup to the admin inbox.
func (m *SMTPMailer) SendDailySummary(to, body string) error {
	host := config.Config("SMTP_HOST")
	port := config.Config("SMTP_PORT")
	username := config.Config("SMTP_USERNAME")
	password := config.Config("SMTP_PASSWORD")

	e := email.NewEmail()
	e.From = config.Config("SMTP_FROM")
	e.To = []string{to}
	e.Subject = "Cruise Photos - daily sales summary"
	e.Text = []byte(body)
	return e.Send(host+":"+port, smtp.PlainAuth("", username, password, host))
}
