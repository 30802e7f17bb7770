package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type OrderEmailData struct {
	OrderNumber    string
	CustomerName   string
	Items          []OrderEmailItem
	TotalAmount    float64
	TaxAmount      float64
	ShippingAmount float64
	GrandTotal     float64
	PaymentMethod  string
	RefundNote     string
}

type OrderEmailItem struct {
	Name     string
	Quantity int
	Price    float64
}

type InstallationReminderData struct {
	CustomerName  string
	PublicCode    string
	OrderNumber   string
	ScheduledDate string
	ScheduledTime string
	TeamName      string
	TeamPhone     string
}

// SendOrderConfirmationEmail sends the order receipt (async).
func SendOrderConfirmationEmail(to string, data OrderEmailData) {
	go sendTemplatedEmail(to, "Order confirmed - "+data.OrderNumber, "templates/order_confirmation.html", data)
}

// SendOrderCancelledEmail confirms a cancellation and stock release (async).
func SendOrderCancelledEmail(to string, data OrderEmailData) {
	go sendTemplatedEmail(to, "Order cancelled - "+data.OrderNumber, "templates/order_cancelled.html", data)
}

// SendInstallationReminderEmail reminds the customer a crew arrives tomorrow (async).
func SendInstallationReminderEmail(to string, data InstallationReminderData) {
	go sendTemplatedEmail(to, "Installation reminder - "+data.PublicCode, "templates/installation_reminder.html", data)
}

func sendTemplatedEmail(to, subject, tmplPath string, data any) {
	if to == "" {
		return
	}

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("failed to load email template %s: %v", tmplPath, err)
		return
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		log.Printf("failed to render email template %s: %v", tmplPath, err)
		return
	}

	host := os.Getenv("SMTP_HOST")
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	username := os.Getenv("SMTP_USERNAME")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("failed to send email to %s: %v", to, err)
	}
}
