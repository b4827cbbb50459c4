// Package mailer sends transactional email over SMTP. When no SMTP host is
// configured the mailer logs the message instead of sending it, so local
// development works without a mail server.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"mawasim/internal/models"
)

// Config holds SMTP connection details. An empty Host disables sending.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends order and account email to customers.
type Mailer struct {
	cfg Config
}

// New creates a Mailer from the given config.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendOrderConfirmation emails the customer a summary of their placed order.
func (m *Mailer) SendOrderConfirmation(order *models.Order) error {
	if order.CustomerEmail == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", order.CustomerName)
	fmt.Fprintf(&b, "Thank you for your order #%d.\r\n\r\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %s x%d - %.2f\r\n", item.ProductName, item.Quantity, item.TotalPrice)
	}
	fmt.Fprintf(&b, "\r\nSubtotal: %.2f\r\n", order.Subtotal)
	fmt.Fprintf(&b, "Delivery: %.2f\r\n", order.DeliveryFee)
	if order.CouponDiscount > 0 {
		fmt.Fprintf(&b, "Coupon (%s): -%.2f\r\n", order.CouponCode, order.CouponDiscount)
	}
	fmt.Fprintf(&b, "Total: %.2f\r\n\r\n", order.Total)
	fmt.Fprintf(&b, "We will deliver to %s, %s.\r\n", order.Address, order.City)

	subject := fmt.Sprintf("Order #%d confirmed", order.ID)
	return m.send(order.CustomerEmail, subject, b.String())
}

// SendWelcome emails a newly registered customer.
func (m *Mailer) SendWelcome(customer *models.Customer) error {
	body := fmt.Sprintf("Hello %s,\r\n\r\nYour account has been created. Happy shopping!\r\n", customer.Name)
	return m.send(customer.Email, "Welcome to our store", body)
}

func (m *Mailer) send(to, subject, body string) error {
	if m.cfg.Host == "" {
		log.Printf("SMTP disabled, skipping email to %s: %s", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.cfg.From, to, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
