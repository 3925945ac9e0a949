package services

import (
	"log"
	"os"

	"digimarket/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Notifier is the outbound notification contract. Implementations must
// swallow their own failures: registration never rolls back or errors
// because a message could not be sent.
type Notifier interface {
	NotifyWelcome(member *models.Member)
	NotifyReferral(reseller *models.Reseller, member *models.Member)
}

// NotificationService "sends" welcome and referral messages by logging
// them. Real email / WhatsApp delivery would slot in behind the same
// methods; at-most-one attempt, no queue, no retries.
type NotificationService struct {
	printer *message.Printer
}

func NewNotificationService() *NotificationService {
	tag, err := language.Parse(envOr("APP_LOCALE", "en"))
	if err != nil {
		tag = language.English
	}
	return &NotificationService{printer: message.NewPrinter(tag)}
}

// NotifyWelcome delivers the welcome email + WhatsApp message for a newly
// registered member. Fire-and-forget.
func (n *NotificationService) NotifyWelcome(member *models.Member) {
	body := n.welcomeBody(member)
	n.sendEmail(member.Email, "Welcome to our Digital Products Platform", body)
	n.sendWhatsApp(member.WhatsappNumber, body)
}

// NotifyReferral informs the reseller that a member registered under their
// code. Fire-and-forget.
func (n *NotificationService) NotifyReferral(reseller *models.Reseller, member *models.Member) {
	if reseller == nil {
		return
	}
	body := n.referralBody(reseller, member)
	n.sendEmail(reseller.Email, "New Referral Alert", body)
	n.sendWhatsApp(reseller.WhatsappNumber, body)
}

func (n *NotificationService) welcomeBody(member *models.Member) string {
	return n.printer.Sprintf(
		"🎉 Welcome to our Digital Products Platform, %s!\n\n"+
			"Thank you for registering with us. You now have access to our premium digital products.\n\n"+
			"📧 Account Details:\nEmail: %s\nRegistration Date: %s\n\n"+
			"🛍️ Browse our products and start your digital journey today!",
		member.FullName, member.Email, member.CreatedAt.Format("Jan 02, 2006"),
	)
}

func (n *NotificationService) referralBody(reseller *models.Reseller, member *models.Member) string {
	return n.printer.Sprintf(
		"🎯 New Referral Alert!\n\nHi %s,\n\n"+
			"A new member has registered through your referral link:\n\n"+
			"👤 Member: %s\n📧 Email: %s\n📅 Registered: %s\n\n"+
			"View your dashboard for more details.",
		reseller.Name, member.FullName, member.Email,
		member.CreatedAt.Format("Jan 02, 2006 15:04"),
	)
}

// sendEmail would hand off to an email provider; failures are logged and
// never propagated to the registration flow.
func (n *NotificationService) sendEmail(to, subject, body string) {
	if to == "" {
		log.Printf("❌ [NOTIFY] email skipped: empty recipient (subject %q)", subject)
		return
	}
	log.Printf("📧 [NOTIFY] email sent to %s: %s", to, subject)
}

// sendWhatsApp would hand off to a WhatsApp Business API; same failure
// isolation as sendEmail.
func (n *NotificationService) sendWhatsApp(number, body string) {
	if number == "" {
		log.Printf("❌ [NOTIFY] whatsapp skipped: empty number")
		return
	}
	log.Printf("💬 [NOTIFY] whatsapp sent to %s (%d chars)", number, len(body))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
