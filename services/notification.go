package services

import (
	"context"
	"fmt"
	"log"
	"tripsettle-backend/config"
	"tripsettle-backend/database"
	"tripsettle-backend/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"google.golang.org/api/option"
)

type NotificationService struct {
	messaging *messaging.Client
}

var notifService *NotificationService

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{}
		notifService.initFirebase()
	}
	return notifService
}

func (ns *NotificationService) initFirebase() {
	ctx := context.Background()

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
	if err != nil {
		log.Printf("⚠️  Firebase not configured, push notifications disabled: %v", err)
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("⚠️  Firebase messaging unavailable: %v", err)
		return
	}

	ns.messaging = client
	log.Println("✅ Firebase messaging initialized")
}

// ============================================================
// PUSH NOTIFICATIONS via FCM
// ============================================================

func (ns *NotificationService) sendPush(fcmToken string, title string, body string, data map[string]string) {
	if ns.messaging == nil || fcmToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := ns.messaging.Send(context.Background(), msg); err != nil {
		log.Printf("❌ FCM send error: %v", err)
		return
	}

	log.Printf("✅ Push notification sent: %s", title)
}

// ============================================================
// EMAIL NOTIFICATIONS via SendGrid
// ============================================================

func (ns *NotificationService) sendEmail(toEmail string, toName string, subject string, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

// ============================================================
// NOTIFICATION EVENTS
// ============================================================

// NotifyTransactionAdded sends push + email to the other trip members
func (ns *NotificationService) NotifyTransactionAdded(tx models.Transaction, creator models.User, trip models.Trip) {
	var members []models.TripMember
	database.DB.Where("trip_id = ?", trip.ID).Preload("User").Find(&members)

	title := fmt.Sprintf("%s added a transaction", creator.Name)
	body := fmt.Sprintf("%s paid %s %.2f for \"%s\" in %s", tx.Payer, tx.Currency, tx.Amount, tx.Description, trip.Name)

	for _, member := range members {
		if member.UserID == creator.ID {
			continue // Don't notify the author
		}

		ns.sendPush(member.User.FCMToken, title, body, map[string]string{
			"type":           "transaction_added",
			"transaction_id": tx.ID.String(),
			"trip_id":        tx.TripID.String(),
		})

		htmlBody := buildTransactionEmailHTML(creator.Name, member.User.Name, tx, trip.Name)
		ns.sendEmail(member.User.Email, member.User.Name, fmt.Sprintf("%s added \"%s\" in %s", creator.Name, tx.Description, trip.Name), htmlBody)
	}
}

// NotifyRepayment sends push + email to the other trip members
func (ns *NotificationService) NotifyRepayment(repayment models.Repayment, creator models.User, trip models.Trip) {
	var members []models.TripMember
	database.DB.Where("trip_id = ?", trip.ID).Preload("User").Find(&members)

	title := "Repayment recorded"
	body := fmt.Sprintf("%s paid %s %s %.2f in %s", repayment.FromPerson, repayment.ToPerson, repayment.Currency, repayment.Amount, trip.Name)

	for _, member := range members {
		if member.UserID == creator.ID {
			continue
		}

		ns.sendPush(member.User.FCMToken, title, body, map[string]string{
			"type":    "repayment",
			"trip_id": repayment.TripID.String(),
		})

		htmlBody := buildRepaymentEmailHTML(member.User.Name, repayment, trip.Name)
		ns.sendEmail(member.User.Email, member.User.Name, title+" in "+trip.Name, htmlBody)
	}
}

// NotifyMemberAdded sends push + email to the newly added member
func (ns *NotificationService) NotifyMemberAdded(trip models.Trip, adder models.User, newMember models.User) {
	title := fmt.Sprintf("You were added to \"%s\"", trip.Name)
	body := fmt.Sprintf("%s added you to the trip \"%s\"", adder.Name, trip.Name)

	ns.sendPush(newMember.FCMToken, title, body, map[string]string{
		"type":    "member_added",
		"trip_id": trip.ID.String(),
	})

	htmlBody := buildMemberAddedEmailHTML(adder.Name, newMember.Name, trip.Name)
	ns.sendEmail(newMember.Email, newMember.Name, title, htmlBody)
}

// NotifyInvitation sends email to non-registered users
func (ns *NotificationService) NotifyInvitation(email string, inviterName string, tripName string) {
	subject := fmt.Sprintf("%s invited you to join \"%s\" on %s", inviterName, tripName, config.AppConfig.AppName)
	htmlBody := buildInvitationEmailHTML(inviterName, tripName)
	ns.sendEmail(email, "", subject, htmlBody)
}

// ============================================================
// EMAIL TEMPLATES
// ============================================================

func buildTransactionEmailHTML(creatorName, userName string, tx models.Transaction, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">💰 New Transaction</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> added a transaction in <strong>%s</strong>:</p>
		<div style="background: #f8f9fa; border-radius: 8px; padding: 16px; margin: 16px 0;">
			<p style="margin: 4px 0; font-size: 18px;"><strong>%s</strong></p>
			<p style="margin: 4px 0; color: #666;">%s paid %s %.2f</p>
		</div>
		<p>Open the app to see your updated balance.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, userName, creatorName, tripName, tx.Description, tx.Payer, tx.Currency, tx.Amount, config.AppConfig.AppName)
}

func buildRepaymentEmailHTML(userName string, repayment models.Repayment, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">✅ Repayment Recorded</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> paid <strong>%s</strong> <strong>%s %.2f</strong> in <strong>%s</strong>.</p>
		<p>Check the app to see the updated settlement.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, userName, repayment.FromPerson, repayment.ToPerson, repayment.Currency, repayment.Amount, tripName, config.AppConfig.AppName)
}

func buildMemberAddedEmailHTML(adderName, memberName, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">👋 You've been added to a trip!</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> added you to the trip <strong>"%s"</strong>.</p>
		<p>Open the app to start tracking shared costs!</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, memberName, adderName, tripName, config.AppConfig.AppName)
}

func buildInvitationEmailHTML(inviterName, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">🎉 You're invited!</h2>
		<p><strong>%s</strong> invited you to join <strong>"%s"</strong> on %s.</p>
		<p>%s keeps track of who paid what on a trip and works out who owes whom at the end.</p>
		<div style="margin: 24px 0;">
			<a href="%s" style="background: #1DB954; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">Join Now</a>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, inviterName, tripName, config.AppConfig.AppName, config.AppConfig.AppName, config.AppConfig.AppURL, config.AppConfig.AppName)
}
