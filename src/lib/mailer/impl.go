package mailer

import (
	"fmt"
	"log"
	"os"

	"etix/src/lib"
	"etix/src/models"
)

// BookingConfirmation emails the user a summary of a completed booking.
// No-op when SMTP is not configured; failures are logged, never surfaced
// to the booking response.
func BookingConfirmation(user *models.User, event *models.Event, ticket *models.Ticket) {
	if os.Getenv("SMTP_HOST") == "" {
		return
	}
	from := os.Getenv("SMTP_FROM")
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s on %s is confirmed.\nTickets: %d (booking #%d)\n",
		user.Name,
		event.Name,
		event.Date.Format("2006-01-02"),
		ticket.Count,
		ticket.ID,
	)
	input := lib.SendMailInput{
		From:     from,
		FromName: "Ticket Desk",
		To:       []string{user.Email},
		Subject:  fmt.Sprintf("Booking confirmed: %s", event.Name),
		Body:     body,
	}
	if err := lib.SendMail(&input); err != nil {
		log.Printf("Error sending booking confirmation to %s: %s\n", user.Email, err.Error())
	}
}
