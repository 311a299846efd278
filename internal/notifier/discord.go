package notifier

import (
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/nifgashim/trek-api/internal/models"
)

type Notifier interface {
	NotifyRegistration(user models.User, registration models.Registration) error
	NotifyMemorialSubmitted(memorial models.Memorial) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}
	return nil
}

func (n *DiscordNotifier) NotifyRegistration(user models.User, registration models.Registration) error {
	status := "registered"
	if registration.Cancelled {
		status = "cancelled registration 😢 👎"
	}

	days := make([]string, 0, len(registration.SelectedDays))
	for _, d := range registration.SelectedDays {
		days = append(days, fmt.Sprintf("%d", d))
	}

	groupStr := ""
	if registration.IsGroup {
		groupStr = fmt.Sprintf("\n**Group:** %s (%s)", registration.GroupName, registration.GroupType)
	}

	message := fmt.Sprintf("🥾 **Trek Registration**\n**User:** %s (<@%s>)\n**Status:** %s\n**Reference:** %s\n**Days:** %s\n**Participants:** %d\n**Payment:** %s%s",
		user.Username,
		user.DiscordID,
		status,
		registration.Reference,
		strings.Join(days, ", "),
		len(registration.Participants),
		registration.PaymentStatus,
		groupStr,
	)

	return n.send(message)
}

func (n *DiscordNotifier) NotifyMemorialSubmitted(memorial models.Memorial) error {
	message := fmt.Sprintf("🕯️ **New Memorial Submission**\n**Fallen:** %s\n**Place:** %s\n**Date of fall:** %s\nAwaiting review.",
		memorial.FallenName,
		memorial.PlaceOfFall,
		memorial.DateOfFall,
	)

	return n.send(message)
}
