package utils

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// SendErrorResponse sends an ephemeral error message.
func SendErrorResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, "error", &discordgo.InteractionResponseData{
		Content: "❌ " + message,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

func SendPublicResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, "public", &discordgo.InteractionResponseData{
		Content: message,
	})
}

// SendEphemeralResponse sends a message only the invoking user can see.
func SendEphemeralResponse(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, "ephemeral", &discordgo.InteractionResponseData{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// SendEmbedResponse sends embeds with optional components.
func SendEmbedResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool, components []discordgo.MessageComponent, embeds ...*discordgo.MessageEmbed) {
	data := &discordgo.InteractionResponseData{
		Embeds:     embeds,
		Components: components,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	respond(s, i, "embed", data)
}

// UpdateComponentMessage replaces the message a component belongs to.
func UpdateComponentMessage(s *discordgo.Session, i *discordgo.InteractionCreate, components []discordgo.MessageComponent, embeds ...*discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
	if err != nil {
		zap.L().Warn("Error updating component message", zap.Error(err))
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, kind string, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		zap.L().Warn("Error sending response", zap.String("kind", kind), zap.String("guild_id", i.GuildID), zap.Error(err))
	}
}

// SendFollowUp edits the deferred response of an interaction.
func SendFollowUp(s *discordgo.Session, i *discordgo.Interaction, message string) {
	_, err := s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &message,
	})
	if err != nil {
		zap.L().Warn("Error sending follow-up message", zap.Error(err))
	}
}

// SendFollowUpError edits the deferred response of an interaction with an error message.
func SendFollowUpError(s *discordgo.Session, i *discordgo.Interaction, message string) {
	SendFollowUp(s, i, "❌ "+message)
}

// DeferResponse defers an interaction response, optionally making it ephemeral.
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		response.Data = &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		}
	}
	return s.InteractionRespond(i.Interaction, response)
}
