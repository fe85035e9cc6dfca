// Package common holds helpers shared by the interaction handlers.
package common

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"peacebot/autoresponse"
	"peacebot/moderation"
	"peacebot/utils"
)

const genericFailure = "Something went wrong while running this command. Please try again later."

var (
	// ErrNotInGuild is returned for interactions coming from DMs.
	ErrNotInGuild = errors.New("this command can only be used in a server")
	ErrTargetBusy = errors.New("another moderation action on this member is in progress")
	ErrNotMember  = errors.New("that user is not a member of this server")
)

// IsUserError reports whether err can be shown to the invoking user verbatim.
func IsUserError(err error) bool {
	return errors.Is(err, ErrNotInGuild) || errors.Is(err, ErrTargetBusy) || errors.Is(err, ErrNotMember) || moderation.IsUserError(err) || autoresponse.IsUserError(err)
}

// UserMessage is the text shown to the user for err.
func UserMessage(err error) string {
	if IsUserError(err) {
		var missing *moderation.MissingRoleError
		if errors.As(err, &missing) {
			return missing.Error()
		}
		return rootMessage(err)
	}
	return genericFailure
}

// rootMessage drops wrapping context added on the way up.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// RespondError answers the interaction with err rendered for the user. Errors that are
// not user-facing are logged and replaced with a generic message. It reports whether
// the error was user-facing.
func RespondError(s *discordgo.Session, i *discordgo.InteractionCreate, logger *zap.Logger, command string, err error) bool {
	userErr := IsUserError(err)
	if !userErr {
		logger.Error("command failed",
			zap.String("command", command),
			zap.String("guild_id", i.GuildID),
			zap.String("channel_id", i.ChannelID),
			zap.Error(err))
	}
	utils.SendErrorResponse(s, i, UserMessage(err))
	return userErr
}

// GuildRoles returns the role list of a guild, preferring the state cache.
func GuildRoles(s *discordgo.Session, guildID string) ([]*discordgo.Role, error) {
	if s.State != nil {
		if g, err := s.State.Guild(guildID); err == nil && len(g.Roles) > 0 {
			return g.Roles, nil
		}
	}
	return s.GuildRoles(guildID)
}

// Actor resolves the invoking member of a guild interaction.
func Actor(s *discordgo.Session, i *discordgo.InteractionCreate) (moderation.Member, error) {
	if i.Member == nil || i.GuildID == "" {
		return moderation.Member{}, ErrNotInGuild
	}
	roles, err := GuildRoles(s, i.GuildID)
	if err != nil {
		return moderation.Member{}, err
	}
	return moderation.MemberFromDiscord(i.Member, roles), nil
}

// GuildMember fetches a member, mapping an unknown member to ErrNotMember.
func GuildMember(s *discordgo.Session, guildID, userID string) (*discordgo.Member, error) {
	m, err := s.GuildMember(guildID, userID)
	if err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return m, nil
}

// Target resolves another member of the guild.
func Target(s *discordgo.Session, guildID, userID string) (*discordgo.Member, moderation.Member, error) {
	m, err := GuildMember(s, guildID, userID)
	if err != nil {
		return nil, moderation.Member{}, err
	}
	roles, err := GuildRoles(s, guildID)
	if err != nil {
		return nil, moderation.Member{}, err
	}
	return m, moderation.MemberFromDiscord(m, roles), nil
}

// InvokerID returns the user behind an interaction in guilds and DMs alike.
func InvokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
