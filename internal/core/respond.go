package core

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// EmbedColor is the color of every embed the bot sends. It is set from
// configuration at startup.
var EmbedColor = 0x3498db

var errUnsupportedContext = errors.New("unsupported command context")

func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func RespondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func MessageRespond(s *discordgo.Session, channelID string, content string) error {
	_, err := s.ChannelMessageSend(channelID, content)
	return err
}

func MessageEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) error {
	_, err := s.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// ReplyText answers the invocation in ctx with plain text.
func ReplyText(ctx interface{}, text string) error {
	switch v := ctx.(type) {
	case *SlashInteractionContext:
		return Respond(v.Session, v.Event, text)
	case *MessageContext:
		return MessageRespond(v.Session, v.Event.ChannelID, text)
	}
	return errUnsupportedContext
}

// ReplyEphemeral answers with text only the invoking user sees. Text commands
// have no ephemeral replies and get a normal message.
func ReplyEphemeral(ctx interface{}, text string) error {
	switch v := ctx.(type) {
	case *SlashInteractionContext:
		return RespondEphemeral(v.Session, v.Event, text)
	case *MessageContext:
		return MessageRespond(v.Session, v.Event.ChannelID, text)
	}
	return errUnsupportedContext
}

// ReplyEmbed answers with embed, filling in the bot color when unset.
func ReplyEmbed(ctx interface{}, embed *discordgo.MessageEmbed) error {
	if embed.Color == 0 {
		embed.Color = EmbedColor
	}
	switch v := ctx.(type) {
	case *SlashInteractionContext:
		return RespondEmbed(v.Session, v.Event, embed)
	case *MessageContext:
		return MessageEmbed(v.Session, v.Event.ChannelID, embed)
	}
	return errUnsupportedContext
}

// interactionUser returns the invoking user of guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InvokerMention returns a mention of the user who ran the command.
func InvokerMention(ctx interface{}) string {
	switch v := ctx.(type) {
	case *SlashInteractionContext:
		if u := interactionUser(v.Event); u != nil {
			return u.Mention()
		}
	case *MessageContext:
		if v.Event.Author != nil {
			return v.Event.Author.Mention()
		}
	}
	return ""
}
