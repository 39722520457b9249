package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/code-society-lab/grace/internal/core"
	"github.com/code-society-lab/grace/internal/language"
)

// Chat sends reactions and embeds through a Discord session.
type Chat struct {
	dg *discordgo.Session
}

var _ language.Chat = (*Chat)(nil)

func NewChat(dg *discordgo.Session) *Chat {
	return &Chat{dg: dg}
}

func (c *Chat) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	return c.dg.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx))
}

func (c *Chat) SendEmbed(ctx context.Context, channelID, title, description string) error {
	_, err := c.dg.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       core.EmbedColor,
	}, discordgo.WithContext(ctx))
	return err
}

// ToMessage converts a gateway message to the reactor's view of it.
func ToMessage(m *discordgo.Message) language.Message {
	msg := language.Message{
		ID:              m.ID,
		ChannelID:       m.ChannelID,
		GuildID:         m.GuildID,
		Content:         m.Content,
		MentionEveryone: m.MentionEveryone,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
	}
	for _, u := range m.Mentions {
		if u != nil {
			msg.Mentions = append(msg.Mentions, u.ID)
		}
	}
	return msg
}
