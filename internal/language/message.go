// Package language reacts to chat messages that mention configured trigger
// words or pun words, and implements the admin operations that edit them.
package language

import (
	"context"
	"slices"
	"strings"
)

// rawMentionPrefix marks a message that opens with a nickname mention.
const rawMentionPrefix = "<@!"

// Message is the platform-independent view of an incoming chat message.
type Message struct {
	ID              string
	ChannelID       string
	GuildID         string
	AuthorID        string
	Content         string
	Mentions        []string
	MentionEveryone bool
}

// MentionsUser reports whether userID is mentioned directly or through
// @everyone.
func (m Message) MentionsUser(userID string) bool {
	return m.MentionEveryone || slices.Contains(m.Mentions, userID)
}

// HasRawMentionPrefix reports whether the message content starts with a raw
// nickname mention.
func (m Message) HasRawMentionPrefix() bool {
	return strings.HasPrefix(m.Content, rawMentionPrefix)
}

// Chat is the subset of the chat platform the reactor writes to.
type Chat interface {
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	SendEmbed(ctx context.Context, channelID, title, description string) error
}

type ActionKind int

const (
	ActionReact ActionKind = iota
	ActionReply
)

// Action is a side effect produced by a detector.
type Action struct {
	Kind  ActionKind
	Emoji string // ActionReact
	Title string // ActionReply
	Text  string // ActionReply
	Tone  string
}

func react(emoji, tone string) *Action {
	return &Action{Kind: ActionReact, Emoji: emoji, Tone: tone}
}
