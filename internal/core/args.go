package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"
)

// ParsePrefix splits a prefixed text command into its name, its words and the
// raw text after the name. ok is false when content is not a command.
func ParsePrefix(prefix, content string) (name string, args []string, raw string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, "", false
	}

	rest := strings.TrimPrefix(content, prefix)
	if rest == "" || unicode.IsSpace(rune(rest[0])) {
		return "", nil, "", false
	}

	fields := strings.Fields(rest)
	name = strings.ToLower(fields[0])
	raw = TrailingText(rest, 1)
	return name, fields[1:], raw, true
}

// TrailingText returns s without its first n words, keeping the spacing of
// what remains.
func TrailingText(s string, n int) string {
	s = strings.TrimSpace(s)
	for i := 0; i < n && s != ""; i++ {
		j := strings.IndexFunc(s, unicode.IsSpace)
		if j < 0 {
			return ""
		}
		s = strings.TrimSpace(s[j:])
	}
	return s
}

// SlashArgs flattens interaction options into the same shape as prefix
// arguments: subcommand names first, then option values in order.
func SlashArgs(options []*discordgo.ApplicationCommandInteractionDataOption) []string {
	var args []string
	for _, opt := range options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			args = append(args, opt.Name)
			args = append(args, SlashArgs(opt.Options)...)
		case discordgo.ApplicationCommandOptionInteger:
			args = append(args, strconv.FormatInt(opt.IntValue(), 10))
		case discordgo.ApplicationCommandOptionString:
			args = append(args, opt.StringValue())
		default:
			args = append(args, fmt.Sprint(opt.Value))
		}
	}
	return args
}
