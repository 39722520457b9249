package core

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionAdministrator:   "Administrator",
	discordgo.PermissionManageServer:     "Manage Server",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionManageChannels:  "Manage Channels",
	discordgo.PermissionManageRoles:     "Manage Roles",
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionModerateMembers: "Moderate Members",
	discordgo.PermissionSendMessages:    "Send Messages",
	discordgo.PermissionAddReactions:    "Add Reactions",
	discordgo.PermissionEmbedLinks:      "Embed Links",
}

// HasAnyPermission reports whether perms grants any of required. Administrators
// always pass and an empty requirement lets everyone through.
func HasAnyPermission(perms int64, required []int64) bool {
	if perms&discordgo.PermissionAdministrator != 0 || len(required) == 0 {
		return true
	}
	for _, p := range required {
		if perms&p != 0 {
			return true
		}
	}
	return false
}

// WithUserPermissionCheck rejects users holding none of the command's
// UserPermissions (any-of semantics, default allow).
func WithUserPermissionCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				required := cmd.UserPermissions()
				if len(required) == 0 {
					return cmd.Run(ctx)
				}

				var perms int64
				switch v := ctx.(type) {
				case *SlashInteractionContext:
					// Slash commands used in a guild carry the member's resolved permissions
					if v.Event.Member == nil {
						return nil
					}
					perms = v.Event.Member.Permissions
				case *MessageContext:
					if v.Event.GuildID == "" || v.Event.Author == nil {
						return nil
					}
					p, err := v.Session.UserChannelPermissions(v.Event.Author.ID, v.Event.ChannelID)
					if err != nil {
						return fmt.Errorf("failed to get user permissions: %w", err)
					}
					perms = p
				default:
					return cmd.Run(ctx)
				}

				if HasAnyPermission(perms, required) {
					return cmd.Run(ctx)
				}

				var allowed []string
				for _, p := range required {
					name := PermissionNames[p]
					if name == "" {
						name = fmt.Sprintf("0x%x", p)
					}
					allowed = append(allowed, name)
				}
				msg := fmt.Sprintf(
					"You need at least one of the following permissions to run this command:\n`%s`",
					strings.Join(allowed, "`, `"),
				)
				return ReplyEphemeral(ctx, msg)
			},
		}
	}
}
