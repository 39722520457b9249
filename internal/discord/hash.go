package discord

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"

	"github.com/code-society-lab/grace/datastore"
)

// HashStore persists the definition hashes of registered slash commands per
// guild.
type HashStore interface {
	Load(guildID string) (map[string]string, error)
	Save(guildID string, hashes map[string]string) error
}

// DataStoreHashes keeps command hashes in a datastore file.
type DataStoreHashes struct {
	ds *datastore.DataStore
}

func NewDataStoreHashes(ds *datastore.DataStore) *DataStoreHashes {
	return &DataStoreHashes{ds: ds}
}

func hashKey(guildID string) string {
	return "commands/" + guildID
}

func (h *DataStoreHashes) Load(guildID string) (map[string]string, error) {
	hashes := map[string]string{}
	if _, err := h.ds.Load(hashKey(guildID), &hashes); err != nil {
		return nil, err
	}
	return hashes, nil
}

// Save writes the hashes through to disk. An empty set drops the guild entry.
func (h *DataStoreHashes) Save(guildID string, hashes map[string]string) error {
	var err error
	if len(hashes) == 0 {
		err = h.ds.Delete(hashKey(guildID))
	} else {
		err = h.ds.Set(hashKey(guildID), hashes)
	}
	if err != nil {
		return err
	}
	return h.ds.Flush()
}

// hashCommand creates a deterministic hash for an ApplicationCommand (including options)
func hashCommand(cmd *discordgo.ApplicationCommand) string {
	data, _ := json.Marshal(normalizeForHash(cmd))
	sum := sha1.Sum(data)
	return fmt.Sprintf("%x", sum)
}

// normalizeForHash strips runtime-only fields (IDs, versions, etc.) and sorts options
func normalizeForHash(cmd *discordgo.ApplicationCommand) map[string]interface{} {
	obj := map[string]interface{}{
		"name":        cmd.Name,
		"description": cmd.Description,
		"type":        cmd.Type,
	}
	if cmd.DefaultMemberPermissions != nil {
		obj["default_member_permissions"] = *cmd.DefaultMemberPermissions
	}
	if len(cmd.Options) > 0 {
		obj["options"] = normalizeOptions(cmd.Options)
	}
	return obj
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	normalized := make([]map[string]interface{}, len(opts))

	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		normalized[i] = entry
	}

	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i]["name"].(string) < normalized[j]["name"].(string)
	})

	return normalized
}
