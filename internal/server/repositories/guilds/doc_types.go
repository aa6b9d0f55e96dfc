package guilds

import "github.com/dmitrijs2005/guildchat/internal/server/models"

// On-disk document shapes. Cross-entity references are stored as
// identifiers only; an author is a username string, never an embedded
// copy of the account's mutable state.

type guildDoc struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Channels []channelDoc `json:"channels"`
}

type channelDoc struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Messages []messageDoc `json:"messages"`
}

type messageDoc struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

func serialize(guild *models.Guild) *guildDoc {
	doc := &guildDoc{
		ID:       guild.ID,
		Name:     guild.Name,
		Channels: make([]channelDoc, 0, len(guild.Channels)),
	}
	for _, c := range guild.Channels {
		cd := channelDoc{
			ID:       c.ID,
			Name:     c.Name,
			Messages: make([]messageDoc, 0, len(c.Messages)),
		}
		for _, m := range c.Messages {
			cd.Messages = append(cd.Messages, messageDoc{
				Content: m.Content,
				Author:  m.Author.Username,
			})
		}
		doc.Channels = append(doc.Channels, cd)
	}
	return doc
}
