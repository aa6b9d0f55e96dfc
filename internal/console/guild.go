package console

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/guildchat/internal/server/services"
)

// Guilds prints the guild directory.
func (a *App) Guilds(ctx context.Context) error {
	ids, err := a.guildService.ListGuilds(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if len(ids) == 0 {
		printlnFn("No guilds")
		return nil
	}
	for _, id := range ids {
		printlnFn(" -", id)
	}
	return nil
}

// CreateGuild creates a new empty guild.
func (a *App) CreateGuild(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter guild name", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	guild, err := a.guildService.CreateGuild(ctx, name)
	if err != nil {
		printlnFn("Guild creation unsuccessful:", err.Error())
		return err
	}

	printlnFn("Created guild", guild.ID)
	return nil
}

// ShowGuild prints a guild's channels and messages.
func (a *App) ShowGuild(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter guild id", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	guild, err := a.guildService.GetGuild(ctx, id)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("%s (%s)", guild.Name, guild.ID))
	for _, channel := range guild.Channels {
		printlnFn(fmt.Sprintf("  #%s — %s", channel.ID, channel.Name))
		for _, msg := range channel.Messages {
			printlnFn(fmt.Sprintf("    <%s> %s", msg.Author.DisplayName, msg.Content))
		}
	}
	return nil
}

// RenameGuild changes a guild's display name; the id stays the same.
func (a *App) RenameGuild(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter guild id", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	guild, err := a.guildService.GetGuild(ctx, id)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter new name", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if _, err := a.guildService.UpdateGuild(ctx, guild, services.GuildUpdate{Name: &name}); err != nil {
		printlnFn("Rename unsuccessful:", err.Error())
		return err
	}

	printlnFn("Renamed", guild.ID, "to", guild.Name)
	return nil
}

// AddChannel appends a channel to a guild.
func (a *App) AddChannel(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter guild id", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	guild, err := a.guildService.GetGuild(ctx, id)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter channel name", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	channel, err := a.guildService.CreateChannel(ctx, guild, name)
	if err != nil {
		printlnFn("Channel creation unsuccessful:", err.Error())
		return err
	}

	printlnFn("Created channel", channel.ID)
	return nil
}

// Post appends a message authored by the logged-in account.
func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	author, err := a.accountService.GetAccountBySession(ctx, a.sessionID)
	if err != nil {
		a.sessionID = ""
		a.username = ""
		printlnFn("Session no longer valid:", err.Error())
		return err
	}

	guildID, err := GetSimpleText(a.reader, "Enter guild id", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	guild, err := a.guildService.GetGuild(ctx, guildID)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	channelID, err := GetSimpleText(a.reader, "Enter channel id", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	content, err := GetSimpleText(a.reader, "Enter message", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if _, err := a.guildService.CreateMessage(ctx, guild, channelID, content, author); err != nil {
		printlnFn("Post unsuccessful:", err.Error())
		return err
	}

	printlnFn("Posted")
	return nil
}
