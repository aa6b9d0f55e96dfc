package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/logging"
	"github.com/dmitrijs2005/guildchat/internal/server/models"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/repomanager"
)

// GuildUpdate carries the optional fields of a guild update. Nil means
// "leave unchanged".
type GuildUpdate struct {
	Name *string
}

// GuildService implements guild, channel, and message operations. Guild
// ids are derived from the display name once, at creation; renames never
// recompute them.
type GuildService struct {
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewGuildService(repos repomanager.RepositoryManager, logger logging.Logger) *GuildService {
	return &GuildService{repos: repos, logger: logger}
}

// CreateGuild derives the id slug from the name and persists a new guild
// with no channels. A colliding id fails with common.ErrAlreadyExists.
func (s *GuildService) CreateGuild(ctx context.Context, name string) (*models.Guild, error) {
	if !models.ValidName(name) {
		return nil, common.ErrInvalidName
	}

	guild := &models.Guild{
		ID:       models.NameToID(name),
		Name:     strings.TrimSpace(name),
		Channels: []*models.Channel{},
	}

	if err := s.repos.Guilds().Create(ctx, guild); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "guild created", "id", guild.ID)
	return guild, nil
}

// GetGuild loads a guild with all channels and messages, authors
// resolved.
func (s *GuildService) GetGuild(ctx context.Context, id string) (*models.Guild, error) {
	return s.repos.Guilds().Get(ctx, strings.TrimSpace(id))
}

// UpdateGuild applies the present fields of the update and persists. The
// id stays what it was at creation even when the name changes.
func (s *GuildService) UpdateGuild(ctx context.Context, guild *models.Guild, update GuildUpdate) (*models.Guild, error) {
	if update.Name != nil {
		if !models.ValidName(*update.Name) {
			return nil, common.ErrInvalidName
		}
		guild.Name = strings.TrimSpace(*update.Name)
	}

	if err := s.repos.Guilds().Save(ctx, guild); err != nil {
		return nil, err
	}
	return guild, nil
}

// CreateChannel appends a channel to the guild and persists. The channel
// id follows the same slug rule as guild ids and must be unique within
// the guild.
func (s *GuildService) CreateChannel(ctx context.Context, guild *models.Guild, name string) (*models.Channel, error) {
	if !models.ValidName(name) {
		return nil, common.ErrInvalidName
	}

	id := models.NameToID(name)
	for _, c := range guild.Channels {
		if c.ID == id {
			return nil, common.ErrAlreadyExists
		}
	}

	channel := &models.Channel{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Messages: []*models.Message{},
	}
	guild.Channels = append(guild.Channels, channel)

	if err := s.repos.Guilds().Save(ctx, guild); err != nil {
		return nil, err
	}
	return channel, nil
}

// CreateMessage appends a message to the channel and persists the owning
// guild. The author reference is immutable once set.
func (s *GuildService) CreateMessage(ctx context.Context, guild *models.Guild, channelID, content string, author *models.Account) (*models.Message, error) {
	var channel *models.Channel
	for _, c := range guild.Channels {
		if c.ID == channelID {
			channel = c
			break
		}
	}
	if channel == nil {
		return nil, common.ErrNotFound
	}

	message := &models.Message{Content: content, Author: author}
	channel.Messages = append(channel.Messages, message)

	if err := s.repos.Guilds().Save(ctx, guild); err != nil {
		return nil, err
	}
	return message, nil
}

// ListGuilds enumerates persisted guild identifiers.
func (s *GuildService) ListGuilds(ctx context.Context) ([]string, error) {
	return s.repos.Guilds().ListIDs(ctx)
}
