// Package repomanager bundles the entity repositories behind a single
// construction point so that services do not care how the persistence
// surface is wired.
package repomanager

import (
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/guilds"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/sessions"
)

type RepositoryManager interface {
	Accounts() accounts.Repository
	Sessions() sessions.Repository
	Guilds() guilds.Repository
}
