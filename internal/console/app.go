// Package console implements an interactive administration console for
// the guildchat core. It is a thin collaborator: every command goes
// through the same service API any RPC or HTTP transport would use.
package console

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/guildchat/internal/logging"
	"github.com/dmitrijs2005/guildchat/internal/server/config"
	"github.com/dmitrijs2005/guildchat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/guildchat/internal/server/services"
	"github.com/dmitrijs2005/guildchat/internal/server/storage"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	accountService *services.AccountService
	guildService   *services.GuildService

	// Session state of the operator currently driving the console.
	sessionID string
	username  string

	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	slogger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	logger := logging.NewSlogLogger(slogger)

	store, err := storage.NewFileStore(c.DataDir)
	if err != nil {
		return nil, err
	}

	repos := repomanager.NewStorageRepositoryManager(store)
	as := services.NewAccountService(repos, logger)
	gs := services.NewGuildService(repos, logger)

	return &App{
		config:         c,
		logger:         logger,
		accountService: as,
		guildService:   gs,
		reader:         bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.sessionID != ""
}

func (a *App) status() string {
	if !a.isLoggedIn() {
		return "anonymous"
	}
	return a.username
}

func (a *App) Run(ctx context.Context) {
	printlnFn("guildchat console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
