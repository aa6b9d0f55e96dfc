package console

import (
	"context"
	"os"

	"github.com/dmitrijs2005/guildchat/internal/common"
	"github.com/dmitrijs2005/guildchat/internal/server/services"
)

// Register creates a new account interactively and leaves the console
// logged in as it.
func (a *App) Register(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	displayName, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	sessionID, err := a.accountService.CreateAccount(ctx, username, string(password), displayName)
	if err != nil {
		printlnFn("Registration unsuccessful:", err.Error())
		return err
	}

	a.sessionID = sessionID
	a.username = username
	printlnFn("Success!")
	return nil
}

// Login authenticates and stores the issued session for later commands.
func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	sessionID, err := a.accountService.Login(ctx, username, string(password))
	if err != nil {
		printlnFn("Login unsuccessful:", err.Error())
		return err
	}

	a.sessionID = sessionID
	a.username = username
	printlnFn("Login successful")
	return nil
}

// Logout revokes the current session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	if err := a.accountService.Logout(ctx, a.sessionID); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	a.sessionID = ""
	a.username = ""
	printlnFn("Logged out")
	return nil
}

// WhoAmI resolves the current session and prints the public identity.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	account, err := a.accountService.GetAccountBySession(ctx, a.sessionID)
	if err != nil {
		// The session may have expired or the account may be gone.
		a.sessionID = ""
		a.username = ""
		printlnFn("Session no longer valid:", err.Error())
		return err
	}

	printlnFn(account.Username, "—", account.DisplayName)
	return nil
}

// Passwd changes the current account's password.
func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in")
		return nil
	}

	account, err := a.accountService.GetAccountBySession(ctx, a.sessionID)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	newPassword := string(password)
	if _, err := a.accountService.UpdateAccount(ctx, account, services.AccountUpdate{Password: &newPassword}); err != nil {
		printlnFn("Password change unsuccessful:", err.Error())
		return err
	}

	printlnFn("Password changed")
	return nil
}

// Users prints the account directory.
func (a *App) Users(ctx context.Context) error {
	usernames, err := a.accountService.ListAllAccounts(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if len(usernames) == 0 {
		printlnFn("No accounts")
		return nil
	}
	for _, u := range usernames {
		printlnFn(" -", u)
	}
	return nil
}
