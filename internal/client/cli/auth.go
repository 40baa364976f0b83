package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/projecthub/internal/api"
	"github.com/dmitrijs2005/projecthub/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register creates an account and starts a session for it.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter display name (empty for default)", a.out)
	if err != nil {
		return a.report(err)
	}

	user, err := a.client.Register(ctx, email, string(password), name)
	if err != nil {
		return a.report(err)
	}

	a.signedIn(user)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	user, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return a.report(err)
	}

	a.signedIn(user)
	return nil
}

func (a *App) signedIn(user *api.User) {
	a.email = user.Email
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Name, user.ID)
}

// Logout revokes the session on the server.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return a.report(err)
	}
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	user, err := a.client.Profile(ctx)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "%s\t%s\t%s\n", user.ID, user.Name, user.Email)
	return nil
}
