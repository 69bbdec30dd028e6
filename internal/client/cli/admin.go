package cli

import (
	"context"
	"errors"
	"strings"
	"text/tabwriter"
)

// Users lists every account. ADMIN only.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.ListUsers(ctx)
	if err != nil {
		return a.fail(err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	a.tprintf(tw, "ID\tEMAIL\tROLE\tCREATED\n")
	for _, u := range users {
		a.tprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// Role changes a user's role: role <id> <ADMIN|USER|PREMIUM>.
func (a *App) Role(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return a.fail(err)
	}
	if len(args) < 2 {
		return a.fail(errors.New("usage: role <id> <ADMIN|USER|PREMIUM>"))
	}

	user, err := a.api.UpdateUserRole(ctx, id, strings.ToUpper(args[1]))
	if err != nil {
		return a.fail(err)
	}
	a.printf("User #%d is now %s\n", user.ID, user.Role)
	return nil
}
