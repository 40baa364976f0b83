package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

var errUsage = errors.New("usage")

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

// Users lists every account as id, name and email.
func (a *App) Users(ctx context.Context) error {
	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return a.report(err)
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	return tw.Flush()
}

// Projects lists the caller's projects; optional args are limit and offset.
func (a *App) Projects(ctx context.Context, args []string) error {
	var limit, offset int
	for i, dst := range []*int{&limit, &offset} {
		if i >= len(args) {
			break
		}
		n, err := strconv.Atoi(args[i])
		if err != nil || n < 0 {
			return a.usage("projects [limit] [offset]")
		}
		*dst = n
	}

	projects, err := a.client.ListProjects(ctx, limit, offset)
	if err != nil {
		return a.report(err)
	}
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMEMBERS")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", p.ID, p.Name, len(p.Users))
	}
	return tw.Flush()
}

// Create makes a project named by the remaining words of the command line.
func (a *App) Create(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		return a.usage("create <name>")
	}

	p, err := a.client.CreateProject(ctx, name)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Created project %s (%s)\n", p.Name, p.ID)
	return nil
}

// Add puts users into a project. Ids may be separated by spaces or commas.
func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.usage("add <projectId> <userId>...")
	}

	var ids []string
	for _, arg := range args[1:] {
		for _, id := range strings.Split(arg, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return a.usage("add <projectId> <userId>...")
	}

	p, err := a.client.AddMembers(ctx, args[0], ids)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Project %s now has %d members\n", p.Name, len(p.Users))
	return nil
}

// Show prints a project with its members.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("show <projectId>")
	}

	p, err := a.client.GetProject(ctx, args[0])
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "%s (%s)\n", p.Name, p.ID)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, m := range p.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Name, m.Email)
	}
	return tw.Flush()
}
