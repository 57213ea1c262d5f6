package admin

import (
	"context"
	"fmt"
	"sort"

	"github.com/julianstephens/punchcal/internal/cli"
)

type EmployeesCmd struct{}

func (c *EmployeesCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireAdmin(bg); err != nil {
		return err
	}

	users, err := ctx.API.Employees(bg)
	if err != nil {
		return ctx.Fail(err, "")
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].Name < users[j].Name })

	fmt.Println(ctx.T("EMPLOYEES_TITLE"))
	for _, u := range users {
		fmt.Printf("  %-12s %-20s %s\n", u.UserID, u.Name, u.Dept)
	}
	return nil
}
