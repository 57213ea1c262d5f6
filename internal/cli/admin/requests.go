package admin

import (
	"context"
	"fmt"

	"github.com/julianstephens/punchcal/internal/cli"
)

type RequestsCmd struct {
	List    RequestListCmd    `cmd:"" help:"List pending adjustment requests." default:"1"`
	Approve RequestApproveCmd `cmd:"" help:"Approve an adjustment request."`
	Reject  RequestRejectCmd  `cmd:"" help:"Reject an adjustment request."`
}

type RequestListCmd struct{}

func (c *RequestListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireAdmin(bg); err != nil {
		return err
	}

	reqs, err := ctx.API.ReviewRequests(bg)
	if err != nil {
		return ctx.Fail(err, "")
	}

	fmt.Println(ctx.T("REQUESTS_TITLE"))
	if len(reqs) == 0 {
		fmt.Println("  " + ctx.T("REQUESTS_EMPTY"))
		return nil
	}
	for _, r := range reqs {
		fmt.Printf("  [%s] %s  %s %s  %s\n", r.ID, r.Name, r.Date, r.Time, ctx.T(r.Type.TranslationKey()))
		if r.Note != "" {
			fmt.Printf("      %s%s\n", ctx.T("RECORD_NOTE_PREFIX"), r.Note)
		}
	}
	return nil
}

type RequestApproveCmd struct {
	ID string `arg:"" help:"Request id as shown by 'requests list'."`
}

func (c *RequestApproveCmd) Run(ctx *cli.Context) error {
	return review(ctx, c.ID, true)
}

type RequestRejectCmd struct {
	ID string `arg:"" help:"Request id as shown by 'requests list'."`
}

func (c *RequestRejectCmd) Run(ctx *cli.Context) error {
	return review(ctx, c.ID, false)
}

func review(ctx *cli.Context, id string, approve bool) error {
	bg := context.Background()
	if _, err := ctx.RequireAdmin(bg); err != nil {
		return err
	}

	call, doneKey := ctx.API.RejectRequest, "REQUEST_REJECTED"
	if approve {
		call, doneKey = ctx.API.ApproveRequest, "REQUEST_APPROVED"
	}
	msg, err := call(bg, id)
	if err != nil {
		return ctx.Fail(err, "")
	}

	fmt.Println(ctx.T(doneKey))
	if msg != "" {
		fmt.Println(msg)
	}
	return nil
}
