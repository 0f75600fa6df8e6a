package commands

import (
	"context"
	"fmt"

	"todoapi/internal/cli/api"
	"todoapi/internal/config"
)

type uploadCmd struct{}

func (uploadCmd) Name() string        { return "upload" }
func (uploadCmd) Description() string { return "Attach image files to a todo" }
func (uploadCmd) Usage() string       { return "upload <id> <file> [file...]" }

func (uploadCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	path, err := todoPath(args[0])
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	resp, body, err := c.Upload(ctx, path+"/files", args[1:])
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Uploaded %d file(s) to #%s\n", len(args)-1, args[0])
	return nil
}

func init() { RegisterCmd(uploadCmd{}) }
