package commands

import (
	"context"
	"fmt"
	"net/http"

	"todoapi/internal/cli/api"
	"todoapi/internal/config"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account" }
func (registerCmd) Usage() string       { return "register <username> <email> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	c := api.New(cfg.ServerURL, "")
	resp, body, err := c.DoJSON(ctx, http.MethodPost, "/users", RegisterRequest{
		Username: args[0], Email: args[1], Password: args[2],
	})
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	var u userView
	if err := decode(body, &u); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Registered %s <%s> (id %d)\n", u.Username, u.Email, u.ID)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
