package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"todoapi/internal/cli/api"
	"todoapi/internal/config"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	c := api.New(cfg.ServerURL, "")
	resp, body, err := c.DoJSON(ctx, http.MethodPost, "/login", LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}

	var tok tokenView
	_ = decode(body, &tok)
	if tok.Token == "" {
		// запасной вариант — cookie
		for _, ck := range resp.Cookies() {
			if ck.Name == api.AuthCookieName {
				tok.Token = ck.Value
			}
		}
	}
	if tok.Token == "" {
		return errors.New("no token in response")
	}
	if err := tokenStore(cfg).Save(tok.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := tokenStore(cfg).Delete(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
