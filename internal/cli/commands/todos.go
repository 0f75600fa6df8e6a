package commands

import (
	"context"
	"fmt"
	"net/http"

	"todoapi/internal/cli/api"
	"todoapi/internal/config"
)

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// --- todos ---

type todosCmd struct{}

func (todosCmd) Name() string        { return "todos" }
func (todosCmd) Description() string { return "List your todos" }
func (todosCmd) Usage() string       { return "todos" }

func (todosCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	resp, body, err := c.DoJSON(ctx, http.MethodGet, "/todos", nil)
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	var list []todoView
	if err := decode(body, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No todos")
		return nil
	}
	for _, t := range list {
		var files int64
		if t.TotalFiles != nil {
			files = *t.TotalFiles
		}
		fmt.Fprintf(Out, "- #%d  %s  (files: %d)\n", t.ID, t.Title, files)
	}
	fmt.Fprintf(Out, "Total: %d\n", len(list))
	return nil
}

// --- todo-add ---

type todoAddCmd struct{}

func (todoAddCmd) Name() string        { return "todo-add" }
func (todoAddCmd) Description() string { return "Create a todo" }
func (todoAddCmd) Usage() string       { return "todo-add <title> <description>" }

func (todoAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	resp, body, err := c.DoJSON(ctx, http.MethodPost, "/todos", todoRequest{Title: args[0], Description: args[1]})
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	var t todoView
	if err := decode(body, &t); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created #%d\n", t.ID)
	return nil
}

// --- todo-get ---

type todoGetCmd struct{}

func (todoGetCmd) Name() string        { return "todo-get" }
func (todoGetCmd) Description() string { return "Show a todo with its files" }
func (todoGetCmd) Usage() string       { return "todo-get <id>" }

func (todoGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
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
	resp, body, err := c.DoJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	var t todoView
	if err := decode(body, &t); err != nil {
		return err
	}
	fmt.Fprintf(Out, "#%d %s\n%s\n", t.ID, t.Title, t.Description)
	fmt.Fprintf(Out, "Files: %d\n", len(t.Files))
	for _, f := range t.Files {
		fmt.Fprintf(Out, "  - %s\n", f.Path)
	}
	return nil
}

// --- todo-edit ---

type todoEditCmd struct{}

func (todoEditCmd) Name() string        { return "todo-edit" }
func (todoEditCmd) Description() string { return "Replace title and description" }
func (todoEditCmd) Usage() string       { return "todo-edit <id> <title> <description>" }

func (todoEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
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
	resp, body, err := c.DoJSON(ctx, http.MethodPut, path, todoRequest{Title: args[1], Description: args[2]})
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Updated #%s\n", args[0])
	return nil
}

// --- todo-delete ---

type todoDeleteCmd struct{}

func (todoDeleteCmd) Name() string        { return "todo-delete" }
func (todoDeleteCmd) Description() string { return "Delete a todo and its files" }
func (todoDeleteCmd) Usage() string       { return "todo-delete <id>" }

func (todoDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
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
	resp, body, err := c.DoJSON(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted #%s\n", args[0])
	return nil
}

func init() {
	RegisterCmd(todosCmd{})
	RegisterCmd(todoAddCmd{})
	RegisterCmd(todoGetCmd{})
	RegisterCmd(todoEditCmd{})
	RegisterCmd(todoDeleteCmd{})
}
