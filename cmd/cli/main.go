package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/classpilot/classpilot-go/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login   commands.LoginCmd   `cmd:"" help:"Sign in to ClassPilot"`
		Logout  commands.LogoutCmd  `cmd:"" help:"Sign out and clear the local session"`
		Profile commands.ProfileCmd `cmd:"" help:"Show the signed-in user's profile"`
		Watch   commands.WatchCmd   `cmd:"" help:"Watch material processing until it finishes"`
		Quiz    commands.QuizCmd    `cmd:"" help:"Inspect CBT quizzes"`
		Debug   bool                `help:"Enable debug mode."`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
