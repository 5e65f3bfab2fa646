package main

import (
	"context"

	"github.com/alecthomas/kong"
)

var (
	version = "dev"
	cli     struct {
		Version kong.VersionFlag
		Serve   ServeCmd `cmd:"" default:"1" help:"Start the HTTP API server."`
		Seed    SeedCmd  `cmd:"" help:"Insert the default user, organization and app-admin binding."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Description("Organization and user management API."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&Globals{Version: version})
	cmd.FatalIfErrorf(err)
}
