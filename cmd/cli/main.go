package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/textdesk/internal/buildinfo"
	"github.com/dmitrijs2005/textdesk/internal/client/app"
	"github.com/dmitrijs2005/textdesk/internal/client/cli"
	"github.com/dmitrijs2005/textdesk/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	c, err := app.Build(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer c.Close()

	cli.NewApp(c.Form, c.Drafts, c.Saver, c.Logger).Run(ctx)

}
