package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/textdesk/internal/buildinfo"
	"github.com/dmitrijs2005/textdesk/internal/client/config"
	"github.com/dmitrijs2005/textdesk/internal/web"
	"github.com/gin-gonic/gin"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)
	gin.SetMode(gin.ReleaseMode)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := web.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
