package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/ledgersync/internal/flagx"
	"github.com/dmitrijs2005/ledgersync/internal/server"
	"github.com/dmitrijs2005/ledgersync/internal/server/auth"
	"github.com/dmitrijs2005/ledgersync/internal/server/config"
)

// Usage:
//
//	server [flags]                serve the document store
//	server [flags] token <owner>  print a device token for owner
func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	args := flagx.Positional(os.Args[1:], config.Flags)
	if len(args) > 0 && args[0] == "token" {
		if len(args) != 2 {
			log.Fatal("usage: server token <owner>")
		}
		token, err := auth.GenerateToken(args[1], []byte(cfg.SecretKey), cfg.TokenValidityDuration)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(token)
		return
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
