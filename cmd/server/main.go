package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fitmint/internal/server"
	"github.com/dmitrijs2005/fitmint/internal/server/config"
)

func main() {

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app.Run(context.Background())

}
