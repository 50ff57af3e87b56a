package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fitmint/internal/client/cli"
	"github.com/dmitrijs2005/fitmint/internal/client/config"
)

func main() {

	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app := cli.NewApp(cfg, os.Stdout)
	err = app.Run(context.Background(), args)
	_ = app.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}

}
