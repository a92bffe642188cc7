package main

import (
	"context"
	"errors"

	"github.com/fsdevblog/linkstats/internal/app"
	"github.com/fsdevblog/linkstats/internal/config"
)

func main() {
	appConf := config.MustLoadConfig()

	a := app.Must(app.New(*appConf))

	if err := a.Run(); err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}
