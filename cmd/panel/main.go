package main

import (
	"context"
	"os"

	"github.com/DenisKhanov/BotPanel/internal/app/panel"
	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()
	a, err := panel.NewApp(ctx, os.Args[1:])
	if err != nil {
		logrus.Fatalf("failed to init app: %s", err.Error())
	}
	a.Run()
}
