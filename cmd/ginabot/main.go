// Command ginabot runs the English speaking practice bot and its liveness endpoint.
package main

import (
	"context"
	"log"
	"os"

	"github.com/m3rciful/ginabot/bot"
	corecmd "github.com/m3rciful/ginabot/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		EnvFiles: []string{".env"},
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.LoadConfig(path)
		},
		Bootstrap: func(ctx context.Context, cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			return bot.Bootstrap(ctx, cfg.(*bot.Config))
		},
	})
	if err != nil {
		log.Printf("ginabot: %v", err)
		os.Exit(1)
	}
}
