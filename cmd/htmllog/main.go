package main

import (
	"log/slog"
	"os"

	"github.com/angeloszaimis/htmllog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Error("htmllog failed", slog.Any("err", err))
		os.Exit(1)
	}
}
