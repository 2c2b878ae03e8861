package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/ironsheep/image-editor/internal/cli"
)

// Version is set by ldflags during build.
var Version = "dev"

func main() {
	root := cli.NewRootCmd()

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
