package main

import (
	"os"

	"github.com/Hakukano/FLP-Go-GSP/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
