package main

import (
	"os"

	"github.com/luizchimenes/debugae/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
