package main

import (
	"os"

	"github.com/vampirenirmal/roteiro/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
