package main

import (
	"os"

	"github.com/rtl-agents/rtlagents/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
