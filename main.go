package main

import (
	"os"

	"github.com/integraph/integraph/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
