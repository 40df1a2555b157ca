package main

import (
	"os"

	"github.com/mintup/mintup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
