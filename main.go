package main

import (
	"os"

	"github.com/scholia-labs/scholia/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
