package main

import (
	"os"

	"github.com/ksahoo/cellsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
