package main

import (
	"os"

	"github.com/transitlab/busplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
