package main

import (
	"os"

	"github.com/rsoni/hireview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
