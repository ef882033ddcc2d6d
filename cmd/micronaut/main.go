package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/micronaut/internal/app"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if err := app.New(args).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "micronaut:", err)
		os.Exit(1)
	}
}
