package main

import (
	"os"

	"github.com/reoring/wirecodec/internal/cli/commands"
	_ "github.com/reoring/wirecodec/source"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
