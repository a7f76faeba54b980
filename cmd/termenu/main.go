package main

import (
	"os"

	"github.com/baaaaaaaka/termenu/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
