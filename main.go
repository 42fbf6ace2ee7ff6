package main

import (
	"os"

	"todoboard/pkg/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
