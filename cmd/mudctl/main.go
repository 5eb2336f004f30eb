package main

import (
	"fmt"
	"os"

	"github.com/pixil98/go-peake/cmd/mudctl/command"
)

func main() {
	cmd, err := command.NewRootCommand()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
