package main

import "github.com/set-challenge/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
