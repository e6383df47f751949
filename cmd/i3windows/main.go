package main

import "github.com/bryanchriswhite/i3windows/cmd/i3windows/commands"

func main() {
	commands.Execute()
}
