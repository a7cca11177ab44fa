package main

import (
	"github.com/Test199T/vita-wise-ai-sub001/cmd/vitawise/commands"
)

func main() {
	commands.Execute()
}
