package main

import (
	"github.com/mortinious/tiles-game/internal/cli"
)

func main() {
	cli.Execute()
}
