package main

import (
	"github.com/hytaletravelers/playerstats/internal/cli"
)

func main() {
	cli.Execute()
}
