package main

import (
	"github.com/andrescamacho/colonycore-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
