package main

import (
	"github.com/mfreitas/storegate/internal/cli"
)

func main() {
	cli.Execute()
}
