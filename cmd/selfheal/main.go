package main

import (
	"github.com/tranvk/selfheal/internal/cli"
)

func main() {
	cli.Execute()
}
