package main

import (
	"github.com/danielp299/ogamecloneapp-sub000/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
