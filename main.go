package main

import (
	"os"

	"github.com/duynguyendang/ontograph/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
