package main

import (
	"os"

	"github.com/bluepin/backend/internal/delivery/cli"
)

func main() {
	os.Exit(cli.Execute())
}
