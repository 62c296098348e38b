package main

import (
	"os"

	"github.com/meshstack/kafka-acceptance/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
