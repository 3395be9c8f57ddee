package main

import (
	"os"

	"github.com/km-arc/go-autowire/framework/console"
)

func main() {
	if err := console.Execute(); err != nil {
		os.Exit(1)
	}
}
