package main

import (
	"os"

	"github.com/Lumos-Labs-HQ/shopseed/cmd"
	"github.com/fatih/color"
)

func main() {
	if err := cmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}
