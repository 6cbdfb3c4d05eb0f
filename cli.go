//go:build cli
// +build cli

package main

import (
	_ "grocery.GO/custom"

	"grocery.GO/cmd"
	"grocery.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
