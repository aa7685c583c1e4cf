package main

import (
	"github.com/PolarWolf314/autoarchive/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.Logger.Fatalf("%v", err)
	}
}
