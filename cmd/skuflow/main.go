package main

import (
	"os"

	"github.com/skuflow/skuflow/cmd/skuflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
