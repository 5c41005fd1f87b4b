package main

import (
	"os"

	"github.com/dmitrijs2005/credvault/internal/credtool"
)

func main() {
	if err := credtool.Execute(); err != nil {
		os.Exit(1)
	}
}
