// Package main provides the SoftStack CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("SoftStack %s\n", version)
		return
	}

	fmt.Println("SoftStack - Differentiable Soft Indexing for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("See examples/reverse for training a differentiable stack.")
}
