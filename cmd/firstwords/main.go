// Command firstwords tracks the words young children learn, suggests words
// to practice and charts vocabulary growth.
package main

import (
	"os"

	"github.com/mesh-intelligence/firstwords/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
