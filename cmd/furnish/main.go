// Command furnish edits furniture floor plans from the command line.
package main

import "github.com/mesh-intelligence/furnish/internal/cli"

func main() {
	cli.Execute()
}
