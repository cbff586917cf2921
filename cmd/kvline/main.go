// Command kvline parses key=value lines from arguments or standard input.
package main

import "github.com/KimNorgaard/go-kvline/cmd/kvline/cmd"

func main() {
	cmd.Execute()
}
