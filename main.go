package main

import "github.com/theirongolddev/perftrack/cmd"

func main() {
	cmd.Execute()
}
