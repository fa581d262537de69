package main

import "github.com/avolkov/beatcut/internal/cli"

func main() {
	cli.Main()
}
