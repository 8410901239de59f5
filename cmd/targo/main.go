package main

import "github.com/targo-project/targo/internal/cli"

func main() {
	cli.Execute()
}
