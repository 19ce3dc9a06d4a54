package main

import "github.com/devbush/ytbatch/internal/adapters/cli"

func main() {
	cli.Execute()
}
