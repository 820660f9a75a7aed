package main

import "github.com/fogfactory/conveyor/internal/cli"

func main() {
	cli.Execute()
}
