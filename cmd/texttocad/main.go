package main

import "github.com/monicapserrano/text-to-cad/internal/cli"

func main() {
	cli.Execute()
}
