package main

import "celeste-saves/internal/cli"

func main() {
	cli.Execute()
}
