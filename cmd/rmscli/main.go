package main

import "github.com/jc-27901/reversed-minesweeper/internal/cli"

func main() {
	cli.Execute()
}
