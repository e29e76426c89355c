package main

import "github.com/pfrederiksen/pgconf-watch/internal/cli"

func main() {
	cli.Execute()
}
