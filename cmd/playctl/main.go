package main

import "playconsole/internal/cli"

func main() {
	cli.Execute()
}
