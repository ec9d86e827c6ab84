package main

import "github.com/mouse-blink/linkfmt/cmd"

func main() {
	cmd.Execute()
}
