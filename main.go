package main

import "github.com/josephlewis42/step/cmd"

func main() {
	cmd.Execute()
}
