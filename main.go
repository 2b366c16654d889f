package main

import "citadels-engine/cmd"

func main() {
	cmd.Execute()
}
