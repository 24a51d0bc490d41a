package main

import "github.com/kioskware/kioskpack/cmd"

func main() {
	cmd.Execute()
}
