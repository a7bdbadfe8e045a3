package main

import "github.com/qobs-build/tr2make/cmd"

func main() {
	cmd.Execute()
}
