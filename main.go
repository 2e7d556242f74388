package main

import "rockerboo/mockito-tools/cmd"

func main() {
	cmd.Execute()
}
