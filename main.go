package main

import "nathanbeddoewebdev/rscloud/cmd"

func main() {
	cmd.Execute()
}
