package main

import "github.com/oshokin/alarm-clock/cmd/alarm-clockd/cmd"

func main() {
	cmd.Execute()
}
