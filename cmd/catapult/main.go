package main

import "github.com/catapult-build/catapult/cmd/catapult/internal"

func main() {
	internal.Execute()
}
