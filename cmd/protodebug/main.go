// Package main implements the protodebug command. It decodes a message
// described by a descriptor set and prints its text rendering.
//
//	protoc --include_imports --descriptor_set_out=set.pb api.proto
//	protodebug render -d set.pb -t pkg.Msg -i msg.bin -o singleline
package main

import (
	"os"

	"go.dedis.ch/protodebug"
)

func main() {
	err := newApp(os.Stdin, os.Stdout, os.Stderr).Run(os.Args)
	if err != nil {
		protodebug.Logger.Fatal().Err(err).Msg("command failed")
	}
}
