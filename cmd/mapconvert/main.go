package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/akmonengine/blockgame/legacymap"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s input.blm output.lua\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	data, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("Failed to read map: %v", err)
	}
	blocks, err := legacymap.Decode(data)
	if err != nil {
		log.Fatalf("Failed to read map: %v", err)
	}
	record, err := legacymap.RecordName(output)
	if err != nil {
		log.Fatalf("Invalid scene name: %v", err)
	}

	f, err := os.Create(output)
	if err != nil {
		log.Fatalf("Failed to create scene: %v", err)
	}
	w := bufio.NewWriter(f)
	if err := legacymap.Convert(w, blocks, record); err != nil {
		log.Fatalf("Failed to write scene: %v", err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("Failed to write scene: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to write scene: %v", err)
	}

	log.Printf("Converted %d blocks from %s into %s", len(blocks), input, output)
}
