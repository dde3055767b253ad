package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"aes-tool/configs"
	"aes-tool/crypto/aesmodes"
	"aes-tool/crypto/encoding"
)

func main() {
	size := configs.DefaultKeySize
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil {
			log.Fatalf("Usage: gen_keys [16|24|32]")
		}
		size = n
	}

	// Generate a new key
	key, err := aesmodes.NewKey(size)
	if err != nil {
		log.Fatalf("Failed to generate key: %v", err)
	}

	// Generate a new IV
	iv, err := aesmodes.NewIV()
	if err != nil {
		log.Fatalf("Failed to generate IV: %v", err)
	}

	// Print both in Base64, as the form expects them
	fmt.Printf("KEY: %s\n", encoding.EncodeBase64(key))
	fmt.Printf("IV: %s\n", encoding.EncodeBase64(iv))
}
