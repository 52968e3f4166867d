package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

func GenerateSha256Hash[T any](data T) string {
	// Convert data to a string assuming it implements fmt.Stringer or similar
	// For structs, you might want to serialize them to JSON or another stable format
	dataString := fmt.Sprintf("%v", data)

	// Compute SHA-256 hash of the data string
	hash := sha256.Sum256([]byte(dataString))

	// Return the hexadecimal string representation of the hash
	return hex.EncodeToString(hash[:])
}

func GenerateUniqueHash() string {
	// Combine the current time and random data for the hash input
	currentTime := time.Now().UnixNano()
	randomBytes := make([]byte, 16) // 128 bits of random data
	_, err := rand.Read(randomBytes)
	if err != nil {
		panic("random number generator failed")
	}

	// Convert both pieces of data to byte slices and concatenate
	hashInput := append([]byte(fmt.Sprintf("%d", currentTime)), randomBytes...)

	// Compute SHA-256 hash
	hash := sha256.Sum256(hashInput)

	// Return the hexadecimal string representation of the hash
	return hex.EncodeToString(hash[:])
}
