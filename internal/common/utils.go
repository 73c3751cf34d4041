// Package common holds small helpers shared across the extraction pipeline.
package common

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"strings"
)

// NormalizeText cleans up a string by trimming each line and collapsing the
// result into single-space-separated text.
func NormalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

// ContentHash computes the SHA256 hash of data and returns it as a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
