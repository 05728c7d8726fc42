// Package policy decides whether a payload is acceptable for relaying.
package policy

import "strings"

const (
	encryptedBeginMarker = "-----BEGIN ENCRYPTED MESSAGE-----"
	encryptedEndMarker   = "-----END ENCRYPTED MESSAGE-----"
)

// keyExchangePrefixes mark public key material clients exchange in the clear.
var keyExchangePrefixes = []string{
	"DILITHIUM_PUBLIC_KEY:",
	"EDDSA_PUBLIC_KEY:",
	"ECDH_PUBLIC_KEY:",
	"KYBER_PUBLIC_KEY:",
}

// IsEncrypted reports whether message is key material or an armored ciphertext
// block whose begin marker precedes its end marker.
func IsEncrypted(message string) bool {
	for _, prefix := range keyExchangePrefixes {
		if strings.HasPrefix(message, prefix) {
			return true
		}
	}

	begin := strings.Index(message, encryptedBeginMarker)
	end := strings.Index(message, encryptedEndMarker)
	return begin >= 0 && end >= 0 && begin < end
}
