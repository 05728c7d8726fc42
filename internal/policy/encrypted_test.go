package policy

import "testing"

func TestIsEncrypted(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{name: "armored block", message: "-----BEGIN ENCRYPTED MESSAGE-----\nAAAA\n-----END ENCRYPTED MESSAGE-----", want: true},
		{name: "armored block with prefix text", message: "hi -----BEGIN ENCRYPTED MESSAGE-----x-----END ENCRYPTED MESSAGE-----", want: true},
		{name: "markers reversed", message: "-----END ENCRYPTED MESSAGE----- -----BEGIN ENCRYPTED MESSAGE-----", want: false},
		{name: "begin only", message: "-----BEGIN ENCRYPTED MESSAGE----- oops", want: false},
		{name: "dilithium key", message: "DILITHIUM_PUBLIC_KEY:abcd", want: true},
		{name: "eddsa key", message: "EDDSA_PUBLIC_KEY:abcd", want: true},
		{name: "ecdh key", message: "ECDH_PUBLIC_KEY:abcd", want: true},
		{name: "kyber key", message: "KYBER_PUBLIC_KEY:abcd", want: true},
		{name: "key prefix not at start", message: " KYBER_PUBLIC_KEY:abcd", want: false},
		{name: "plain text", message: "hello world", want: false},
		{name: "empty", message: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEncrypted(tt.message); got != tt.want {
				t.Fatalf("IsEncrypted(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
