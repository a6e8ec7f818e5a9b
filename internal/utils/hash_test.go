// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MKhiriev/go-tenant-vault/models"
)

func TestInitHasherPoolAndHash(t *testing.T) {
	key := "secret-key"
	InitHasherPool(key)

	data := []byte("test-data")

	sum1 := Hash(data)
	sum2 := Hash(data)

	if len(sum1) == 0 {
		t.Fatal("hash result is empty")
	}

	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	// verify against direct HMAC computation
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	expected := h.Sum(nil)

	if !bytes.Equal(sum1, expected) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", expected, sum1)
	}
}

const testHashKey = "test-secret-key"

func TestHash_WithRealPayload(t *testing.T) {
	InitHasherPool(testHashKey)

	payload := models.EntryRequest{Name: "db_pass", Value: "hunter2"}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	mac := hmac.New(sha256.New, []byte(testHashKey))
	mac.Write(payloadBytes)

	got := HashHex(payloadBytes)
	want := hex.EncodeToString(mac.Sum(nil))

	if got != want {
		t.Errorf("Hash mismatch:\n  got:  %s\n  want: %s", got, want)
	}
}

func TestHash_DifferentPayloads(t *testing.T) {
	InitHasherPool(testHashKey)

	bytes1, _ := json.Marshal(models.EntryRequest{Name: "db_pass", Value: "one"})
	bytes2, _ := json.Marshal(models.EntryRequest{Name: "db_pass", Value: "two"})

	if hex.EncodeToString(Hash(bytes1)) == hex.EncodeToString(Hash(bytes2)) {
		t.Error("different payloads must produce different hashes")
	}
}

func TestHash_DifferentKeys(t *testing.T) {
	payloadBytes, _ := json.Marshal(models.EntryRequest{Name: "api_key", Value: "k"})

	InitHasherPool("key-one")
	hash1 := hex.EncodeToString(Hash(payloadBytes))

	InitHasherPool("key-two")
	hash2 := hex.EncodeToString(Hash(payloadBytes))

	if hash1 == hash2 {
		t.Error("different keys must produce different hashes for the same payload")
	}
}

func TestHashHex_KnownVector(t *testing.T) {
	// RFC 4231 test case 2
	InitHasherPool("Jefe")
	got := HashHex([]byte("what do ya want for nothing?"))
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"

	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestVerifyHex(t *testing.T) {
	InitHasherPool(testHashKey)
	body := []byte(`{"name":"db_pass"}`)
	sig := HashHex(body)

	tests := []struct {
		name      string
		signature string
		want      bool
	}{
		{name: "match", signature: sig, want: true},
		{name: "upper case hex", signature: strings.ToUpper(sig), want: true},
		{name: "other body", signature: HashHex([]byte("other")), want: false},
		{name: "not hex", signature: "zz", want: false},
		{name: "empty", signature: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyHex(body, tt.signature); got != tt.want {
				t.Errorf("VerifyHex(%q) = %v, want %v", tt.signature, got, tt.want)
			}
		})
	}
}
