package aes

import (
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := []byte("homeswap-aes-key-32-bytes-long!!")
	plain := []byte("13800138000")

	encoded, err := Encrypt(plain, key)
	if err != nil {
		t.Fatal(err)
	}
	if encoded == string(plain) {
		t.Fatal("ciphertext equals plaintext")
	}

	decoded, err := Decrypt(encoded, key)
	if err != nil {
		t.Fatal(err)
	}
	if string(decoded) != string(plain) {
		t.Errorf("round trip = %q, want %q", decoded, plain)
	}
}

func TestEncryptNonceUnique(t *testing.T) {
	key := []byte("short key")
	a, err := Encrypt([]byte("data"), key)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Encrypt([]byte("data"), key)
	if err != nil {
		t.Fatal(err)
	}
	// 随机 Nonce：同一明文两次加密产生不同密文
	if a == b {
		t.Error("expected distinct ciphertexts for the same plaintext")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	encoded, err := Encrypt([]byte("secret"), []byte("key-one"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decrypt(encoded, []byte("key-two")); err == nil {
		t.Error("expected error decrypting with a different key")
	}
}

func TestDecryptGarbage(t *testing.T) {
	if _, err := Decrypt("not base64!!", []byte("key")); err == nil {
		t.Error("expected error for invalid base64 input")
	}
	if _, err := Decrypt("YWJj", []byte("key")); err == nil {
		t.Error("expected error for ciphertext shorter than nonce")
	}
}
