// Package aes 提供 AES-GCM 加解密封装
// 用于联系方式（电话号码）落库前加密，仅在解锁流程中解密
package aes

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

// deriveKey 将任意长度密钥规整为 32 字节（AES-256）
func deriveKey(key []byte) []byte {
	sum := sha256.Sum256(key)
	return sum[:]
}

// Encrypt 加密数据并返回 base64 编码的密文
// Nonce 随机生成并附加在密文头部
func Encrypt(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return "", err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	// GCM 需要一个随机的 Nonce，每次加密都重新生成
	nonce := make([]byte, aesGCM.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// 加密并附加 Nonce 在密文头部
	ciphertext := aesGCM.Seal(nonce, nonce, data, nil)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt 解密 base64 编码的密文
func Decrypt(encoded string, key []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(key))
	if err != nil {
		return nil, err
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()
	if len(raw) < nonceSize {
		return nil, errors.New("ciphertext shorter than nonce")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	return aesGCM.Open(nil, nonce, ciphertext, nil)
}
