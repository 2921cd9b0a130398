package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Алфавит без визуально похожих символов (0/O, 1/I/L) —
// коды вводятся игроками вручную.
const accessCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const AccessCodeLength = 8

// GenerateAccessCode возвращает криптослучайный код приглашения команды.
func GenerateAccessCode() (string, error) {
	code := make([]byte, AccessCodeLength)
	max := big.NewInt(int64(len(accessCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = accessCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
