package utils

import "golang.org/x/crypto/bcrypt"

// BcryptCost выше дефолтных 10: регистрация редкая, логин не на горячем пути.
const BcryptCost = 12

// HashPassword возвращает bcrypt-хеш пароля.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(bytes), err
}

// CheckPasswordHash сверяет пароль с хешем, не раскрывая причину отказа.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
