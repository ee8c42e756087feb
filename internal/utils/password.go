package utils

import "golang.org/x/crypto/bcrypt"

// Dentist accounts are created once and log in rarely; a cost above the
// default is affordable here.
const bcryptCost = 12

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(b), err
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
