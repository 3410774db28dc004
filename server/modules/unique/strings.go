package unique

import (
	crand "crypto/rand"
	"encoding/base64"
	"math/big"

	"github.com/casegen/casegen/server/logger"
)

const alphaNumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateRandomBase64String returns length random bytes, base64 encoded.
func GenerateRandomBase64String(length int) string {
	bytes := make([]byte, length)
	_, err := crand.Read(bytes)
	if err != nil {
		panic(err)
	}

	return base64.RawURLEncoding.EncodeToString(bytes)
}

// GenerateRandomBase62String returns a random alphanumeric string of the given length.
func GenerateRandomBase62String(length int) (string, error) {
	maxRand := big.NewInt(int64(len(alphaNumeric)))
	chars := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := crand.Int(crand.Reader, maxRand)
		if err != nil {
			logger.AppLog.Errorf("error: %+v", err)
			return "", err
		}
		chars[i] = alphaNumeric[n.Int64()]
	}
	return string(chars), nil
}
