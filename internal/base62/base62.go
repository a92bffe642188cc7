// Package base62 кодирует целочисленные идентификаторы в компактные
// короткие коды. Коды уникальны до тех пор, пока уникальны идентификаторы.
package base62

import "strings"

// Порядок символов фиксирован: цифры, верхний регистр, нижний регистр.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = uint64(len(alphabet))

// Encode конвертирует число в base62 строку. Encode(0) возвращает "0".
func Encode(num uint64) string {
	if num == 0 {
		return string(alphabet[0])
	}

	var buf []byte
	for num > 0 {
		buf = append(buf, alphabet[num%base])
		num /= base
	}

	// Остатки накапливаются от младшего разряда к старшему.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// Decode конвертирует base62 строку обратно в число.
func Decode(encoded string) uint64 {
	var num uint64
	for i := 0; i < len(encoded); i++ {
		num = num*base + uint64(strings.IndexByte(alphabet, encoded[i]))
	}
	return num
}
