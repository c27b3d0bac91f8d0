package config

import (
	"os"
	"strconv"
	"strings"
)

// Exist сообщает, задана ли переменная окружения key.
func Exist(key string) bool {
	_, exist := os.LookupEnv(key)
	return exist
}

// GetEnv возвращает значение переменной без пробелов по краям.
func GetEnv(key string) string {
	val, _ := os.LookupEnv(key)
	return strings.TrimSpace(val)
}

// GetIntEnv возвращает числовое значение переменной или 0, если его не удалось разобрать.
func GetIntEnv(key string) int {
	v, err := strconv.Atoi(GetEnv(key))
	if err != nil {
		return 0
	}
	return v
}

// GetBoolEnv возвращает логическое значение переменной или false, если его не удалось разобрать.
func GetBoolEnv(key string) bool {
	v, err := strconv.ParseBool(GetEnv(key))
	if err != nil {
		return false
	}
	return v
}
