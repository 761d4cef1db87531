package shopping

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 開頭的數量樣式：數字、小數點或簡單分數，例如 1、0.5、1/2
var leadingQuantity = regexp.MustCompile(`^[0-9./]+`)

// tokens 單行食材拆解結果
type tokens struct {
	quantity float64
	unit     string
	name     string
}

// fallbackTokens 無法判斷數量時的預設值：數量 1、無單位、整行為名稱
func fallbackTokens(line string) tokens {
	return tokens{quantity: 1, unit: "", name: line}
}

// tokenize 將已 trim 的單行拆成數量、單位與名稱
//
// 第一個 token 若以數量樣式開頭則為數量；第二個 token 非數字時視為單位，
// 但若取走單位後名稱會是空的（例如 "2 eggs"），第二個 token 歸入名稱。
// 任何解析失敗都回退為 fallbackTokens，不會回傳錯誤。
func tokenize(line string) tokens {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return fallbackTokens(line)
	}

	quantity, ok := parseQuantity(parts[0])
	if !ok {
		return fallbackTokens(line)
	}

	switch {
	case len(parts) == 1:
		return tokens{quantity: quantity}
	case isNumeric(parts[1]):
		return tokens{quantity: quantity, name: strings.Join(parts[1:], " ")}
	case len(parts) == 2:
		return tokens{quantity: quantity, name: parts[1]}
	default:
		return tokens{quantity: quantity, unit: parts[1], name: strings.Join(parts[2:], " ")}
	}
}

// parseQuantity 解析 token 開頭的數量，結果必須為正數
func parseQuantity(token string) (float64, bool) {
	value, ok := evalNumber(token)
	if !ok || value <= 0 {
		return 0, false
	}
	return value, true
}

// evalNumber 計算 token 開頭的數字
// 分數 a/b 回傳 a÷b；分母為 0、任一部分無法解析或溢位時回傳 false
func evalNumber(token string) (float64, bool) {
	candidate := leadingQuantity.FindString(token)
	if candidate == "" {
		return 0, false
	}

	var value float64
	if strings.Contains(candidate, "/") {
		fraction := strings.Split(candidate, "/")
		if len(fraction) != 2 {
			return 0, false
		}
		numerator, err := strconv.ParseFloat(fraction[0], 64)
		if err != nil {
			return 0, false
		}
		denominator, err := strconv.ParseFloat(fraction[1], 64)
		if err != nil || denominator == 0 {
			return 0, false
		}
		value = numerator / denominator
	} else {
		v, err := strconv.ParseFloat(candidate, 64)
		if err != nil {
			return 0, false
		}
		value = v
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// isNumeric 判斷 token 本身是否為數字
func isNumeric(token string) bool {
	_, ok := evalNumber(token)
	return ok
}
