package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	for {
		t, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		// 若讀到額外 token，視為錯誤
		if t != nil {
			return fmt.Errorf("unexpected extra JSON data")
		}
	}
}

var unquotedKeyPattern = regexp.MustCompile(`([{\[,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)

// QuoteJSONKeys 將未加雙引號的鍵補上雙引號
func QuoteJSONKeys(raw string) string {
	return unquotedKeyPattern.ReplaceAllString(raw, `$1"$2":`)
}

// ExtractJSONObject 從 AI 回應擷取 JSON 物件
// 去掉 ```json ... ``` 包裹，並擷取第一個 { 到最後一個 }
func ExtractJSONObject(content string) string {
	txt := strings.TrimSpace(content)
	txt = strings.TrimPrefix(txt, "```json")
	txt = strings.TrimPrefix(txt, "```")
	txt = strings.TrimSuffix(txt, "```")
	txt = strings.TrimSpace(txt)
	if start, end := strings.Index(txt, "{"), strings.LastIndex(txt, "}"); start != -1 && end != -1 && end > start {
		txt = txt[start : end+1]
	}
	return txt
}

// ParseAIJSON 解析 AI 回傳的 JSON；第一次失敗時補上鍵的雙引號再試一次
func ParseAIJSON(content string, v interface{}) error {
	txt := ExtractJSONObject(content)
	if txt == "" {
		return fmt.Errorf("empty AI response")
	}
	err := ParseJSON(txt, v)
	if err == nil {
		return nil
	}
	if retryErr := ParseJSON(QuoteJSONKeys(txt), v); retryErr == nil {
		return nil
	}
	return fmt.Errorf("failed to parse AI response: %w", err)
}
