// Package fingerprint は生成リクエストの意味的同一性から決定的な
// キャッシュキーを導出します。
package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
)

// AudioIdentitySeparator はナレーション指示と本文を連結する区切り文字です。
// 長さプレフィックス等は付けないため、区切り文字を含む入力の組み合わせは
// 理論上同じキーに落ちますが、許容しています。
const AudioIdentitySeparator = ":"

// Image は画像プロンプト文字列そのものをダイジェスト化します。
// 大文字小文字・空白の正規化は行いません。1文字でも違えば別キーです。
func Image(prompt string) string {
	return digest(prompt)
}

// Audio はナレーション指示と本文を ":" で連結した同一性文字列を
// ダイジェスト化します。どちらか一方の変更でもキーが変わります。
func Audio(instruction, text string) string {
	return digest(instruction + AudioIdentitySeparator + text)
}

// digest は 128bit の MD5 を小文字 16 進 32 文字で返します。
// 暗号強度は不要で、キャッシュキーとしての衝突耐性があれば十分です。
func digest(identity string) string {
	sum := md5.Sum([]byte(identity))
	return hex.EncodeToString(sum[:])
}
