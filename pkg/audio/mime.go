package audio

import (
	"strconv"
	"strings"
)

// IsRawPCMMime は MIME タイプが生 PCM ペイロードを示すかどうかを判定します。
// 音声コラボレーターは "audio/L16;codec=pcm;rate=24000" のような形式を
// 返すため、メディアタイプとパラメータの両方を見ます。
func IsRawPCMMime(mime string) bool {
	lowered := strings.ToLower(strings.TrimSpace(mime))
	if strings.HasPrefix(lowered, "audio/l16") || strings.HasPrefix(lowered, "audio/pcm") {
		return true
	}
	return strings.Contains(lowered, "codec=pcm")
}

// DeclaredSampleRate は MIME パラメータ中の rate= 値を取り出します。
// 診断用であり、エンコード時のレート決定には使いません。
func DeclaredSampleRate(mime string) (int, bool) {
	for _, param := range strings.Split(mime, ";") {
		param = strings.TrimSpace(strings.ToLower(param))
		value, found := strings.CutPrefix(param, "rate=")
		if !found {
			continue
		}
		rate, err := strconv.Atoi(value)
		if err != nil || rate <= 0 {
			return 0, false
		}
		return rate, true
	}
	return 0, false
}
