// Package audio は生の PCM バイト列をインライン埋め込み可能な WAV 形式へ
// 組み立てる純粋関数群を提供します。I/O や共有状態は一切持ちません。
package audio

import (
	"encoding/base64"
	"encoding/binary"
)

// ----------------------------------------------------------------------
// WAV (RIFF/WAVE) ヘッダー定数
// ----------------------------------------------------------------------

const (
	// WavHeaderSize は正準的な 44 バイトヘッダーの合計サイズです。
	WavHeaderSize = 44

	// fmt チャンクの固定値。入力はモノラル 16bit リニア PCM を前提とし、
	// リサンプリングやチャンネル変換は行いません。
	fmtChunkSize       = 16
	audioFormatPCM     = 1
	numChannelsMono    = 1
	bitsPerSample16    = 16
	bytesPerSampleMono = 2

	// riffChunkBaseSize は RIFF チャンクサイズのうちデータ長を除いた
	// 固定部分（"WAVE" 以降ヘッダー末尾まで）です。
	riffChunkBaseSize = WavHeaderSize - 8

	// DefaultSampleRate は音声生成コラボレーターが返す生 PCM の
	// 想定サンプルレートです。宣言レートとの不一致は検知のみ行い、
	// 勝手に補正しません。
	DefaultSampleRate = 24000
)

// EncodeWAV は生のリトルエンディアン 16bit モノラル PCM バイト列に
// 44 バイトの RIFF/WAVE ヘッダーを前置し、自己完結した WAV ファイルの
// バイト列を返します。PCM データ自体には一切手を加えません。
// 空の入力でも構造的に正しい無音 WAV（44 バイト）を返します。
func EncodeWAV(pcm []byte, sampleRate int) []byte {
	dataLen := len(pcm)
	buf := make([]byte, WavHeaderSize+dataLen)

	// RIFF チャンク
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(riffChunkBaseSize+dataLen))
	copy(buf[8:12], "WAVE")

	// fmt チャンク
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(buf[20:22], audioFormatPCM)
	binary.LittleEndian.PutUint16(buf[22:24], numChannelsMono)
	binary.LittleEndian.PutUint32(buf[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(sampleRate*bytesPerSampleMono))
	binary.LittleEndian.PutUint16(buf[32:34], bytesPerSampleMono)
	binary.LittleEndian.PutUint16(buf[34:36], bitsPerSample16)

	// data チャンク
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataLen))
	copy(buf[WavHeaderSize:], pcm)

	return buf
}

// EncodeWAVDataURI は EncodeWAV の結果を base64 化し、URL の代わりに
// そのまま埋め込める data URI として返します。
func EncodeWAVDataURI(pcm []byte, sampleRate int) string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(EncodeWAV(pcm, sampleRate))
}
