package generator

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	errGCSReaderUnavailable  = errors.New("gs:// リーダーが設定されていません")
	errHTTPClientUnavailable = errors.New("HTTPクライアントが設定されていません")
)

// isSafeURL は、SSRF (Server-Side Request Forgery) 対策として参照画像の
// URL を検証します。http/https スキームのみを許可し、プライベートIPや
// ループバックアドレスへの解決を拒否します。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	ips, err := net.LookupIP(parsedURL.Hostname())
	if err != nil {
		return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", parsedURL.Hostname(), err)
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
