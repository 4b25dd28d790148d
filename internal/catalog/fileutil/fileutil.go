// Package fileutil はスキャン対象の探索とパス識別子のユーティリティを提供します
package fileutil

import (
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
)

// ManifestFileName はフォルダ形式のシナリオが持つ概要ファイル名
const ManifestFileName = "Summary.xml"

// entrySeparator はコンテナとエントリを区切る文字
const entrySeparator = "!"

// PathID はファイルシステム上のパスを区切り文字を "/" にそろえた識別子にします
func PathID(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// SplitPathID はアーカイブ内エントリの識別子をコンテナとエントリに分けます。
// ".zip!" を含まない識別子は ok=false を返します。
func SplitPathID(id string) (container, entry string, ok bool) {
	marker := ".zip" + entrySeparator
	idx := strings.Index(strings.ToLower(id), marker)
	if idx < 0 {
		return "", "", false
	}
	cut := idx + len(".zip")
	return filepath.FromSlash(id[:cut]), id[cut+len(entrySeparator):], true
}

// Classify はファイル名から判定対象の種類を返します
func Classify(name string) models.SourceKind {
	base := filepath.Base(name)
	if base == ManifestFileName {
		return models.SourceFolder
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".wsm":
		return models.SourceWSM
	case ".wsn":
		return models.SourceWSN
	case ".zip":
		return models.SourceZip
	default:
		return models.SourceUnknown
	}
}
