// Package models はシナリオカタログで使用するデータモデルを定義します
package models

import (
	"fmt"
	"time"

	"github.com/shiroemons/go-cwcatalog/pkg/textenc"
)

// SourceKind はレコードの取得元の種類を表します
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceFolder             // Summary.xml を持つフォルダ
	SourceWSM                // .wsm ファイル
	SourceWSN                // .wsn アーカイブ
	SourceZip                // .zip 内のエントリ
)

var sourceNames = map[SourceKind]string{
	SourceUnknown: "unknown",
	SourceFolder:  "folder",
	SourceWSM:     "wsm",
	SourceWSN:     "wsn",
	SourceZip:     "zip",
}

// String は種類の名前を返します
func (k SourceKind) String() string {
	if name, ok := sourceNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

// MarshalText は種類を名前として出力します
func (k SourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// XMLSummaryRecord は Summary.xml の Property 要素から読み取った値を保持します
type XMLSummaryRecord struct {
	Name              string
	Author            string
	LevelMin          string // Level要素の min 属性（生の文字列）
	LevelMax          string // Level要素の max 属性（生の文字列）
	HasLevel          bool
	Description       string
	ImagePaths        []string
	PositionTypes     []string
	RequiredCouponNum int
	RequiredCoupons   string
	Language          textenc.Language
	Encoding          string // 変換に使用した文字コード
}

// ArchiveEntry はアーカイブ内で見つかった対象エントリ
type ArchiveEntry struct {
	ContainerPath string
	RawName       string
	DisplayName   string
	Index         int
	Encrypted     bool
}

// PathID はカタログ上の識別子 "<container>!<entry>" を返します
func (e ArchiveEntry) PathID() string {
	return e.ContainerPath + "!" + e.DisplayName
}

// CanonicalMetadata はカタログへ渡す正規化済みのメタデータです。
// 取得できなかった項目は既定値で埋められ、nil のスライスは持ちません。
type CanonicalMetadata struct {
	PathID        string     `json:"path" yaml:"path"`
	Title         string     `json:"title" yaml:"title"`
	Author        string     `json:"author" yaml:"author"`
	Version       string     `json:"version" yaml:"version"`
	LevelMin      int        `json:"level_min" yaml:"level_min"`
	LevelMax      int        `json:"level_max" yaml:"level_max"`
	CouponNum     int        `json:"coupon_num" yaml:"coupon_num"`
	CouponName    string     `json:"coupon_name" yaml:"coupon_name"`
	ImagePaths    []string   `json:"image_paths" yaml:"image_paths"`
	PositionTypes []string   `json:"position_types" yaml:"position_types"`
	Description   string     `json:"description" yaml:"description"`
	Language      string     `json:"language" yaml:"language"`
	ModTime       time.Time  `json:"mod_time" yaml:"mod_time"`
	Source        SourceKind `json:"source" yaml:"source"`
}

// ScanStats はスキャン結果の集計です
type ScanStats struct {
	Files    int `json:"files" yaml:"files"`       // 判定対象になったパスの数
	Records  int `json:"records" yaml:"records"`   // 受け渡したレコードの数
	Degraded int `json:"degraded" yaml:"degraded"` // 既定値で埋めたレコードの数
	Skipped  int `json:"skipped" yaml:"skipped"`   // レコードを作らなかったパスの数
}

// Candidate はスキャンで見つかった判定対象のパス
type Candidate struct {
	Path string
	Kind SourceKind
}
