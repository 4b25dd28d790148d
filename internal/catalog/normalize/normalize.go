// Package normalize は.wsmとSummary.xmlから読み取った値をカタログ用のメタデータにそろえます
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
	"github.com/shiroemons/go-cwcatalog/pkg/cwfile"
	"github.com/shiroemons/go-cwcatalog/pkg/textenc"
)

// Labels は出力に使う表記です
type Labels struct {
	OG       string `toml:"og"`
	Next     string `toml:"next"`
	Py       string `toml:"py"`
	Korean   string `toml:"korean"`
	Japanese string `toml:"japanese"`
	Unknown  string `toml:"unknown"`
}

// DefaultLabels は既定の表記を返します
func DefaultLabels() Labels {
	return Labels{
		OG:       "OG",
		Next:     "NEXT",
		Py:       "Py",
		Korean:   "kr",
		Japanese: "jp",
		Unknown:  "Unknown",
	}
}

// withDefaults は空の表記を既定値で埋めます
func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&l.OG, d.OG)
	fill(&l.Next, d.Next)
	fill(&l.Py, d.Py)
	fill(&l.Korean, d.Korean)
	fill(&l.Japanese, d.Japanese)
	fill(&l.Unknown, d.Unknown)
	return l
}

// Source はレコードの取得元です
type Source struct {
	PathID  string
	Kind    models.SourceKind
	ModTime time.Time // 最も外側のファイルの更新日時
}

// Normalizer はメタデータの正規化を行います
type Normalizer struct {
	labels Labels
}

// New は新しいNormalizerを作成します
func New(labels Labels) *Normalizer {
	return &Normalizer{labels: labels.withDefaults()}
}

// Labels は使用中の表記を返します
func (n *Normalizer) Labels() Labels {
	return n.labels
}

// Default はすべての項目が既定値のレコードを返します
func (n *Normalizer) Default(src Source, version string) *models.CanonicalMetadata {
	return &models.CanonicalMetadata{
		PathID:        src.PathID,
		Title:         n.labels.Unknown,
		Author:        n.labels.Unknown,
		Version:       version,
		ImagePaths:    []string{},
		PositionTypes: []string{},
		Language:      n.labels.Unknown,
		ModTime:       src.ModTime,
		Source:        src.Kind,
	}
}

// FromBinary は.wsmの概要からレコードを作成します
func (n *Normalizer) FromBinary(src Source, s *cwfile.Summary) *models.CanonicalMetadata {
	m := n.Default(src, n.BinaryVersion(s.Version))
	m.Title = n.orUnknown(s.Name)
	m.Author = n.orUnknown(s.Author)
	if s.HasLevel() {
		m.LevelMin = int(s.LevelMin)
		m.LevelMax = int(s.LevelMax)
	}
	m.CouponNum = int(s.RequiredCouponNum)
	m.CouponName = s.RequiredCoupons
	m.Description = s.Description
	// .wsmは日本語版のエンジンでのみ作られる
	m.Language = n.labels.Japanese
	return m
}

// FromXML はSummary.xmlの内容からレコードを作成します
func (n *Normalizer) FromXML(src Source, r *models.XMLSummaryRecord) *models.CanonicalMetadata {
	m := n.Default(src, n.labels.Py)
	m.Title = n.orUnknown(r.Name)
	m.Author = n.orUnknown(r.Author)
	if r.HasLevel {
		m.LevelMin = atoiOrZero(r.LevelMin)
		m.LevelMax = atoiOrZero(r.LevelMax)
	}
	m.CouponNum = r.RequiredCouponNum
	m.CouponName = r.RequiredCoupons
	m.ImagePaths = append(m.ImagePaths, r.ImagePaths...)
	m.PositionTypes = append(m.PositionTypes, r.PositionTypes...)
	m.Description = r.Description
	m.Language = n.Language(r.Language)
	return m
}

// BinaryVersion は.wsmのバージョン番号を表記に変換します
func (n *Normalizer) BinaryVersion(version int) string {
	if version == cwfile.VersionNext {
		return n.labels.Next
	}
	return n.labels.OG
}

// Language は推定した言語を表記に変換します
func (n *Normalizer) Language(l textenc.Language) string {
	switch l {
	case textenc.LanguageKorean:
		return n.labels.Korean
	case textenc.LanguageJapanese:
		return n.labels.Japanese
	default:
		return n.labels.Unknown
	}
}

func (n *Normalizer) orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return n.labels.Unknown
	}
	return s
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
