// Package parser はSummary.xmlの解析を行います
package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/shiroemons/go-cwcatalog/internal/catalog/errors"
	"github.com/shiroemons/go-cwcatalog/internal/catalog/models"
	"github.com/shiroemons/go-cwcatalog/pkg/textenc"
)

// ManifestFileName はフォルダ形式のシナリオが持つ概要ファイル名
const ManifestFileName = "Summary.xml"

type document struct {
	Property *property `xml:"Property"`
}

type property struct {
	Name            *string     `xml:"Name"`
	Author          *string     `xml:"Author"`
	Description     string      `xml:"Description"`
	Level           *level      `xml:"Level"`
	ImagePaths      *imagePaths `xml:"ImagePaths"`
	ImagePath       []imagePath `xml:"ImagePath"`
	RequiredCoupons *coupons    `xml:"RequiredCoupons"`
}

type level struct {
	Min string `xml:"min,attr"`
	Max string `xml:"max,attr"`
}

type imagePaths struct {
	Items []imagePath `xml:"ImagePath"`
}

type imagePath struct {
	Path         string `xml:",chardata"`
	PositionType string `xml:"positiontype,attr"`
}

type coupons struct {
	Number string `xml:"number,attr"`
	Name   string `xml:",chardata"`
}

// ManifestParser はSummary.xmlを解析します
type ManifestParser struct{}

// NewManifestParser は新しいManifestParserを作成します
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// Parse は文字コードを判別してからSummary.xmlを解析します。
// name はエラーメッセージに使うファイル名です。
func (p *ManifestParser) Parse(name string, raw []byte) (*models.XMLSummaryRecord, error) {
	decoded := textenc.Decode(raw)
	record, err := p.ParseText(decoded.Text)
	if err != nil {
		return nil, apperrors.NewParseError(name, err)
	}
	record.Encoding = decoded.Encoding
	return record, nil
}

// ParseText はUTF-8に変換済みのSummary.xmlを解析します
func (p *ManifestParser) ParseText(text string) (*models.XMLSummaryRecord, error) {
	var doc document
	decoder := xml.NewDecoder(strings.NewReader(text))
	// 宣言された文字コードに関わらず、本文は変換済み
	decoder.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) {
		return in, nil
	}
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrXMLMalformed, err)
	}

	record := &models.XMLSummaryRecord{
		Language: textenc.DetectLanguage(text),
	}
	prop := doc.Property
	if prop == nil {
		return record, nil
	}

	if prop.Name != nil {
		record.Name = strings.TrimSpace(*prop.Name)
	}
	if prop.Author != nil {
		record.Author = strings.TrimSpace(*prop.Author)
	}
	record.Description = prop.Description

	if prop.Level != nil {
		record.HasLevel = true
		record.LevelMin = strings.TrimSpace(prop.Level.Min)
		record.LevelMax = strings.TrimSpace(prop.Level.Max)
	}

	// ImagePaths の子要素の後に、Property 直下の最初の ImagePath を加える
	if prop.ImagePaths != nil {
		for _, img := range prop.ImagePaths.Items {
			record.ImagePaths = append(record.ImagePaths, strings.TrimSpace(img.Path))
			record.PositionTypes = append(record.PositionTypes, img.PositionType)
		}
	}
	if len(prop.ImagePath) > 0 {
		img := prop.ImagePath[0]
		record.ImagePaths = append(record.ImagePaths, strings.TrimSpace(img.Path))
		record.PositionTypes = append(record.PositionTypes, img.PositionType)
	}

	if prop.RequiredCoupons != nil {
		record.RequiredCoupons = strings.TrimSpace(prop.RequiredCoupons.Name)
		record.RequiredCouponNum = atoiOrZero(prop.RequiredCoupons.Number)
	}

	return record, nil
}

// atoiOrZero は数値として読めない文字列を0として扱います
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// IsManifest は名前が概要XMLで終わるかどうかを大文字小文字を区別せずに判定します
func IsManifest(name string) bool {
	return hasSuffixFold(name, "summary.xml")
}

// IsBinarySummary は名前が概要.wsmで終わるかどうかを大文字小文字を区別せずに判定します
func IsBinarySummary(name string) bool {
	return hasSuffixFold(name, "summary.wsm")
}

func hasSuffixFold(name, suffix string) bool {
	return len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix)
}
