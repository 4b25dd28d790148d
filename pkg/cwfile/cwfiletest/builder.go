// Package cwfiletest はテスト用に.wsm形式のバイト列を組み立てます
package cwfiletest

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/japanese"

	"github.com/shiroemons/go-cwcatalog/pkg/cwfile"
)

// Builder はリトルエンディアンのレコードを書き込みます
type Builder struct {
	buf bytes.Buffer
}

// NewBuilder は新しいBuilderを作成します
func NewBuilder() *Builder {
	return &Builder{}
}

// Int32 は4バイト整数を書き込みます
func (b *Builder) Int32(v int32) *Builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	b.buf.Write(tmp[:])
	return b
}

// Int16 は2バイト整数を書き込みます
func (b *Builder) Int16(v int16) *Builder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], uint16(v))
	b.buf.Write(tmp[:])
	return b
}

// Byte は1バイトを書き込みます
func (b *Builder) Byte(v byte) *Builder {
	b.buf.WriteByte(v)
	return b
}

// Bool は真偽値を1バイトで書き込みます
func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.Byte(1)
	}
	return b.Byte(0)
}

// String はShift-JISに変換して長さ付きで書き込みます。空文字列は長さ0のみになります。
func (b *Builder) String(s string) *Builder {
	if s == "" {
		return b.Int32(0)
	}
	encoded, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return b.Raw(encoded)
}

// Raw はバイト列を長さ付きで書き込みます
func (b *Builder) Raw(p []byte) *Builder {
	b.Int32(int32(len(p)))
	b.buf.Write(p)
	return b
}

// Blob はバイト列を長さ付きで書き込みます。nilの場合は長さ0のみになります。
func (b *Builder) Blob(p []byte) *Builder {
	if len(p) == 0 {
		return b.Int32(0)
	}
	return b.Raw(p)
}

// Step はステップを書き込みます
func (b *Builder) Step(s cwfile.Step) *Builder {
	b.String(s.Name).Int32(s.Default)
	for _, name := range s.VariableNames {
		b.String(name)
	}
	return b
}

// Flag はフラグを書き込みます
func (b *Builder) Flag(f cwfile.Flag) *Builder {
	b.String(f.Name).Bool(f.Default)
	for _, name := range f.VariableNames {
		b.String(name)
	}
	return b
}

// Bytes は書き込んだバイト列を返します
func (b *Builder) Bytes() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// Summary は概要情報を.wsm形式で組み立てます。
// areaIDはファイルに書かれる生の値です。レベルはareaIDが19999を超える場合のみ書き込みます。
func Summary(s cwfile.Summary, areaID int32) []byte {
	b := NewBuilder().
		Blob(s.Image).
		String(s.Name).
		String(s.Description).
		String(s.Author).
		String(s.RequiredCoupons).
		Int32(s.RequiredCouponNum).
		Int32(areaID)

	b.Int32(int32(len(s.Steps)))
	for _, step := range s.Steps {
		b.Step(step)
	}
	b.Int32(int32(len(s.Flags)))
	for _, flag := range s.Flags {
		b.Flag(flag)
	}
	b.Int32(0)

	if areaID > 19999 {
		b.Int32(s.LevelMin).Int32(s.LevelMax)
	}
	return b.Bytes()
}
