// Package cwfile はシナリオのバイナリファイル（.wsm）を読み込むためのパッケージです。
//
// バイナリはリトルエンディアンで、文字列は4バイトの長さ＋Shift-JISのバイト列として格納されています。
//
// 基本的な使い方:
//
//	f, err := os.Open("Summary.wsm")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//	summary, err := cwfile.DecodeSummary(cwfile.NewReader(f))
package cwfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// smallReadLimit 以下の長さは一括で確保して読み込みます
const smallReadLimit = 64 * 1024

// Reader はバイナリレコードから基本型を読み込みます。
// 各メソッドは読み込んだ分だけカーソルを進めます。
type Reader struct {
	r          io.Reader
	decodeWrap bool
}

// Option はReaderの設定オプション
type Option func(*Reader)

// WithDecodeWrap は呼び出し側で改行が正規化済みであることを指定します。
// trueの場合、複数行文字列のエスケープ変換を行いません。
func WithDecodeWrap(enabled bool) Option {
	return func(r *Reader) {
		r.decodeWrap = enabled
	}
}

// NewReader は新しいReaderを作成します
func NewReader(r io.Reader, opts ...Option) *Reader {
	reader := &Reader{r: r}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// read はちょうどnバイトを読み込みます
func (r *Reader) read(n int64) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: 不正な長さ %d", ErrTruncatedRecord, n)
	}
	if n <= smallReadLimit {
		buf := make([]byte, n)
		got, err := io.ReadFull(r.r, buf)
		if err != nil {
			return nil, readError(n, int64(got), err)
		}
		return buf, nil
	}

	// 壊れた長さで巨大なバッファを確保しないよう、読めた分だけ伸ばす
	var buf bytes.Buffer
	got, err := io.Copy(&buf, io.LimitReader(r.r, n))
	if err != nil {
		return nil, readError(n, got, err)
	}
	if got < n {
		return nil, readError(n, got, io.ErrUnexpectedEOF)
	}
	return buf.Bytes(), nil
}

func readError(want, got int64, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %d バイト中 %d バイトしか読めませんでした", ErrTruncatedRecord, want, got)
	}
	return err
}

// ReadSignedByte は符号付き1バイトを読み込みます
func (r *Reader) ReadSignedByte() (int8, error) {
	b, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// ReadUnsignedByte は符号無し1バイトを読み込みます
func (r *Reader) ReadUnsignedByte() (uint8, error) {
	b, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt16LE は2バイトのリトルエンディアン符号付き整数を読み込みます
func (r *Reader) ReadInt16LE() (int16, error) {
	b, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// ReadInt32LE は4バイトのリトルエンディアン符号付き整数を読み込みます
func (r *Reader) ReadInt32LE() (int32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadBoolean は1バイトを読み込み、0以外ならtrueを返します
func (r *Reader) ReadBoolean() (bool, error) {
	v, err := r.ReadSignedByte()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadString は長さ付き文字列を読み込みます。
// 長さが0の場合は長さ以外のバイトを消費せずに空文字列を返します。
// multilineがtrueの場合、改行を "\n" の2文字に置換します。
func (r *Reader) ReadString(multiline bool) (string, error) {
	s, err := r.readRawString()
	if err != nil {
		return "", err
	}
	if multiline && !r.decodeWrap {
		s = EncodeWrap(s)
	}
	return s, nil
}

func (r *Reader) readRawString() (string, error) {
	n, err := r.ReadInt32LE()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	raw, err := r.read(int64(n))
	if err != nil {
		return "", err
	}
	return strings.TrimRight(decodeShiftJIS(raw), "\x00"), nil
}

// decodeShiftJIS はShift-JISのバイト列を変換します。不正なバイトは置換文字になります。
func decodeShiftJIS(raw []byte) string {
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		// デコーダは不正なシーケンスを置換するため通常ここには来ない
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(decoded)
}

// ReadBlob は長さ付きのバイト列を読み込みます。長さが0の場合はnilを返します。
func (r *Reader) ReadBlob() ([]byte, error) {
	n, err := r.ReadInt32LE()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.read(int64(n))
}

// ReadRemaining は現在位置からストリームの終端までを読み込みます
func (r *Reader) ReadRemaining() ([]byte, error) {
	seeker, ok := r.r.(io.Seeker)
	if !ok {
		return nil, ErrNotSeekable
	}
	pos, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	end, err := seeker.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := seeker.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}
	return r.read(end - pos)
}

// EncodeWrap は保存用に改行をエスケープします。
// バックスラッシュは二重化し、LFは "\n" に置換し、CRは削除します。
func EncodeWrap(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, c := range s {
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}
