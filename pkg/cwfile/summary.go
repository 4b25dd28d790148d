package cwfile

import (
	"fmt"
	"io"
)

// 変数スロット数はフォーマットの一部であり変更できません
const (
	StepVariableCount = 10
	FlagVariableCount = 2
)

// VersionNext はNEXT系エンジンが出力するバージョン番号
const VersionNext = 7

// stepCapHint は壊れた個数で巨大なスライスを確保しないための上限
const stepCapHint = 1024

// Step はステップ（多値の状態変数）を表します
type Step struct {
	Name          string
	Default       int32
	VariableNames [StepVariableCount]string
}

// Flag はフラグ（真偽値の状態変数）を表します
type Flag struct {
	Name          string
	Default       bool
	VariableNames [FlagVariableCount]string
}

// Summary は.wsmファイルから読み込んだ概要情報を表します
type Summary struct {
	Image             []byte // 埋め込みサムネイル（無い場合はnil）
	Name              string
	Description       string
	Author            string
	RequiredCoupons   string // 複数行
	RequiredCouponNum int32
	AreaID            int32 // バージョンに応じて補正済み
	Version           int
	LevelMin          int32 // Version > 0 の場合のみ有効
	LevelMax          int32
	Steps             []Step
	Flags             []Flag
}

// HasLevel は対象レベルがレコードに含まれているかを返します
func (s *Summary) HasLevel() bool {
	return s.Version > 0
}

// IsNext はNEXT形式のシナリオかどうかを返します
func (s *Summary) IsNext() bool {
	return s.Version == VersionNext
}

// VersionForAreaID はエリアIDからバージョンと補正後のエリアIDを求めます
func VersionForAreaID(areaID int32) (int, int32) {
	switch {
	case areaID <= 19999:
		return 0, areaID
	case areaID <= 39999:
		return 2, areaID - 20000
	case areaID <= 49999:
		return 4, areaID - 40000
	default:
		return VersionNext, areaID - 70000
	}
}

// DecodeSummaryFrom はストリームから概要情報を読み込みます
func DecodeSummaryFrom(r io.Reader, opts ...Option) (*Summary, error) {
	return DecodeSummary(NewReader(r, opts...))
}

// DecodeSummary は概要情報を読み込みます。フィールドの順序はフォーマットで固定されています。
func DecodeSummary(r *Reader) (*Summary, error) {
	s := &Summary{}
	var err error

	if s.Image, err = r.ReadBlob(); err != nil {
		return nil, fieldError("画像", err)
	}
	if s.Name, err = r.ReadString(false); err != nil {
		return nil, fieldError("名前", err)
	}
	if s.Description, err = r.ReadString(false); err != nil {
		return nil, fieldError("解説", err)
	}
	if s.Author, err = r.ReadString(false); err != nil {
		return nil, fieldError("作者", err)
	}
	if s.RequiredCoupons, err = r.ReadString(true); err != nil {
		return nil, fieldError("必須クーポン", err)
	}
	if s.RequiredCouponNum, err = r.ReadInt32LE(); err != nil {
		return nil, fieldError("必須クーポン数", err)
	}
	areaID, err := r.ReadInt32LE()
	if err != nil {
		return nil, fieldError("エリアID", err)
	}
	s.Version, s.AreaID = VersionForAreaID(areaID)

	if s.Steps, err = decodeSteps(r); err != nil {
		return nil, err
	}
	if s.Flags, err = decodeFlags(r); err != nil {
		return nil, err
	}

	// 用途不明のフィールド
	if _, err := r.ReadInt32LE(); err != nil {
		return nil, fieldError("予約領域", err)
	}

	if s.HasLevel() {
		if s.LevelMin, err = r.ReadInt32LE(); err != nil {
			return nil, fieldError("対象レベル下限", err)
		}
		if s.LevelMax, err = r.ReadInt32LE(); err != nil {
			return nil, fieldError("対象レベル上限", err)
		}
	}

	return s, nil
}

func decodeSteps(r *Reader) ([]Step, error) {
	count, err := readCount(r, "ステップ数")
	if err != nil {
		return nil, err
	}
	steps := make([]Step, 0, min(count, stepCapHint))
	for i := 0; i < count; i++ {
		step, err := decodeStep(r)
		if err != nil {
			return nil, fmt.Errorf("ステップ[%d]: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// decodeStep は名前、初期値、変数名10個の順に読み込みます
func decodeStep(r *Reader) (Step, error) {
	var step Step
	var err error
	if step.Name, err = r.ReadString(false); err != nil {
		return step, fieldError("名前", err)
	}
	if step.Default, err = r.ReadInt32LE(); err != nil {
		return step, fieldError("初期値", err)
	}
	for i := range step.VariableNames {
		if step.VariableNames[i], err = r.ReadString(false); err != nil {
			return step, fieldError(fmt.Sprintf("変数名[%d]", i), err)
		}
	}
	return step, nil
}

func decodeFlags(r *Reader) ([]Flag, error) {
	count, err := readCount(r, "フラグ数")
	if err != nil {
		return nil, err
	}
	flags := make([]Flag, 0, min(count, stepCapHint))
	for i := 0; i < count; i++ {
		flag, err := decodeFlag(r)
		if err != nil {
			return nil, fmt.Errorf("フラグ[%d]: %w", i, err)
		}
		flags = append(flags, flag)
	}
	return flags, nil
}

// decodeFlag は名前、初期値、変数名2個の順に読み込みます
func decodeFlag(r *Reader) (Flag, error) {
	var flag Flag
	var err error
	if flag.Name, err = r.ReadString(false); err != nil {
		return flag, fieldError("名前", err)
	}
	if flag.Default, err = r.ReadBoolean(); err != nil {
		return flag, fieldError("初期値", err)
	}
	for i := range flag.VariableNames {
		if flag.VariableNames[i], err = r.ReadString(false); err != nil {
			return flag, fieldError(fmt.Sprintf("変数名[%d]", i), err)
		}
	}
	return flag, nil
}

func readCount(r *Reader, field string) (int, error) {
	n, err := r.ReadInt32LE()
	if err != nil {
		return 0, fieldError(field, err)
	}
	// 負の個数は0件として読み進める
	return max(int(n), 0), nil
}

func fieldError(field string, err error) error {
	return fmt.Errorf("%sの読み込みに失敗しました: %w", field, err)
}
