// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package arcana_logic

import (
	"log"

	"github.com/zintix-labs/tarotlab/recorder"
	"github.com/zintix-labs/tarotlab/sdk/buf"
	"github.com/zintix-labs/tarotlab/sdk/core"
	"github.com/zintix-labs/tarotlab/sdk/gen"
	"github.com/zintix-labs/tarotlab/sdk/slot"
	"github.com/zintix-labs/tarotlab/spec"
)

// ============================================================
// ** 註冊 **
// ============================================================

const (
	logicKeyArcana = spec.LogicKey("arcana")
	gameIDArcana   = spec.GID(9001)
)

// 特性代碼 (GameModeResult.Trigger)，0 為無觸發，
// 負值為未觸發的塔羅出現紀錄，見 recorder 的代碼約定。
const (
	triggerFool = iota + 1
	triggerCups
	triggerLovers
	triggerPriestess
	triggerDeath
)

func init() {
	if err := slot.GameRegister[*extArcana](logicKeyArcana, buildArcana, Logics); err != nil {
		log.Fatalf("%s register failed: %v", logicKeyArcana, err)
	}
	recorder.RegisterFeatureNames(gameIDArcana, []string{"Fool", "Cups", "Lovers", "Priestess", "Death"})
}

// ============================================================
// ** 遊戲介面 **
// ============================================================

type gameArcana struct {
	fixed *fixedArcana
	ext   *extArcana

	// 圖鑑索引 -> 塔羅槽位 (0..4)，非塔羅為 -1
	tarotSlot []int

	// 熱路徑緩衝，建機時配置一次
	tarotAt    []int16 // 每列的塔羅符號，-1 表示一般列
	colShuffle []int
	rowShuffle []int
	wildCounts []int
	featScreen []int16 // Fool 修改盤面用
	freeCells  []int   // Priestess 未占用格
	mystCells  []int   // Priestess 累積格
	mystMark   []bool
	sticky     []bool // Death 黏性 wild (固定框座標)
	slashed    []bool // Death 本次收割格
}

func buildArcana(gh *slot.Game) (slot.GameLogic, error) {
	g := &gameArcana{fixed: new(fixedArcana)}
	if err := spec.DecodeFixed(gh.GameSetting, g.fixed); err != nil {
		return nil, err
	}
	base := &gh.GameSetting.GameModeSettings[0].ScreenSetting
	death := &gh.GameSetting.GameModeSettings[2].ScreenSetting

	g.tarotSlot = make([]int, gh.GameSetting.GameModeSettings[0].SymbolSetting.SymbolCount)
	for i := range g.tarotSlot {
		g.tarotSlot[i] = -1
	}
	for k, sym := range g.fixed.TarotSymbols {
		g.tarotSlot[sym] = k
	}

	g.ext = newExtArcana(base.Columns, gh.IsSim)
	g.tarotAt = make([]int16, base.Columns)
	g.colShuffle = make([]int, base.Columns)
	g.rowShuffle = make([]int, base.Rows)
	g.wildCounts = make([]int, 0, base.Columns)
	g.featScreen = make([]int16, base.ScreenSize)
	g.freeCells = make([]int, 0, base.ScreenSize)
	g.mystCells = make([]int, 0, base.ScreenSize)
	g.mystMark = make([]bool, base.ScreenSize)
	g.sticky = make([]bool, death.ScreenSize)
	g.slashed = make([]bool, death.ScreenSize)
	return g, nil
}

// ============================================================
// ** 此遊戲 Fixed 設定宣告 **
// ============================================================

type fixedArcana struct {
	TarotChance    float64   `yaml:"tarot_chance"`
	TarotCountCut  []float64 `yaml:"tarot_count_cut"`
	TarotSymbols   []int     `yaml:"tarot_symbols"`
	TarotWeights   []int     `yaml:"tarot_weights"`
	WildSymbol     int       `yaml:"wild_symbol"`
	NoneSymbol     int       `yaml:"none_symbol"`
	PremiumSymbols []int     `yaml:"premium_symbols"`
	LowSymbols     []int     `yaml:"low_symbols"`

	Fool      fixedFool      `yaml:"fool"`
	Cups      fixedCups      `yaml:"cups"`
	Lovers    fixedLovers    `yaml:"lovers"`
	Priestess fixedPriestess `yaml:"priestess"`
	Death     fixedDeath     `yaml:"death"`
}

type fixedFool struct {
	WildCap  int       `yaml:"wild_cap"`
	CountCut []float64 `yaml:"count_cut"`
	MultLow  int       `yaml:"mult_low"`
	MultHigh int       `yaml:"mult_high"`
}

type fixedCups struct {
	SmallPool []int `yaml:"small_pool"`
	BigPool   []int `yaml:"big_pool"`
}

type fixedLovers struct {
	SpinsLow    int       `yaml:"spins_low"`
	SpinsHigh   int       `yaml:"spins_high"`
	MultLow     int       `yaml:"mult_low"`
	MultHigh    int       `yaml:"mult_high"`
	BondCut     []float64 `yaml:"bond_cut"`
	RectWeights []int     `yaml:"rect_weights"`
}

type fixedPriestess struct {
	SpinsLow  int       `yaml:"spins_low"`
	SpinsHigh int       `yaml:"spins_high"`
	MultLow   int       `yaml:"mult_low"`
	MultHigh  int       `yaml:"mult_high"`
	CountCut  []float64 `yaml:"count_cut"`
}

type fixedDeath struct {
	StartColumns int     `yaml:"start_columns"`
	StartRows    int     `yaml:"start_rows"`
	Spins        int     `yaml:"spins"`
	StickyChance float64 `yaml:"sticky_chance"`
	ReapCuts     []int   `yaml:"reap_cuts"`
}

// ============================================================
// ** 遊戲需要的額外結構宣告: 需要實作 Reset 以及 Snapshot **
// ============================================================

type extArcana struct {
	TarotCols []int `json:"tarot_cols,omitzero"`   // 本局所有塔羅列，由左至右
	TrigCols  []int `json:"trigger_cols,omitzero"` // 觸發特性的塔羅列
	TrigType  int   `json:"trigger_type,omitzero"` // 特性代碼 1..5
	TokenSum  int   `json:"token_sum,omitzero"`    // Cups 代幣總和
	isSim     bool
}

func newExtArcana(cols int, isSim bool) *extArcana {
	return &extArcana{
		TarotCols: make([]int, 0, cols),
		TrigCols:  make([]int, 0, cols),
		isSim:     isSim,
	}
}

func (e *extArcana) Reset() {
	e.TarotCols = e.TarotCols[:0]
	e.TrigCols = e.TrigCols[:0]
	e.TrigType = 0
	e.TokenSum = 0
}

func (e *extArcana) Snapshot() any {
	if e.isSim {
		return nil
	}
	ec := &extArcana{
		TarotCols: make([]int, len(e.TarotCols)),
		TrigCols:  make([]int, len(e.TrigCols)),
		TrigType:  e.TrigType,
		TokenSum:  e.TokenSum,
	}
	copy(ec.TarotCols, e.TarotCols)
	copy(ec.TrigCols, e.TrigCols)
	return ec
}

// ============================================================
// ** 遊戲主邏輯入口 **
// ============================================================

// GetResult 主要介面函數 回傳遊戲結果 *buf.SpinResult
func (g *gameArcana) GetResult(r *buf.SpinRequest, gh *slot.Game) *buf.SpinResult {
	sr := gh.StartNewSpin(r)

	base := g.getBaseResult(r, gh)
	sr.AppendModeResult(base)

	switch base.Trigger {
	case triggerFool:
		sr.AppendModeResult(g.getFoolResult(r, gh))
	case triggerCups:
		sr.AppendModeResult(g.getCupsResult(r, gh))
	case triggerLovers:
		sr.AppendModeResult(g.getLoversResult(r, gh))
	case triggerPriestess:
		sr.AppendModeResult(g.getPriestessResult(r, gh))
	case triggerDeath:
		sr.AppendModeResult(g.getDeathResult(r, gh))
	}
	sr.End()
	return sr
}

// ============================================================
// ** 主遊戲模式 (mode 0) **
// ============================================================

func (g *gameArcana) getBaseResult(r *buf.SpinRequest, gh *slot.Game) *buf.GameModeResult {
	mode := gh.GameModeHandlerList[0]
	sc := mode.ScreenCalculator
	gmr := mode.GameModeResult
	ext := g.ext
	ext.Reset()

	// 1. 生成盤面（含塔羅整列注入）
	screen := g.genBaseScreen(gh.Core, mode.ScreenGenerator)
	gmr.AddAct(buf.FinishAct, "screen", screen, nil)

	// 2. 觸發判定
	gmr.Trigger = g.detect()

	// 3. 未觸發時以線獎計分；單列塔羅不派彩但照常算分
	if gmr.Trigger <= 0 {
		sc.CalcScreen(r.BetMult, screen, gmr)
		if gmr.GetTmpWin() > 0 {
			gmr.AddAct(buf.FinishAct, "win", nil, nil)
		}
	} else {
		gmr.AddAct(buf.FinishAct, "trigger", nil, ext)
	}

	// 4. Round提交
	gmr.FinishRound()

	return mode.YieldResult()
}

// genBaseScreen 生成主遊戲盤面。
//
// 抽號順序固定：
//  1. 1 float 判定是否出現塔羅
//  2. 1 float 決定塔羅列數 (門檻 count_cut)
//  3. Fisher-Yates 洗 5 列取前 N 列
//  4. 依洗列順序逐列加權抽塔羅符號
//  5. 逐列填盤（列外自左至右、列內自上至下）；塔羅列整列覆蓋，不消耗亂數
func (g *gameArcana) genBaseScreen(c *core.Core, sg *gen.ScreenGenerator) []int16 {
	ext := g.ext
	if c.Float64() >= g.fixed.TarotChance {
		return sg.GenScreen()
	}

	f := c.Float64()
	count := 3
	if f <= g.fixed.TarotCountCut[0] {
		count = 1
	} else if f <= g.fixed.TarotCountCut[1] {
		count = 2
	}

	cols := g.colShuffle
	for i := range cols {
		cols[i] = i
	}
	c.ShuffleInts(cols)

	for i := range g.tarotAt {
		g.tarotAt[i] = -1
	}
	for i := 0; i < count; i++ {
		slotIdx := c.WeightedIndex(g.fixed.TarotWeights)
		g.tarotAt[cols[i]] = int16(g.fixed.TarotSymbols[slotIdx])
	}

	reels := sg.ReelSetGroup[0].Reels
	screen := sg.Screen
	for col := 0; col < sg.Cols; col++ {
		if t := g.tarotAt[col]; t >= 0 {
			for row := 0; row < sg.Rows; row++ {
				screen[row*sg.Cols+col] = t
			}
			ext.TarotCols = append(ext.TarotCols, col)
			continue
		}
		reel := &reels[col]
		for row := 0; row < sg.Rows; row++ {
			screen[row*sg.Cols+col] = reel.ReelSymbols[c.WeightedIndex(reel.ReelWeights)]
		}
	}
	return screen
}

// 偵測優先序：Death > Priestess > Lovers > Fool > Cups
var detectOrder = [5]int{triggerDeath - 1, triggerPriestess - 1, triggerLovers - 1, triggerFool - 1, triggerCups - 1}

// detect 依塔羅列分組判定觸發，回傳特性代碼。
// 無同種 >=2 列時回傳未觸發紀錄代碼（單列 -1 / 異種多列 -2）。
func (g *gameArcana) detect() int {
	ext := g.ext
	if len(ext.TarotCols) == 0 {
		return recorder.TriggerNone
	}

	var cnt [5]int
	for _, col := range ext.TarotCols {
		cnt[g.tarotSlot[g.tarotAt[col]]]++
	}

	for _, k := range detectOrder {
		if cnt[k] < 2 {
			continue
		}
		ext.TrigType = k + 1
		for _, col := range ext.TarotCols {
			if g.tarotSlot[g.tarotAt[col]] == k {
				ext.TrigCols = append(ext.TrigCols, col)
			}
		}
		return ext.TrigType
	}

	if len(ext.TarotCols) == 1 {
		return recorder.TriggerTeaseSingle
	}
	return recorder.TriggerTeaseMixed
}
