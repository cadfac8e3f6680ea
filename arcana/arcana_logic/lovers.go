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
	"github.com/zintix-labs/tarotlab/sdk/buf"
	"github.com/zintix-labs/tarotlab/sdk/core"
	"github.com/zintix-labs/tarotlab/sdk/slot"
)

// 矩形階梯：每階兩個候選尺寸 {w1,h1,w2,h2}，權重見 rect_weights。
// 兩候選相同代表該階只有一種尺寸，不消耗方向亂數。
var loversRects = [6][4]int{
	{1, 1, 1, 1},
	{2, 1, 1, 2},
	{2, 2, 3, 1},
	{3, 2, 2, 3},
	{4, 2, 3, 3},
	{5, 2, 4, 3},
}

// getLoversResult Lovers 特性 (mode 1)：
// 連續免費轉，每轉以「鍵結符號」覆蓋一塊隨機矩形後做線獎計分。
// 2 列觸發：3 轉、倍率 mult_low；3 列觸發：6 轉、倍率 mult_high。
//
// 每轉抽號順序固定：
//  1. 生成盤面
//  2. 三個獨立的鍵結符號候選，固定採用第一個
//     （模擬自動選擇，非玩家行為；每個候選消耗 1~2 float）
//  3. 1 float 加權抽矩形階梯；該階有兩候選時再抽 1 次均勻方向
//  4. 錨點先抽欄、再抽行
func (g *gameArcana) getLoversResult(r *buf.SpinRequest, gh *slot.Game) *buf.GameModeResult {
	mode := gh.GameModeHandlerList[1]
	sg := mode.ScreenGenerator
	sc := mode.ScreenCalculator
	gmr := mode.GameModeResult
	c := gh.Core
	f := &g.fixed.Lovers

	spins, mult := f.SpinsLow, f.MultLow
	if len(g.ext.TrigCols) >= 3 {
		spins, mult = f.SpinsHigh, f.MultHigh
	}

	for s := 0; s < spins; s++ {
		screen := sg.GenScreen()

		bond := g.drawBondSymbol(c)
		g.drawBondSymbol(c)
		g.drawBondSymbol(c)

		ri := c.WeightedIndex(f.RectWeights)
		rect := &loversRects[ri]
		w, h := rect[0], rect[1]
		if (rect[2] != rect[0] || rect[3] != rect[1]) && c.IntRange(0, 1) == 1 {
			w, h = rect[2], rect[3]
		}
		if w > sg.Cols {
			w = sg.Cols
		}
		if h > sg.Rows {
			h = sg.Rows
		}

		ac := c.IntRange(0, sg.Cols-w)
		ar := c.IntRange(0, sg.Rows-h)
		for row := ar; row < ar+h; row++ {
			for col := ac; col < ac+w; col++ {
				screen[row*sg.Cols+col] = bond
			}
		}

		gmr.AddAct(buf.FinishAct, "lovers_screen", screen, nil)
		sc.CalcScreen(r.BetMult*mult, screen, gmr)
		if gmr.GetTmpWin() > 0 {
			gmr.AddAct(buf.FinishAct, "win", nil, nil)
		}
		gmr.FinishRound()
	}

	return mode.YieldResult()
}

// drawBondSymbol 抽一個鍵結符號候選：
// 門檻 bond_cut 內依序為均勻高分、均勻低分，其餘為 wild（wild 不再消耗亂數）。
func (g *gameArcana) drawBondSymbol(c *core.Core) int16 {
	f := c.Float64()
	fx := g.fixed
	switch {
	case f < fx.Lovers.BondCut[0]:
		return int16(c.Pick(fx.PremiumSymbols))
	case f < fx.Lovers.BondCut[1]:
		return int16(c.Pick(fx.LowSymbols))
	default:
		return int16(fx.WildSymbol)
	}
}
