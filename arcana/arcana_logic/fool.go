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
	"github.com/zintix-labs/tarotlab/sdk/slot"
)

// getFoolResult Fool 特性 (mode 1)：
// 在主遊戲盤面的觸發列注入 wild 後，對修改盤面做一次線獎計分。
//
// 抽號順序固定：
//  1. 依觸發列（由左至右）逐列抽 wild 數：
//     2 列觸發時均勻 {1,2,3}；3 列觸發時門檻 count_cut
//  2. 總數超過 wild_cap 時由最右列往左扣，單列保底 1（不消耗亂數）
//  3. 逐列洗 3 行，前 wild 數格放 wild，其餘格均勻抽高分符號
func (g *gameArcana) getFoolResult(r *buf.SpinRequest, gh *slot.Game) *buf.GameModeResult {
	mode := gh.GameModeHandlerList[1]
	sc := mode.ScreenCalculator
	gmr := mode.GameModeResult
	c := gh.Core
	f := &g.fixed.Fool
	trig := g.ext.TrigCols
	n := len(trig)

	// 沿用主遊戲的盤面做修改
	base := gh.GameModeHandlerList[0].ScreenGenerator
	screen := g.featScreen
	copy(screen, base.Screen)

	counts := g.wildCounts[:0]
	total := 0
	for range trig {
		wc := 0
		if n < 3 {
			wc = c.IntRange(1, 3)
		} else {
			fl := c.Float64()
			switch {
			case fl < f.CountCut[0]:
				wc = 1
			case fl < f.CountCut[1]:
				wc = 2
			default:
				wc = 3
			}
		}
		counts = append(counts, wc)
		total += wc
	}

	for i := n - 1; i >= 0 && total > f.WildCap; i-- {
		for counts[i] > 1 && total > f.WildCap {
			counts[i]--
			total--
		}
	}

	rows := g.rowShuffle
	for i, col := range trig {
		for j := range rows {
			rows[j] = j
		}
		c.ShuffleInts(rows)
		for j, row := range rows {
			idx := row*base.Cols + col
			if j < counts[i] {
				screen[idx] = int16(g.fixed.WildSymbol)
			} else {
				screen[idx] = int16(c.Pick(g.fixed.PremiumSymbols))
			}
		}
	}

	mult := f.MultLow
	if n >= 3 {
		mult = f.MultHigh
	}

	gmr.AddAct(buf.FinishAct, "fool_screen", screen, g.ext)
	sc.CalcScreen(r.BetMult*mult, screen, gmr)
	if gmr.GetTmpWin() > 0 {
		gmr.AddAct(buf.FinishAct, "win", nil, nil)
	}
	gmr.FinishRound()

	return mode.YieldResult()
}
