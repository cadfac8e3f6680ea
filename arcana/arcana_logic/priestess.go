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

// getPriestessResult Priestess 特性 (mode 1)：
// 連續免費轉，神秘格集合只增不減，整段特性期間不會重複選格。
// 2 列觸發：6 轉、倍率 mult_low；3 列觸發：9 轉、倍率 mult_high。
//
// 每轉抽號順序固定：
//  1. 生成盤面
//  2. 1 float 門檻 count_cut 決定新增格數
//  3. 洗未占用格列表取前 N 格（格 idx 由小到大建表）
//  4. 1 次加權抽本轉神秘符號（常規圖鑑權重），覆蓋所有累積格
func (g *gameArcana) getPriestessResult(r *buf.SpinRequest, gh *slot.Game) *buf.GameModeResult {
	mode := gh.GameModeHandlerList[1]
	sg := mode.ScreenGenerator
	sc := mode.ScreenCalculator
	gmr := mode.GameModeResult
	c := gh.Core
	f := &g.fixed.Priestess

	spins, mult := f.SpinsLow, f.MultLow
	if len(g.ext.TrigCols) >= 3 {
		spins, mult = f.SpinsHigh, f.MultHigh
	}

	cells := g.mystCells[:0]
	mark := g.mystMark
	for i := range mark {
		mark[i] = false
	}
	reel := &sg.ReelSetGroup[0].Reels[0]

	for s := 0; s < spins; s++ {
		screen := sg.GenScreen()

		fl := c.Float64()
		cnt := 3
		if fl < f.CountCut[0] {
			cnt = 1
		} else if fl < f.CountCut[1] {
			cnt = 2
		}

		free := g.freeCells[:0]
		for i := 0; i < len(screen); i++ {
			if !mark[i] {
				free = append(free, i)
			}
		}
		c.ShuffleInts(free)
		if cnt > len(free) {
			cnt = len(free)
		}
		for i := 0; i < cnt; i++ {
			mark[free[i]] = true
			cells = append(cells, free[i])
		}

		sym := reel.ReelSymbols[c.WeightedIndex(reel.ReelWeights)]
		for _, idx := range cells {
			screen[idx] = sym
		}

		gmr.AddAct(buf.FinishAct, "priestess_screen", screen, nil)
		sc.CalcScreen(r.BetMult*mult, screen, gmr)
		if gmr.GetTmpWin() > 0 {
			gmr.AddAct(buf.FinishAct, "win", nil, nil)
		}
		gmr.FinishRound()
	}
	g.mystCells = cells[:0]

	return mode.YieldResult()
}
