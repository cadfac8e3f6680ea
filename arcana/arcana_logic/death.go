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

// getDeathResult Death 特性 (mode 2)：
// 集群計分、盤面成長與黏性 wild。
//
// 盤面一律放在固定 8x6 框內（stride = 8），作用區從 5x3 起始，
// 收割條每跨過一個門檻便雙向 +1 直到 8x6。作用區外填 Z1(none)，
// 該符號無派彩也非 wild，天然不參與集群，因此集群計分器
// 不需要知道作用區大小；黏性座標 (row*8+col) 在成長後仍然有效。
//
// 每次子轉抽號順序固定：
//  1. 填盤：欄外列內，黏性格固定 wild 不消耗亂數，
//     作用區每格 1 次加權抽取，框外 Z1 不消耗亂數
//  2. 集群計分後，依框內 idx 由小到大走訪收割格：
//     先移除被收割的黏性 wild，再以 sticky_chance 判定轉黏性（每格 1 float）
func (g *gameArcana) getDeathResult(r *buf.SpinRequest, gh *slot.Game) *buf.GameModeResult {
	mode := gh.GameModeHandlerList[2]
	sg := mode.ScreenGenerator
	sc := mode.ScreenCalculator
	gmr := mode.GameModeResult
	c := gh.Core
	f := &g.fixed.Death

	frameCols, frameRows := sg.Cols, sg.Rows
	cols, rows := f.StartColumns, f.StartRows
	spins := f.Spins
	reap := 0
	cut := 0

	reels := sg.ReelSetGroup[0].Reels
	screen := sg.Screen
	sticky := g.sticky
	slashed := g.slashed
	wild := int16(g.fixed.WildSymbol)
	none := int16(g.fixed.NoneSymbol)

	for i := range sticky {
		sticky[i] = false
	}

	for spins > 0 {
		// 1. 填盤
		for col := 0; col < frameCols; col++ {
			reel := &reels[col]
			for row := 0; row < frameRows; row++ {
				idx := row*frameCols + col
				switch {
				case col >= cols || row >= rows:
					screen[idx] = none
				case sticky[idx]:
					screen[idx] = wild
				default:
					screen[idx] = reel.ReelSymbols[c.WeightedIndex(reel.ReelWeights)]
				}
			}
		}
		gmr.AddAct(buf.FinishAct, "death_screen", screen, nil)

		// 2. 集群計分
		before := gmr.TmpAct.CurrDetail
		sc.CalcScreen(r.BetMult, screen, gmr)

		// 3. 收割格（去重）
		for i := range slashed {
			slashed[i] = false
		}
		distinct := 0
		for _, d := range gmr.Details[before:gmr.TmpAct.CurrDetail] {
			hits := gmr.HitsFlat[d.HitsFlatStart : d.HitsFlatStart+d.HitsFlatLen]
			for _, idx := range hits {
				if !slashed[idx] {
					slashed[idx] = true
					distinct++
				}
			}
		}

		if gmr.GetTmpWin() > 0 {
			gmr.AddAct(buf.FinishAct, "win", nil, nil)
		}

		// 4. 黏性更新：先移除被收割的黏性 wild，再逐格判定轉黏性
		for idx := range slashed {
			if !slashed[idx] {
				continue
			}
			sticky[idx] = false
			if c.Float64() < f.StickyChance {
				sticky[idx] = true
			}
		}

		// 5. 收割條推進與作用區成長，每次成長補 1 轉
		reap += distinct
		for cut < len(f.ReapCuts) && f.ReapCuts[cut] <= reap && cols < frameCols {
			cols++
			rows++
			cut++
			spins++
		}

		gmr.FinishRound()
		spins--
	}

	return mode.YieldResult()
}
