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

// getCupsResult Cups 特性 (mode 1)：
// 純代幣加總，不生成盤面也不做線獎計分。
//
// 抽號順序固定：依觸發列（由左至右）逐列抽代幣數，再逐枚均勻抽面額。
// 2 列觸發：代幣數均勻 {1,2}、面額池 small_pool；
// 3 列觸發：代幣數均勻 {2,3}、面額池 big_pool。
// 贏分 = 面額總和 x 總押注。
func (g *gameArcana) getCupsResult(r *buf.SpinRequest, gh *slot.Game) *buf.GameModeResult {
	mode := gh.GameModeHandlerList[1]
	gmr := mode.GameModeResult
	c := gh.Core
	f := &g.fixed.Cups
	ext := g.ext
	n := len(ext.TrigCols)

	sum := 0
	for range ext.TrigCols {
		tokens := 0
		pool := f.SmallPool
		if n < 3 {
			tokens = c.IntRange(1, 2)
		} else {
			tokens = c.IntRange(2, 3)
			pool = f.BigPool
		}
		for t := 0; t < tokens; t++ {
			sum += c.Pick(pool)
		}
	}

	ext.TokenSum = sum
	gmr.UpdateTmpWin(sum * r.Bet)
	gmr.AddAct(buf.FinishRound, "cups", nil, ext)

	return mode.YieldResult()
}
