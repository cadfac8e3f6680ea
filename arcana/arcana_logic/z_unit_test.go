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
	"io/fs"
	"testing"

	"github.com/zintix-labs/tarotlab/arcana/arcana_configs"
	"github.com/zintix-labs/tarotlab/sdk/buf"
	"github.com/zintix-labs/tarotlab/sdk/calc"
	"github.com/zintix-labs/tarotlab/sdk/core"
	"github.com/zintix-labs/tarotlab/sdk/slot"
	"github.com/zintix-labs/tarotlab/spec"
)

func loadArcanaSetting(t *testing.T) *spec.GameSetting {
	t.Helper()
	raw, err := fs.ReadFile(arcana_configs.FS, "arcana_0.yaml")
	if err != nil {
		t.Fatalf("read config failed: %v", err)
	}
	gs, err := spec.GetGameSettingByYAML(raw)
	if err != nil {
		t.Fatalf("parse config failed: %v", err)
	}
	return gs
}

func newTestGame(t *testing.T, seed uint32) (*gameArcana, *slot.Game) {
	t.Helper()
	gs := loadArcanaSetting(t)
	gh, err := slot.NewGame(gs, Logics, core.New(core.NewXor32(seed)), true)
	if err != nil {
		t.Fatalf("new game failed: %v", err)
	}
	logic, err := buildArcana(gh)
	if err != nil {
		t.Fatalf("build logic failed: %v", err)
	}
	return logic.(*gameArcana), gh
}

func newTestRequest() *buf.SpinRequest {
	return &buf.SpinRequest{
		GameName: "Arcana",
		GameId:   gameIDArcana,
		Bet:      200,
		BetMode:  0,
		BetMult:  1,
	}
}

func countRounds(gmr *buf.GameModeResult) int {
	n := 0
	for i := range gmr.ActResults {
		if gmr.ActResults[i].IsRoundEnd {
			n++
		}
	}
	return n
}

func TestLoadConfig(t *testing.T) {
	gs := loadArcanaSetting(t)
	if gs.GameID != gameIDArcana || gs.GameName != "Arcana" || gs.LogicKey != logicKeyArcana {
		t.Fatalf("unexpected header: %+v", gs)
	}
	if len(gs.GameModeSettings) != 3 {
		t.Fatalf("expected 3 game modes, got %d", len(gs.GameModeSettings))
	}
	if lines := len(gs.GameModeSettings[0].HitSetting.LineTable); lines != 25 {
		t.Fatalf("expected 25 paylines, got %d", lines)
	}
	if n := len(gs.GameModeSettings[0].SymbolSetting.SymbolUsedStr); n != 14 {
		t.Fatalf("expected 14 base symbols, got %d", n)
	}
	if n := len(gs.GameModeSettings[2].SymbolSetting.SymbolUsedStr); n != 10 {
		t.Fatalf("expected 10 cluster symbols, got %d", n)
	}
}

// 中線 5 連 H1：只有第 0 條線派彩，760 = 95 x 單線押注 8
func TestMiddleLineCoinPay(t *testing.T) {
	gs := loadArcanaSetting(t)
	gms := &gs.GameModeSettings[0]
	sc := calc.NewScreenCalculator(gms)
	gmr := buf.NewGameModeResult(0, gms, 8, 64)

	screen := []int16{
		5, 6, 5, 6, 5,
		1, 1, 1, 1, 1,
		7, 8, 7, 8, 7,
	}
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 760 {
		t.Fatalf("expected win 760, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 1 || details[0].Count != 5 || details[0].SymbolID != 1 || details[0].LineID != 0 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

// 整面 wild：25 條線各中全盤 wild 5 連
func TestAllWildScreenPay(t *testing.T) {
	gs := loadArcanaSetting(t)
	gms := &gs.GameModeSettings[0]
	sc := calc.NewScreenCalculator(gms)
	gmr := buf.NewGameModeResult(0, gms, 8, 256)

	screen := make([]int16, 15)
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 25*20000 {
		t.Fatalf("expected win %d, got %d", 25*20000, gmr.GetTmpWin())
	}
	if len(gmr.GetDetails()) != 25 {
		t.Fatalf("expected 25 line details, got %d", len(gmr.GetDetails()))
	}
}

// 低分 3/4 連集群：3 顆相鄰必須合併為單一集群
func TestClusterLowPay(t *testing.T) {
	gs := loadArcanaSetting(t)
	gms := &gs.GameModeSettings[2]
	sc := calc.NewScreenCalculator(gms)
	gmr := buf.NewGameModeResult(2, gms, 8, 64)

	screen := make([]int16, 48)
	for i := range screen {
		screen[i] = 9 // Z1
	}
	screen[0], screen[1], screen[8] = 5, 5, 5
	sc.CalcScreen(1, screen, gmr)

	details := gmr.GetDetails()
	if gmr.GetTmpWin() != 100 || len(details) != 1 || details[0].Count != 3 {
		t.Fatalf("expected single 3-cluster win 100, got win=%d details=%+v", gmr.GetTmpWin(), details)
	}

	// 第 4 顆相連 -> 單一 size-4 集群
	gmr2 := buf.NewGameModeResult(2, gms, 8, 64)
	screen[9] = 5
	sc.CalcScreen(1, screen, gmr2)
	d2 := gmr2.GetDetails()
	if gmr2.GetTmpWin() != 400 || len(d2) != 1 || d2[0].Count != 4 {
		t.Fatalf("expected single 4-cluster win 400, got win=%d details=%+v", gmr2.GetTmpWin(), d2)
	}
}

func TestDetectPriority(t *testing.T) {
	g, _ := newTestGame(t, 1)

	set := func(cols []int, syms []int16) {
		g.ext.Reset()
		for i := range g.tarotAt {
			g.tarotAt[i] = -1
		}
		for i, c := range cols {
			g.tarotAt[c] = syms[i]
			g.ext.TarotCols = append(g.ext.TarotCols, c)
		}
	}

	// Death(13) 兩列 + Cups(10) 兩列 -> Death 優先
	set([]int{0, 1, 2, 3}, []int16{13, 10, 13, 10})
	if got := g.detect(); got != triggerDeath {
		t.Fatalf("expected death trigger, got %d", got)
	}
	if len(g.ext.TrigCols) != 2 || g.ext.TrigCols[0] != 0 || g.ext.TrigCols[1] != 2 {
		t.Fatalf("unexpected trigger columns: %v", g.ext.TrigCols)
	}

	// Fool(9) 兩列 + Cups(10) 兩列 -> Fool 優先
	set([]int{0, 1, 2, 3}, []int16{10, 9, 10, 9})
	if got := g.detect(); got != triggerFool {
		t.Fatalf("expected fool trigger, got %d", got)
	}

	// 單列塔羅 -> -1
	set([]int{2}, []int16{11})
	if got := g.detect(); got != -1 {
		t.Fatalf("expected single tease, got %d", got)
	}

	// 異種多列 -> -2
	set([]int{1, 3}, []int16{11, 12})
	if got := g.detect(); got != -2 {
		t.Fatalf("expected mixed tease, got %d", got)
	}
}

func TestGenBaseScreenTarotColumns(t *testing.T) {
	g, gh := newTestGame(t, 99)
	mode := gh.GameModeHandlerList[0]

	sawTarot := false
	for i := 0; i < 2000; i++ {
		g.ext.Reset()
		screen := g.genBaseScreen(gh.Core, mode.ScreenGenerator)

		for _, col := range g.ext.TarotCols {
			sawTarot = true
			sym := screen[col]
			if sym < 9 || sym > 13 {
				t.Fatalf("tarot column %d holds non-tarot symbol %d", col, sym)
			}
			for row := 0; row < 3; row++ {
				if screen[row*5+col] != sym {
					t.Fatalf("tarot column %d not uniform: %v", col, screen)
				}
			}
		}
		if len(g.ext.TarotCols) > 3 {
			t.Fatalf("too many tarot columns: %v", g.ext.TarotCols)
		}
	}
	if !sawTarot {
		t.Fatal("expected tarot columns to appear within 2000 spins")
	}
}

func TestFoolWildBounds(t *testing.T) {
	g, gh := newTestGame(t, 7)
	r := newTestRequest()
	wild := int16(g.fixed.WildSymbol)

	for i := 0; i < 200; i++ {
		gh.StartNewSpin(r)
		g.ext.Reset()
		g.ext.TrigCols = append(g.ext.TrigCols, 0, 2, 4)

		res := g.getFoolResult(r, gh)
		if res.GameModeId != 1 {
			t.Fatalf("expected mode 1, got %d", res.GameModeId)
		}

		act := res.ActResults[0]
		screen := res.Screens[act.ScreenStart : act.ScreenStart+15]
		total := 0
		for _, col := range []int{0, 2, 4} {
			wilds := 0
			for row := 0; row < 3; row++ {
				sym := screen[row*5+col]
				if sym == wild {
					wilds++
				} else if sym < 1 || sym > 4 {
					t.Fatalf("non-premium filler %d in column %d", sym, col)
				}
			}
			if wilds < 1 || wilds > 3 {
				t.Fatalf("column %d wild count out of range: %d", col, wilds)
			}
			total += wilds
		}
		if total > g.fixed.Fool.WildCap {
			t.Fatalf("wild total %d exceeds cap", total)
		}
	}
}

func TestCupsTokenWin(t *testing.T) {
	g, gh := newTestGame(t, 11)
	r := newTestRequest()

	for i := 0; i < 200; i++ {
		gh.StartNewSpin(r)
		g.ext.Reset()
		g.ext.TrigCols = append(g.ext.TrigCols, 1, 3)

		res := g.getCupsResult(r, gh)
		if res.TotalWin != g.ext.TokenSum*r.Bet {
			t.Fatalf("win %d != token sum %d x bet", res.TotalWin, g.ext.TokenSum)
		}
		// 兩列觸發：每列 1~2 枚、面額 {2,3}
		if g.ext.TokenSum < 4 || g.ext.TokenSum > 12 {
			t.Fatalf("token sum out of range: %d", g.ext.TokenSum)
		}
	}

	for i := 0; i < 200; i++ {
		gh.StartNewSpin(r)
		g.ext.Reset()
		g.ext.TrigCols = append(g.ext.TrigCols, 0, 2, 4)

		res := g.getCupsResult(r, gh)
		// 三列觸發：每列 2~3 枚、面額 {3,5,10}
		if g.ext.TokenSum < 18 || g.ext.TokenSum > 90 {
			t.Fatalf("token sum out of range: %d", g.ext.TokenSum)
		}
		if res.TotalWin%r.Bet != 0 {
			t.Fatalf("cups win %d is not a bet multiple", res.TotalWin)
		}
	}
}

func TestLoversSpinCount(t *testing.T) {
	g, gh := newTestGame(t, 13)
	r := newTestRequest()

	gh.StartNewSpin(r)
	g.ext.Reset()
	g.ext.TrigCols = append(g.ext.TrigCols, 0, 3)
	res := g.getLoversResult(r, gh)
	if got := countRounds(res); got != g.fixed.Lovers.SpinsLow {
		t.Fatalf("expected %d rounds, got %d", g.fixed.Lovers.SpinsLow, got)
	}

	gh.StartNewSpin(r)
	g.ext.Reset()
	g.ext.TrigCols = append(g.ext.TrigCols, 0, 1, 3)
	res = g.getLoversResult(r, gh)
	if got := countRounds(res); got != g.fixed.Lovers.SpinsHigh {
		t.Fatalf("expected %d rounds, got %d", g.fixed.Lovers.SpinsHigh, got)
	}
}

func TestPriestessMonotonic(t *testing.T) {
	g, gh := newTestGame(t, 17)
	r := newTestRequest()

	gh.StartNewSpin(r)
	g.ext.Reset()
	g.ext.TrigCols = append(g.ext.TrigCols, 1, 4)
	res := g.getPriestessResult(r, gh)

	spins := g.fixed.Priestess.SpinsLow
	if got := countRounds(res); got != spins {
		t.Fatalf("expected %d rounds, got %d", spins, got)
	}
	marks := 0
	for _, m := range g.mystMark {
		if m {
			marks++
		}
	}
	// 每轉 1~3 格、不重複、不可超出盤面
	if marks < spins || marks > min(3*spins, 15) {
		t.Fatalf("mystery cell count out of range: %d", marks)
	}
}

func TestDeathGrowthLadder(t *testing.T) {
	g, gh := newTestGame(t, 23)
	r := newTestRequest()

	ladder := [4][2]int{{5, 3}, {6, 4}, {7, 5}, {8, 6}}

	for i := 0; i < 50; i++ {
		gh.StartNewSpin(r)
		g.ext.Reset()
		g.ext.TrigCols = append(g.ext.TrigCols, 0, 1)

		res := g.getDeathResult(r, gh)
		if res.GameModeId != 2 {
			t.Fatalf("expected mode 2, got %d", res.GameModeId)
		}

		prev := 0
		last := 0
		screens := 0
		for _, act := range res.ActResults {
			if act.ActType != "death_screen" {
				continue
			}
			screens++
			screen := res.Screens[act.ScreenStart : act.ScreenStart+48]

			step := -1
			for k, wh := range ladder {
				match := true
				for idx, sym := range screen {
					col, row := idx%8, idx/8
					active := col < wh[0] && row < wh[1]
					if active == (sym == 9) {
						match = false
						break
					}
				}
				if match {
					step = k
					break
				}
			}
			if step < 0 {
				t.Fatalf("screen does not match any grid size: %v", screen)
			}
			if step < prev {
				t.Fatalf("grid shrank from step %d to %d", prev, step)
			}
			prev = step
			last = step
		}
		// 每次成長補一轉：總轉數 = 初始轉數 + 成長次數
		if rounds := countRounds(res); rounds != g.fixed.Death.Spins+last || screens != rounds {
			t.Fatalf("expected %d rounds, got %d (screens=%d)", g.fixed.Death.Spins+last, rounds, screens)
		}
	}
}

func TestSpinDeterminism(t *testing.T) {
	_, gh1 := newTestGame(t, 20240817)
	_, gh2 := newTestGame(t, 20240817)
	r := newTestRequest()

	for i := 0; i < 3000; i++ {
		a := gh1.GetResult(r)
		b := gh2.GetResult(r)
		if a.TotalWin != b.TotalWin || a.GameModeCount != b.GameModeCount {
			t.Fatalf("spin %d diverged: %d/%d vs %d/%d",
				i, a.TotalWin, a.GameModeCount, b.TotalWin, b.GameModeCount)
		}
	}
}

func TestSpinInvariants(t *testing.T) {
	_, gh := newTestGame(t, 31)
	r := newTestRequest()

	triggered := 0
	for i := 0; i < 20000; i++ {
		res := gh.GetResult(r)

		sum := 0
		for _, gm := range res.GameModeList[:res.GameModeCount] {
			sum += gm.TotalWin
		}
		if res.TotalWin != sum {
			t.Fatalf("total win %d != mode sum %d", res.TotalWin, sum)
		}

		trig := res.GameModeList[0].Trigger
		if trig < -2 || trig > triggerDeath {
			t.Fatalf("trigger code out of range: %d", trig)
		}
		switch {
		case trig > 0:
			triggered++
			if res.GameModeCount != 2 {
				t.Fatalf("trigger %d without feature mode", trig)
			}
			wantMode := 1
			if trig == triggerDeath {
				wantMode = 2
			}
			if got := res.GameModeList[1].GameModeId; got != wantMode {
				t.Fatalf("trigger %d ran mode %d", trig, got)
			}
		default:
			if res.GameModeCount != 1 {
				t.Fatalf("no trigger but %d modes", res.GameModeCount)
			}
		}
	}
	if triggered == 0 {
		t.Fatal("expected at least one feature trigger in 20000 spins")
	}
}
