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

package calc

import (
	"testing"

	"github.com/zintix-labs/tarotlab/sdk/buf"
	"github.com/zintix-labs/tarotlab/spec"
)

func buildGameModeSetting(cols, rows int, betType string, lineTable [][]int16, symbolUsed []string, payTable [][]int) spec.GameModeSetting {
	return spec.GameModeSetting{
		ScreenSetting: spec.ScreenSetting{
			Columns: cols,
			Rows:    rows,
		},
		HitSetting: spec.HitSetting{
			BetTypeStr: betType,
			LineTable:  lineTable,
		},
		SymbolSetting: spec.SymbolSetting{
			SymbolUsedStr: symbolUsed,
			PayTable:      payTable,
		},
	}
}

func TestCalcByLine(t *testing.T) {
	gms := buildGameModeSetting(5, 3, "line_ltr", [][]int16{{1, 1, 1, 1, 1}}, []string{"H1", "W1"}, [][]int{{0, 0, 0, 0, 9}, {0, 0, 0, 0, 0}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)
	maxIdx := int16(-1)
	for _, v := range sc.LineTableFlat {
		if v > maxIdx {
			maxIdx = v
		}
	}
	if maxIdx >= int16(sc.ScreenSize) {
		t.Fatalf("line table out of range: max=%d screen=%d table=%v", maxIdx, sc.ScreenSize, sc.LineTableFlat)
	}
	screen := make([]int16, sc.ScreenSize)

	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 9 {
		t.Fatalf("expected tmp win 9, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 1 || details[0].Win != 9 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if hit := gmr.HitMapTmp(); len(hit) != 5 {
		t.Fatalf("expected hitmap length 5, got %v", hit)
	}
}

// wild 前綴後的首個非 wild 符號才是該線的計分目標
func TestCalcByLineWildPrefix(t *testing.T) {
	gms := buildGameModeSetting(5, 1, "line_ltr", [][]int16{{0, 0, 0, 0, 0}},
		[]string{"H1", "W1"}, [][]int{{0, 0, 5, 7, 9}, {0, 0, 0, 0, 0}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)

	// W1 H1 H1 H1 H1 -> target H1，命中 5 顆
	screen := []int16{1, 0, 0, 0, 0}
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 9 {
		t.Fatalf("expected tmp win 9, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 1 || details[0].Count != 5 || details[0].SymbolID != 0 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

// wild 代任可以接在 target 串中間
func TestCalcByLineWildSubstitution(t *testing.T) {
	gms := buildGameModeSetting(5, 1, "line_ltr", [][]int16{{0, 0, 0, 0, 0}},
		[]string{"H1", "W1", "L1"}, [][]int{{0, 0, 5, 7, 9}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)

	// H1 W1 H1 L1 H1 -> L1 截斷，命中 3 顆
	screen := []int16{0, 1, 0, 2, 0}
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 5 {
		t.Fatalf("expected tmp win 5, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 1 || details[0].Count != 3 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

// 整線 wild 依 wild 自身的賠付表計分
func TestCalcByLineAllWild(t *testing.T) {
	gms := buildGameModeSetting(5, 1, "line_ltr", [][]int16{{0, 0, 0, 0, 0}},
		[]string{"H1", "W1"}, [][]int{{0, 0, 5, 7, 9}, {0, 0, 10, 40, 200}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)

	screen := []int16{1, 1, 1, 1, 1}
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 200 {
		t.Fatalf("expected tmp win 200, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 1 || details[0].SymbolID != 1 || details[0].Count != 5 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

// 命中顆數未達最低派彩顆數時不計分
func TestCalcByLineBelowMinCount(t *testing.T) {
	gms := buildGameModeSetting(5, 1, "line_ltr", [][]int16{{0, 0, 0, 0, 0}},
		[]string{"H1", "L1"}, [][]int{{0, 0, 5, 7, 9}, {0, 0, 0, 0, 0}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)

	// H1 H1 L1 H1 H1 -> 命中 2 顆，無分
	screen := []int16{0, 0, 1, 0, 0}
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 0 {
		t.Fatalf("expected tmp win 0, got %d", gmr.GetTmpWin())
	}
	if details := gmr.GetDetails(); len(details) != 0 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestCalcByCluster(t *testing.T) {
	gms := buildGameModeSetting(2, 2, "cluster", nil, []string{"H1"}, [][]int{{0, 0, 5, 10}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)
	screen := []int16{0, 0, 0, 0}

	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 10 {
		t.Fatalf("expected tmp win 10, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 1 || details[0].Win != 10 {
		t.Fatalf("unexpected details: %+v", details)
	}
	if hit := gmr.HitMapTmp(); len(hit) != 4 {
		t.Fatalf("expected hitmap length 4, got %v", hit)
	}
}

// wild 依附普通叢集後，仍會在純 wild 階段再計一次
func TestCalcByClusterWildDoubleCount(t *testing.T) {
	gms := buildGameModeSetting(2, 2, "cluster", nil,
		[]string{"H1", "W1"}, [][]int{{0, 0, 5, 10}, {0, 0, 7, 14}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)

	// W1 W1
	// W1 H1
	screen := []int16{1, 1, 1, 0}
	sc.CalcScreen(1, screen, gmr)

	// H1 叢集(含 3 顆 wild) = 10；純 wild 叢集 3 顆 = 7
	if gmr.GetTmpWin() != 17 {
		t.Fatalf("expected tmp win 17, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %+v", details)
	}
	if details[0].SymbolID != 0 || details[0].Count != 4 {
		t.Fatalf("unexpected normal cluster detail: %+v", details[0])
	}
	if details[1].SymbolID != 1 || details[1].Count != 3 {
		t.Fatalf("unexpected wild cluster detail: %+v", details[1])
	}
}

// 全 wild 盤面只會在純 wild 階段計分一次
func TestCalcByClusterAllWild(t *testing.T) {
	gms := buildGameModeSetting(2, 2, "cluster", nil,
		[]string{"H1", "W1"}, [][]int{{0, 0, 5, 10}, {0, 0, 7, 14}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)

	screen := []int16{1, 1, 1, 1}
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 14 {
		t.Fatalf("expected tmp win 14, got %d", gmr.GetTmpWin())
	}
	details := gmr.GetDetails()
	if len(details) != 1 || details[0].SymbolID != 1 || details[0].Count != 4 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

// 未達最低連接顆數的叢集不計分
func TestCalcByClusterBelowMinCount(t *testing.T) {
	gms := buildGameModeSetting(2, 2, "cluster", nil,
		[]string{"H1", "L1"}, [][]int{{0, 0, 5, 10}, {0, 0, 0, 0}})
	sc := NewScreenCalculator(&gms)
	gmr := buf.NewGameModeResult(0, &gms, 4, 4)

	// H1 H1
	// L1 L1
	screen := []int16{0, 0, 1, 1}
	sc.CalcScreen(1, screen, gmr)

	if gmr.GetTmpWin() != 0 {
		t.Fatalf("expected tmp win 0, got %d", gmr.GetTmpWin())
	}
	if details := gmr.GetDetails(); len(details) != 0 {
		t.Fatalf("unexpected details: %+v", details)
	}
}
