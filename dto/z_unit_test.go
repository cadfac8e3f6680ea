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

package dto

import (
	"testing"

	"github.com/zintix-labs/tarotlab/corefmt"
	"github.com/zintix-labs/tarotlab/sdk/buf"
)

func newTestSpinResult() *buf.SpinResult {
	gmr := &buf.GameModeResult{
		TotalWin:   900,
		GameModeId: 0,
		IsModeEnd:  true,
		Trigger:    0,
		ScreenSize: 6,
		Screens:    []int16{19, 19, 19, 28, 28, 28},
		Details: []buf.CalcScreenDetail{
			{Win: 900, SymbolID: 19, LineID: 1, Count: 3, HitsFlatStart: 0, HitsFlatLen: 3},
		},
		HitsFlat: []int16{0, 1, 2},
		ActResults: []buf.ActResult{
			{
				ActType:      "spin",
				NowTotalWin:  900,
				RoundAccWin:  900,
				StepAccWin:   900,
				ActWin:       900,
				ScreenStart:  0,
				DetailsStart: 0,
				DetailsEnd:   1,
			},
		},
	}
	return &buf.SpinResult{
		TotalWin:     900,
		GameName:     "Arcana",
		GameID:       9001,
		Logic:        "arcana",
		Bet:          200,
		BetMode:      0,
		BetMult:      1,
		GameModeList: []*buf.GameModeResult{gmr},
		IsGameEnd:    true,
		State: buf.SpinState{
			StartCoreSnap: []byte{0, 0, 0, 1},
			AfterCoreSnap: []byte{0, 0, 0, 9},
		},
	}
}

func TestNewSpinResultDTO(t *testing.T) {
	sr := newTestSpinResult()
	out, err := NewSpinResultDTO(sr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.GameName != "Arcana" || out.GameID != 9001 || out.TotalWin != 900 {
		t.Fatalf("unexpected dto: %+v", out)
	}
	if out.State.StartCoreSnapB64U != corefmt.EncodeBase64URL([]byte{0, 0, 0, 1}) {
		t.Fatalf("unexpected start snapshot: %q", out.State.StartCoreSnapB64U)
	}
	if out.State.AfterCoreSnapB64U != corefmt.EncodeBase64URL([]byte{0, 0, 0, 9}) {
		t.Fatalf("unexpected after snapshot: %q", out.State.AfterCoreSnapB64U)
	}
	if len(out.GameModes) != 1 {
		t.Fatalf("expected 1 game mode, got %d", len(out.GameModes))
	}
	gm := out.GameModes[0]
	if gm.TotalWin != 900 || !gm.IsModeEnd {
		t.Fatalf("unexpected game mode dto: %+v", gm)
	}
	if len(gm.ActResults) != 1 {
		t.Fatalf("expected 1 act, got %d", len(gm.ActResults))
	}
	act := gm.ActResults[0]
	if len(act.Screen) != 6 || act.Screen[0] != 19 || act.Screen[3] != 28 {
		t.Fatalf("unexpected screen dto: %v", act.Screen)
	}
	if len(act.Details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(act.Details))
	}
	d := act.Details[0]
	if d.Win != 900 || d.SymbolID != 19 || d.Count != 3 {
		t.Fatalf("unexpected detail dto: %+v", d)
	}
	if len(d.HitMap) != 3 || d.HitMap[2] != 2 {
		t.Fatalf("unexpected hit map: %v", d.HitMap)
	}
}

func TestNewSpinResultDTONil(t *testing.T) {
	if _, err := NewSpinResultDTO(nil); err == nil {
		t.Fatalf("expected error for nil spin result")
	}
}

// dto 切片必須指向快照，後續buffer重用不可汙染已輸出結果。
func TestNewSpinResultDTOSnapshotIsolation(t *testing.T) {
	sr := newTestSpinResult()
	out, err := NewSpinResultDTO(sr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sr.GameModeList[0].Screens[0] = 99
	sr.GameModeList[0].HitsFlat[0] = 99
	if out.GameModes[0].ActResults[0].Screen[0] != 19 {
		t.Fatalf("screen dto aliases the reusable buffer")
	}
	if out.GameModes[0].ActResults[0].Details[0].HitMap[0] != 0 {
		t.Fatalf("hit map dto aliases the reusable buffer")
	}
}

type fakeExt struct {
	Mult int `json:"mult"`
}

func TestRegisterExtendRender(t *testing.T) {
	RegisterExtendRender[*fakeExt]("fake_logic")
	got := renderExtendResult("fake_logic", &fakeExt{Mult: 5})
	ext, ok := got.(*fakeExt)
	if !ok || ext.Mult != 5 {
		t.Fatalf("unexpected extend render: %#v", got)
	}
	// 未註冊的 logic 原樣回傳
	if v := renderExtendResult("unknown_logic", 42); v != 42 {
		t.Fatalf("unexpected passthrough: %v", v)
	}
}
